// Package server wires the maths tools into an MCP server and exposes it over
// stdio or streamable HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-training/maths-mcp/pkg/core"
	"github.com/go-training/maths-mcp/pkg/maths"
	"github.com/go-training/maths-mcp/pkg/observability"
	"github.com/go-training/maths-mcp/pkg/operation"

	ginslog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// Name is the server name reported during initialization.
	Name = "Basic Maths Server"
	// Version is the server version reported during initialization.
	Version = "1.0.0"
)

// MCPServer wraps the underlying MCP server instance.
type MCPServer struct {
	server    *server.MCPServer
	evaluator *maths.Evaluator
}

// NewMCPServer creates and configures a new MCPServer instance serving the
// maths tools with the given evaluator. A nil evaluator uses the default policy.
func NewMCPServer(e *maths.Evaluator) *MCPServer {
	if e == nil {
		e = maths.New()
	}
	mcpServer := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(requestContext(e)),
		server.WithToolHandlerMiddleware(observability.ToolHandlerMiddleware()),
	)

	// Register Tool
	operation.RegisterMathsTool(mcpServer)

	return &MCPServer{
		server:    mcpServer,
		evaluator: e,
	}
}

// requestContext makes sure every tool call carries a request ID and the
// configured evaluator, whatever transport delivered it.
func requestContext(e *maths.Evaluator) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx = core.EnsureRequestID(ctx)
			ctx = core.WithEvaluator(ctx, e)
			return next(ctx, req)
		}
	}
}

// MCP returns the underlying mcp-go server.
func (s *MCPServer) MCP() *server.MCPServer {
	return s.server
}

// ServeHTTP returns a streamable HTTP server that tags every HTTP request
// with a request ID.
func (s *MCPServer) ServeHTTP() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.server,
		server.WithHeartbeatInterval(30*time.Second),
		server.WithHTTPContextFunc(core.RequestIDFromRequest),
	)
}

// ServeStdio starts the MCP server using stdio transport.
func (s *MCPServer) ServeStdio() error {
	return server.ServeStdio(s.server, server.WithStdioContextFunc(core.WithRequestID))
}

// Router returns the gin engine serving the MCP endpoint on /mcp and a
// health check on /healthz.
func (s *MCPServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(ginslog.SetLogger(), gin.Recovery())

	handler := gin.WrapH(s.ServeHTTP())
	// Register POST, GET, DELETE methods for the /mcp path, all handled by MCPServer
	for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodDelete} {
		router.Handle(method, "/mcp", handler)
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"cap_mode": s.evaluator.CapMode(),
		})
	})
	return router
}

// NewHTTPServer returns the http.Server serving Router on addr.
func (s *MCPServer) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second, // 10 seconds
		WriteTimeout: 10 * time.Second, // 10 seconds
		IdleTimeout:  60 * time.Second, // 60 seconds
	}
}
