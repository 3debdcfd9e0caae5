// Command maths-server serves the add, subtract, multiply, divide and power
// tools over MCP, using stdio or streamable HTTP transport.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-training/maths-mcp/pkg/config"
	"github.com/go-training/maths-mcp/pkg/logger"
	"github.com/go-training/maths-mcp/pkg/server"

	"github.com/appleboy/graceful"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		slog.Error("Failed to load .env file", "err", err)
		os.Exit(1)
	}
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		slog.Error("Failed to parse flags", "err", err)
		os.Exit(2)
	}
	logger.New(cfg.LoggerOptions())
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	mcpServer := server.NewMCPServer(cfg.Evaluator())

	switch cfg.Transport {
	case config.TransportStdio:
		if err := mcpServer.ServeStdio(); err != nil {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	case config.TransportHTTP:
		serveHTTP(mcpServer, cfg.Addr)
	}
}

// serveHTTP runs the HTTP server until an interrupt or terminate signal.
func serveHTTP(mcpServer *server.MCPServer, addr string) {
	srv := mcpServer.NewHTTPServer(addr)
	m := graceful.NewManager()

	m.AddRunningJob(func(ctx context.Context) error {
		slog.Info("MCP HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "err", err)
			return err
		}
		return nil
	})

	m.AddShutdownJob(func() error {
		slog.Info("Shutdown signal received, shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server forced to shutdown", "err", err)
			return err
		}
		slog.Info("Server shutdown gracefully")
		return nil
	})

	<-m.Done()
}
