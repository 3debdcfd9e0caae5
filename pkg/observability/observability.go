// Package observability records MCP tool invocations on the active trace span,
// falling back to structured logs when no span is recording.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-training/maths-mcp/pkg/core"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AddRequestAttributes attaches attrs to the span carried by ctx. When that
// span is not recording, the attributes are written as one INFO record on the
// request logger instead, tagged observability.fallback and with whatever
// trace and span IDs the context still has.
func AddRequestAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attrs...)
		return
	}

	logAttrs := make([]slog.Attr, 0, len(attrs)+3)
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(string(attr.Key), attr.Value.AsInterface()))
	}
	logAttrs = append(logAttrs, slog.Bool("observability.fallback", true))
	sc := span.SpanContext()
	if sc.HasTraceID() {
		logAttrs = append(logAttrs, slog.String("trace_id", sc.TraceID().String()))
	}
	if sc.HasSpanID() {
		logAttrs = append(logAttrs, slog.String("span_id", sc.SpanID().String()))
	}
	core.LoggerFromCtx(ctx).LogAttrs(ctx, slog.LevelInfo, "Tool call attributes", logAttrs...)
}

// ToolHandlerMiddleware adds mcp.tool, mcp.params, mcp.status, mcp.duration_ms
// and mcp.error attributes around every tool call.
func ToolHandlerMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			AddRequestAttributes(
				ctx,
				attribute.String("mcp.tool", req.Params.Name),
				attribute.String("mcp.params", fmt.Sprintf("%+v", req.GetArguments())),
			)

			res, err := next(ctx, req)
			durationMs := float64(time.Since(start).Microseconds()) / 1000.0

			status, errMsg := Status(res, err)
			attrs := []attribute.KeyValue{
				attribute.String("mcp.status", status),
				attribute.Float64("mcp.duration_ms", durationMs),
			}
			if errMsg != "" {
				attrs = append(attrs, attribute.String("mcp.error", errMsg))
			}
			AddRequestAttributes(ctx, attrs...)

			return res, err
		}
	}
}

// Status classifies a tool call outcome as "ok" or "error" and extracts the
// error text, if any.
func Status(res *mcp.CallToolResult, err error) (string, string) {
	if err != nil {
		return "error", err.Error()
	}
	if res == nil || !res.IsError {
		return "ok", ""
	}
	if len(res.Content) == 0 {
		return "error", "unknown error with no content"
	}
	if txt, ok := res.Content[0].(mcp.TextContent); ok {
		return "error", txt.Text
	}
	return "error", fmt.Sprintf("unknown error with content type %T", res.Content[0])
}
