package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		res        *mcp.CallToolResult
		err        error
		wantStatus string
		wantErr    string
	}{
		{name: "ok", res: mcp.NewToolResultText("5"), wantStatus: "ok"},
		{name: "nil result", wantStatus: "ok"},
		{name: "go error", err: errors.New("boom"), wantStatus: "error", wantErr: "boom"},
		{name: "error result", res: mcp.NewToolResultError("bad"), wantStatus: "error", wantErr: "bad"},
		{name: "error without content", res: &mcp.CallToolResult{IsError: true}, wantStatus: "error", wantErr: "unknown error with no content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.res, tt.err)
			if status != tt.wantStatus || msg != tt.wantErr {
				t.Errorf("Status() = (%q, %q), want (%q, %q)", status, msg, tt.wantStatus, tt.wantErr)
			}
		})
	}
}

func TestToolHandlerMiddlewareFallsBackToLogs(t *testing.T) {
	buf := captureLogs(t)

	var called bool
	next := server.ToolHandlerFunc(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultError(`{"error":"Division by zero is not allowed"}`), nil
	})

	req := mcp.CallToolRequest{}
	req.Params.Name = "divide"
	req.Params.Arguments = map[string]any{"a": float64(1), "b": float64(0)}

	res, err := ToolHandlerMiddleware()(next)(context.Background(), req)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called || res == nil || !res.IsError {
		t.Fatal("middleware did not pass the handler result through")
	}

	out := buf.String()
	for _, want := range []string{"mcp.tool=divide", "mcp.status=error", "mcp.duration_ms=", "observability.fallback=true", "Division by zero"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
