package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestTrimPathDepth(t *testing.T) {
	tests := []struct {
		path  string
		depth int
		want  string
	}{
		{path: "a/b/c/d.go", depth: 3, want: "b/c/d.go"},
		{path: "c/d.go", depth: 3, want: "c/d.go"},
		{path: "d.go", depth: 1, want: "d.go"},
	}
	for _, tt := range tests {
		if got := trimPathDepth(tt.path, tt.depth); got != tt.want {
			t.Errorf("trimPathDepth(%q, %d) = %q, want %q", tt.path, tt.depth, got, tt.want)
		}
	}
}

func TestNewProduction(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := New(Options{Production: true, Output: &buf})
	log.Debug("hidden")
	log.Info("computed", "operation", "add")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("production output is not JSON: %v", err)
	}
	if rec["operation"] != "add" {
		t.Errorf("operation = %v, want add", rec["operation"])
	}
	caller, _ := rec["caller"].(string)
	if !strings.Contains(caller, "logger_test.go") {
		t.Errorf("caller = %q, want it to point at logger_test.go", caller)
	}
}

func TestNewLevelOverride(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})
	log.Info("hidden")
	log.With("request_id", "abc").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "request_id=abc") {
		t.Errorf("warn record missing or without attrs: %q", out)
	}
	if !strings.Contains(out, "caller=") {
		t.Errorf("caller attribute missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("ERROR"); err != nil || l != slog.LevelError {
		t.Errorf("ParseLevel(ERROR) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}
