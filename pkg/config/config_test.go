package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-training/maths-mcp/pkg/maths"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			want: Default(),
		},
		{
			name: "environment",
			env: map[string]string{
				EnvTransport: "http",
				EnvAddr:      ":9090",
				EnvCapMode:   "symmetric",
				EnvMode:      "production",
			},
			want: Config{Transport: "http", Addr: ":9090", CapMode: "symmetric", Production: true},
		},
		{
			name: "flags override environment",
			args: []string{"-t", "HTTP", "-addr", ":7070", "-log-level", "warn"},
			env:  map[string]string{EnvTransport: "stdio", EnvAddr: ":9090"},
			want: Config{Transport: "http", Addr: ":7070", CapMode: "upper", LogLevel: "warn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.args, envMap(tt.env))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func setUsage(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Usage
	var buf bytes.Buffer
	Usage = &buf
	t.Cleanup(func() { Usage = prev })
	return &buf
}

func TestLoadUnknownFlag(t *testing.T) {
	buf := setUsage(t)
	_, err := Load([]string{"-nope"}, envMap(nil))
	if err == nil || errors.Is(err, flag.ErrHelp) {
		t.Errorf("Load() with unknown flag error = %v, want a parse error", err)
	}
	if !strings.Contains(buf.String(), "-nope") {
		t.Errorf("parse error not reported: %q", buf.String())
	}
}

func TestLoadHelp(t *testing.T) {
	buf := setUsage(t)
	_, err := Load([]string{"-h"}, envMap(nil))
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Load(-h) error = %v, want flag.ErrHelp", err)
	}
	out := buf.String()
	for _, want := range []string{"-addr", "-transport", "-cap-mode", "-log-level"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q:\n%s", want, out)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	cfg := Config{Transport: "sse", CapMode: "both", LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "invalid configuration:\n") {
		t.Errorf("unexpected message prefix: %q", msg)
	}
	if n := strings.Count(msg, "\n  - "); n != 3 {
		t.Errorf("got %d problems, want 3: %q", n, msg)
	}

	cfg = Config{Transport: TransportHTTP, CapMode: "upper"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "addr is required") {
		t.Errorf("Validate() error = %v, want addr problem", err)
	}
}

func TestEvaluator(t *testing.T) {
	cfg := Default()
	cfg.CapMode = "symmetric"
	if got := cfg.Evaluator().CapMode(); got != maths.CapSymmetric {
		t.Errorf("Evaluator().CapMode() = %q, want %q", got, maths.CapSymmetric)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MATHS_TEST_FROM_DOTENV=yes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MATHS_TEST_FROM_DOTENV") })

	if err := LoadEnvFile(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("MATHS_TEST_FROM_DOTENV"); got != "yes" {
		t.Errorf("MATHS_TEST_FROM_DOTENV = %q, want yes", got)
	}
}
