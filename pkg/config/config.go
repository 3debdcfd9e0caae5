// Package config loads the server configuration from defaults, an optional
// .env file, the environment and command line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-training/maths-mcp/pkg/logger"
	"github.com/go-training/maths-mcp/pkg/maths"

	"github.com/joho/godotenv"
)

// Transport types.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Environment variable names.
const (
	EnvMode      = "ENV"
	EnvLogLevel  = "LOG_LEVEL"
	EnvTransport = "MCP_TRANSPORT"
	EnvAddr      = "MCP_ADDR"
	EnvCapMode   = "RESULT_CAP_MODE"
)

// Usage receives flag usage and parse errors.
var Usage io.Writer = os.Stderr

// Config holds everything main needs to start serving.
type Config struct {
	Transport  string
	Addr       string
	CapMode    string
	LogLevel   string
	Production bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Transport: TransportStdio,
		Addr:      ":8080",
		CapMode:   string(maths.CapUpper),
	}
}

// LoadEnvFile loads variables from the given .env files into the process
// environment. Variables already set are not overridden and missing files
// are ignored.
func LoadEnvFile(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// Load builds the configuration from the environment, looked up through
// getenv, and the given command line arguments. For -h and -help the usage
// is written to Usage and the returned error is flag.ErrHelp.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	cfg.fromEnv(getenv)

	flags := flag.NewFlagSet("maths-server", flag.ContinueOnError)
	flags.SetOutput(Usage)
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	flags.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type (stdio or http)")
	flags.StringVar(&cfg.Transport, "t", cfg.Transport, "alias for -transport")
	flags.StringVar(&cfg.CapMode, "cap-mode", cfg.CapMode, "result cap mode (upper or symmetric)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Transport = strings.ToLower(cfg.Transport)
	return cfg, nil
}

func (c *Config) fromEnv(getenv func(string) string) {
	if v := getenv(EnvTransport); v != "" {
		c.Transport = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvCapMode); v != "" {
		c.CapMode = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	c.Production = getenv(EnvMode) == "production"
}

// Validate reports every problem with the configuration at once. It is run
// once before serving.
func (c Config) Validate() error {
	var problems []string

	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		problems = append(problems, fmt.Sprintf("transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport))
	}
	if c.Transport == TransportHTTP && c.Addr == "" {
		problems = append(problems, "addr is required for http transport")
	}
	if _, err := maths.ParseCapMode(c.CapMode); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) == 0 {
		return nil
	}
	msg := "invalid configuration:\n"
	msg += "  - " + strings.Join(problems, "\n  - ")
	return errors.New(msg)
}

// Evaluator returns the evaluator described by the configuration.
// Call Validate first; an invalid cap mode falls back to maths.CapUpper.
func (c Config) Evaluator() *maths.Evaluator {
	mode, err := maths.ParseCapMode(c.CapMode)
	if err != nil {
		mode = maths.CapUpper
	}
	return maths.New(maths.WithCapMode(mode))
}

// LoggerOptions returns the logger options described by the configuration.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Production: c.Production,
		Level:      c.LogLevel,
	}
}
