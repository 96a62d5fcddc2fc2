package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAddr            = "GORCFRAME_ADDR"
	EnvRateLimit       = "GORCFRAME_RATE_LIMIT"
	EnvRateBurst       = "GORCFRAME_RATE_BURST"
	EnvShutdownTimeout = "GORCFRAME_SHUTDOWN_TIMEOUT"
	EnvCORSOrigin      = "GORCFRAME_CORS_ORIGIN"
	EnvLogLevel        = "GORCFRAME_LOG_LEVEL"
	EnvLogFormat       = "GORCFRAME_LOG_FORMAT"
)

// Server configures the HTTP API.
type Server struct {
	Addr string

	// Per-client request rate (requests per second) and burst
	RateLimit float64
	RateBurst int

	ShutdownTimeout time.Duration
	CORSOrigin      string

	LogLevel  slog.Level
	LogFormat string // text or json
}

// Default returns the settings used when nothing is configured.
func Default() Server {
	return Server{
		Addr:            ":8080",
		RateLimit:       5,
		RateBurst:       10,
		ShutdownTimeout: 5 * time.Second,
		CORSOrigin:      "*",
		LogLevel:        slog.LevelInfo,
		LogFormat:       "text",
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and builds the server settings from it. Missing
// files are skipped; variables already set in the environment win.
func Load(files ...string) (Server, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the server settings from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Server, error) {
	cfg := Default()

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Server{}, fmt.Errorf("%s: expected a positive number, got %q", EnvRateLimit, v)
		}
		cfg.RateLimit = f
	}
	if v, ok := lookup(EnvRateBurst); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Server{}, fmt.Errorf("%s: expected a positive integer, got %q", EnvRateBurst, v)
		}
		cfg.RateBurst = n
	}
	if v, ok := lookup(EnvShutdownTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("%s: %w", EnvShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := lookup(EnvCORSOrigin); ok {
		cfg.CORSOrigin = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Server{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		v = strings.ToLower(v)
		if v != "text" && v != "json" {
			return Server{}, fmt.Errorf("%s: expected text or json, got %q", EnvLogFormat, v)
		}
		cfg.LogFormat = v
	}
	return cfg, nil
}

// Logger returns a slog logger writing to w in the configured format.
func (s Server) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.LogLevel}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
