package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // json, console
}

// New creates a zerolog logger for the named binary. The service name
// is stamped on every event so server and CLI output stay tellable
// apart when shipped to the same sink.
func New(service string, cfg Config) zerolog.Logger {
	return NewWithOutput(service, cfg, os.Stdout)
}

// NewWithOutput is New with an explicit sink.
func NewWithOutput(service string, cfg Config, out io.Writer) zerolog.Logger {
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Caller()

	if service != "" {
		ctx = ctx.Str("service", service)
	}

	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
