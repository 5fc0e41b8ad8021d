// Package logger builds the application's zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"sdrdemo/internal/config"
)

const serviceName = "sdrdemo"

// New returns a logger writing JSON, or human-readable console lines when
// cfg.Logging.Format is "console".
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := out
	if cfg.Logging.Format == "console" && !cfg.IsProduction() {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("environment", cfg.Primary.Env).
		Logger()
}
