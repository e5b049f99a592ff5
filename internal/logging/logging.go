// Package logging builds the zerolog root logger shared by the server, CLI and jobs.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level ("debug", "info", "warn", "error").
// Pretty output uses a console writer and is meant for development.
func New(level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, pretty)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "seodash").Logger()
}
