package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a timestamped zerolog logger writing to w. Passing nil
// defaults to stdout.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewConsole returns a logger with human-readable console output, used by
// the cmd binaries.
func NewConsole() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}
