// Package logging builds the application logger. The terminal belongs to the
// UI, so log output only goes to a file and is discarded when none is set.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to path at the given level. The returned
// closer releases the file; it is a no-op when path is empty.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}

	return NewWithWriter(f, lvl), f, nil
}

func NewWithWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
