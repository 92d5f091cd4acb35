package cli

import (
	"io"
	"log/slog"
	"os"
)

// Diagnostics are quiet by default; these env vars opt in.
const (
	envDebug   = "IMPROVECOMMENTS_DEBUG"    // any non-empty value writes debug logs to stderr
	envLogFile = "IMPROVECOMMENTS_LOG_FILE" // append debug logs to this path
)

// newLogger builds the run's diagnostic logger. With neither env var set, the
// logger discards everything and user-facing output is untouched.
func newLogger(errW io.Writer) *slog.Logger {
	var writers []io.Writer

	if os.Getenv(envDebug) != "" {
		writers = append(writers, errW)
	}
	if path := os.Getenv(envLogFile); path != "" {
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			writers = append(writers, f)
		}
	}

	if len(writers) == 0 {
		return slog.New(slog.DiscardHandler)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}
