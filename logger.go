package cheesyblog

import (
	"log/slog"
	"os"
)

func defaultLogger() *slog.Logger {
	return newLogger(slog.LevelDebug)
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{
			AddSource: false,
			Level:     level,
		}))
}
