package log

import (
	"fmt"
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	// Logs go to stderr so command output (JSON listings) stays clean on stdout.
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func Info(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...any) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
}

func SetLevel(level slog.Level) {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
