package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ima-jin/imajin-chat/config"
)

// Logger wraps slog so call sites can use both structured key/value pairs
// and printf-style messages.
type Logger struct {
	s *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	var handler slog.Handler
	level := parseLevel(cfg.LoggerMode.Level)

	if cfg.LoggerMode.Development {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return &Logger{s: slog.New(handler)}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) slog() *slog.Logger {
	if l == nil || l.s == nil {
		return slog.Default()
	}
	return l.s
}

func (l Logger) Debug(msg string, args ...any) { l.slog().Debug(msg, args...) }
func (l Logger) Info(msg string, args ...any)  { l.slog().Info(msg, args...) }
func (l Logger) Warn(msg string, args ...any)  { l.slog().Warn(msg, args...) }
func (l Logger) Error(msg string, args ...any) { l.slog().Error(msg, args...) }

func (l Logger) Errorf(format string, args ...any) {
	l.slog().Error(fmt.Sprintf(format, args...))
}

func (l Logger) Fatalf(format string, args ...any) {
	l.slog().Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
