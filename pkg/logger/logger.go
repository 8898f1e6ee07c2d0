// Package logger — тонкая обёртка над log/slog с printf-style API,
// которым пользуются все слои приложения.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger — контракт логгера приложения.
// Errorf принимает ошибку отдельным аргументом, чтобы она попадала
// в структурированное поле, а не растворялась в тексте сообщения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// SlogLogger реализует Logger поверх *slog.Logger
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger создает логгер, настроенный переменными окружения
// LOG_LEVEL (debug|info|warn|error) и LOG_FORMAT (json|text).
// Логгер поднимается до загрузки конфигурации, поэтому читает env сам.
func NewSlogLogger() *SlogLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &SlogLogger{log: slog.New(handler)}
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(err error, format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
