package infrastructure

import (
	"context"
	"log/slog"

	"healthadvisor.app/internal/ports"
)

// SlogLoggerAdapter implements the Logger port using slog.
// The zero value logs through slog.Default().
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

func NewSlogLoggerAdapter(logger *slog.Logger) *SlogLoggerAdapter {
	return &SlogLoggerAdapter{logger: logger}
}

func (l *SlogLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *SlogLoggerAdapter) Info(msg string, fields ...ports.Field) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *SlogLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *SlogLoggerAdapter) Error(msg string, fields ...ports.Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLoggerAdapter) log(level slog.Level, msg string, fields []ports.Field) {
	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}

	args := make([]interface{}, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	logger.Log(context.Background(), level, msg, args...)
}

// TeeLogger fans every entry out to several loggers
type TeeLogger []ports.Logger

func (t TeeLogger) Debug(msg string, fields ...ports.Field) {
	for _, l := range t {
		l.Debug(msg, fields...)
	}
}

func (t TeeLogger) Info(msg string, fields ...ports.Field) {
	for _, l := range t {
		l.Info(msg, fields...)
	}
}

func (t TeeLogger) Warn(msg string, fields ...ports.Field) {
	for _, l := range t {
		l.Warn(msg, fields...)
	}
}

func (t TeeLogger) Error(msg string, fields ...ports.Field) {
	for _, l := range t {
		l.Error(msg, fields...)
	}
}
