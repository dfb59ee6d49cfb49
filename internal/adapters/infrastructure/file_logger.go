package infrastructure

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"healthadvisor.app/internal/ports"
)

const serviceName = "health-service"

// FileLoggerAdapter writes one JSON object per line to a log file.
// Entries below minLevel are dropped.
type FileLoggerAdapter struct {
	file     *os.File
	out      io.Writer
	minLevel slog.Level
	now      func() time.Time
	mutex    sync.Mutex
}

// NewFileLoggerAdapter opens logPath for appending, creating parent directories
func NewFileLoggerAdapter(logPath string, minLevel slog.Level) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &FileLoggerAdapter{
		file:     file,
		out:      file,
		minLevel: minLevel,
		now:      time.Now,
	}, nil
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelDebug, msg, fields)
}

func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelInfo, msg, fields)
}

func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelWarn, msg, fields)
}

func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelError, msg, fields)
}

// Close flushes and closes the underlying file
func (f *FileLoggerAdapter) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	f.out = io.Discard
	return err
}

func (f *FileLoggerAdapter) writeLogEntry(level slog.Level, msg string, fields []ports.Field) {
	if level < f.minLevel {
		return
	}

	entry := make(map[string]interface{}, len(fields)+4)
	for _, field := range fields {
		entry[field.Key] = normalizeFieldValue(field.Value)
	}
	// reserved keys win over fields with the same name
	entry["timestamp"] = f.now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["message"] = msg
	entry["service"] = serviceName

	data, err := json.Marshal(entry)
	if err != nil {
		data, _ = json.Marshal(map[string]interface{}{
			"timestamp": f.now().UTC().Format(time.RFC3339Nano),
			"level":     slog.LevelError.String(),
			"message":   "failed to marshal log entry",
			"service":   serviceName,
			"error":     err.Error(),
		})
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, err := f.out.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}

// normalizeFieldValue renders errors and durations readably in JSON
func normalizeFieldValue(v interface{}) interface{} {
	switch value := v.(type) {
	case error:
		return value.Error()
	case time.Duration:
		return value.String()
	case fmt.Stringer:
		return value.String()
	default:
		return v
	}
}
