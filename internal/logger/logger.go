package logger

import (
	"log/slog"
	"os"
	"path/filepath"
)

// globalLogger defaults to slog's default handler until Init runs, so
// packages can log safely from tests.
var globalLogger = slog.Default()

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string
	Format     string // "json" or "text"
}

// Init initializes the structured logger with defaults
func Init() error {
	return InitWithConfig(Config{
		Level:  LevelInfo,
		Format: "json",
	})
}

// InitWithConfig initializes logger with custom config
func InitWithConfig(config Config) error {
	var output *os.File
	if config.OutputPath == "" || config.OutputPath == "stdout" {
		output = os.Stdout
	} else {
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0755); err != nil {
			return err
		}
		var err error
		output, err = os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
	}

	var level slog.Level
	switch config.Level {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return nil
}

// WithFields returns a logger with additional fields
func WithFields(fields ...any) *slog.Logger {
	return globalLogger.With(fields...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	globalLogger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	os.Exit(1)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return globalLogger
}
