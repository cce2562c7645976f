// Package logger provides structured logging for plugins running inside the
// database server. Output goes to the server error log (stderr) unless a file
// is configured.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// LogFilePermissions defines the file permissions for log files (owner read/write only).
const LogFilePermissions = 0o600

// Logger provides structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// SlogLogger adapts a slog.Logger to Logger.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps handler.
func NewSlogLogger(handler slog.Handler) *SlogLogger {
	return &SlogLogger{l: slog.New(handler)}
}

// NewWriterLogger creates a logger writing to w at the given level.
func NewWriterLogger(w io.Writer, source string, level Level) *SlogLogger {
	return NewSlogLogger(NewWriterHandler(w, source, level))
}

// Debug logs debug-level messages.
func (s *SlogLogger) Debug(msg string, keysAndValues ...any) {
	s.l.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (s *SlogLogger) Info(msg string, keysAndValues ...any) {
	s.l.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

// Warn logs warning-level messages.
func (s *SlogLogger) Warn(msg string, keysAndValues ...any) {
	s.l.Log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

// Error logs error-level messages.
func (s *SlogLogger) Error(msg string, keysAndValues ...any) {
	s.l.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (s *SlogLogger) With(keysAndValues ...any) Logger {
	return &SlogLogger{l: s.l.With(keysAndValues...)}
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Warn does nothing.
func (*NoOpLogger) Warn(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}

type holder struct{ Logger }

var (
	defaultLogger atomic.Pointer[holder]
	configureOnce sync.Once
)

//nolint:gochecknoinits // the default must exist before any plugin init runs
func init() {
	defaultLogger.Store(&holder{NewWriterLogger(os.Stderr, "", LevelInfo)})
}

// Default returns the process-wide logger used by the bridge.
//
//nolint:ireturn // callers only need the interface
func Default() Logger {
	return defaultLogger.Load().Logger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l Logger) {
	if l == nil {
		l = NewNoOpLogger()
	}

	defaultLogger.Store(&holder{l})
}

// Options configures the process-wide logger.
type Options struct {
	// Source is printed after the level, usually the plugin name.
	Source string
	Level  Level
	// File, when set, receives log lines instead of stderr.
	File string
}

// Configure installs the process-wide logger. Only the first call in a
// process has any effect; later calls return false.
func Configure(opts Options) (bool, error) {
	var (
		applied bool
		err     error
	)

	configureOnce.Do(func() {
		applied = true

		if opts.File == "" {
			SetDefault(NewWriterLogger(os.Stderr, opts.Source, opts.Level))

			return
		}

		var h *CustomHandler

		h, err = NewFileHandler(opts.File, opts.Source, opts.Level)
		if err != nil {
			SetDefault(NewWriterLogger(os.Stderr, opts.Source, opts.Level))

			return
		}

		SetDefault(NewSlogLogger(h))
	})

	return applied, err
}
