package log

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/felixgeelhaar/termtutor/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	default:
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	}

	logger := slog.New(handler)
	if config.ServiceName != "" {
		logger = logger.With("service", config.ServiceName)
	}

	return &Logger{
		slog:   logger,
		config: config,
	}
}

// Nop returns a logger that discards everything; handy in tests.
func Nop() *Logger {
	cfg := DefaultConfig()
	cfg.Output = Discard()
	return New(cfg)
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithSession tags every entry with the interactive session ID
func (l *Logger) WithSession(id string) *Logger {
	return l.With("session_id", id)
}

// WithError adds error details to the logger.
// A TutorError contributes its error_code and cause.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	var tutorErr *errors.TutorError
	if stderrors.As(err, &tutorErr) {
		args := []any{
			"error", tutorErr.Message,
			"error_code", string(tutorErr.Code),
		}
		if tutorErr.Cause != nil {
			args = append(args, "cause", tutorErr.Cause.Error())
		}
		return l.With(args...)
	}

	return l.With("error", err.Error())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// LogError logs an error with its code, suggestions and cause
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var tutorErr *errors.TutorError
	if stderrors.As(err, &tutorErr) {
		args := []any{
			"error_code", string(tutorErr.Code),
			"error_message", tutorErr.Message,
		}
		if len(tutorErr.Suggestions) > 0 {
			args = append(args, "suggestions", tutorErr.Suggestions)
		}
		if tutorErr.Cause != nil {
			args = append(args, "cause", tutorErr.Cause.Error())
		}
		l.Error("operation failed", args...)
		return
	}

	l.Error("operation failed", "error", err.Error())
}

// Enabled returns whether the logger is enabled for the given level
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}

// Config returns the logger configuration
func (l *Logger) Config() Config {
	return l.config
}
