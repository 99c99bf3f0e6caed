package log

import (
	"context"
	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods for the generation run
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogRowSkipped logs a source row dropped for an unparseable date
func (sl *StructuredLogger) LogRowSkipped(ctx context.Context, row int, dateText string, err error) {
	fields := NewFields().
		WithRow(row, dateText).
		WithError(err).
		WithOperation(OpParse)

	sl.logger.WithComponent(ComponentParser).WarnContext(ctx, "Could not parse date, skipping row", fields.ToSlice()...)
}

// LogPageWritten logs a rendered page landing on disk
func (sl *StructuredLogger) LogPageWritten(ctx context.Context, template, path string, skipped bool) {
	fields := NewFields().
		WithPage(template, path).
		WithOperation(OpWrite)
	fields["unchanged"] = skipped

	sl.logger.WithComponent(ComponentSite).DebugContext(ctx, "Page written", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
