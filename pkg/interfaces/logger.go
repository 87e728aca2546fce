package interfaces

import "context"

// Logger is the leveled logging contract used across the pipeline. It mirrors
// github.com/goliatone/go-logger so that package plugs in through a thin adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers, one per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to every entry of the returned logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
