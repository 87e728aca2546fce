package logging

import (
	"context"
	"maps"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// WithFields attaches structured fields when logger supports the optional
// FieldsLogger extension. Nil loggers and empty maps pass through untouched.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// FromContext binds logger to ctx and applies any fields carried by the
// context, so per-run values such as the CLI run id reach every entry.
func FromContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		logger = NoOp()
	}
	if ctx == nil {
		return logger
	}
	return WithFields(logger.WithContext(ctx), ContextFields(ctx))
}
