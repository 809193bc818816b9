package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	fieldsKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithFields attaches fields to every log line written through FromCtx
// further down the call chain. Fields already on ctx are kept.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	prev := fieldsFrom(ctx)
	merged := make([]zap.Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

func fieldsFrom(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(fieldsKey).([]zap.Field)
	return fields
}

// FromCtx returns the global logger tagged with the request id and any
// fields stored by WithFields.
func FromCtx(ctx context.Context) *zap.Logger {
	fields := fieldsFrom(ctx)
	if reqID := RequestIDFrom(ctx); reqID != "" {
		fields = append([]zap.Field{zap.String("request_id", reqID)}, fields...)
	}
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
