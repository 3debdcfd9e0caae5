package core

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-training/maths-mcp/pkg/maths"

	"github.com/google/uuid"
)

// RequestIDKey is a custom context key type for storing the request ID in context.
type RequestIDKey struct{}

// EvaluatorKey is a custom context key type for storing the maths evaluator in context.
type EvaluatorKey struct{}

// RequestIDHeader is the HTTP header used to propagate a caller supplied request ID.
const RequestIDHeader = "X-Request-ID"

// WithRequestID returns a new context with a generated request ID set.
func WithRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, uuid.New().String())
}

// EnsureRequestID keeps an existing request ID or generates one.
func EnsureRequestID(ctx context.Context) context.Context {
	if RequestIDFromContext(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx)
}

// RequestIDFromRequest uses the X-Request-ID header when it holds a valid UUID,
// otherwise it generates a new request ID. Used for HTTP transport.
func RequestIDFromRequest(ctx context.Context, r *http.Request) context.Context {
	if id, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
		return context.WithValue(ctx, RequestIDKey{}, id.String())
	}
	return WithRequestID(ctx)
}

// RequestIDFromContext returns the request ID, or an empty string if none is set.
func RequestIDFromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey{}).(string)
	return reqID
}

// LoggerFromCtx returns a slog.Logger with request_id field if present in context.
// If no request ID is found, it returns the default logger.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if reqID := RequestIDFromContext(ctx); reqID != "" {
		return slog.Default().With("request_id", reqID)
	}
	return slog.Default()
}

// WithEvaluator returns a new context with the provided evaluator set.
func WithEvaluator(ctx context.Context, e *maths.Evaluator) context.Context {
	return context.WithValue(ctx, EvaluatorKey{}, e)
}

// EvaluatorFromContext returns the evaluator stored in ctx. Without one it
// returns an evaluator using the default cap policy.
func EvaluatorFromContext(ctx context.Context) *maths.Evaluator {
	if e, ok := ctx.Value(EvaluatorKey{}).(*maths.Evaluator); ok && e != nil {
		return e
	}
	return maths.New()
}
