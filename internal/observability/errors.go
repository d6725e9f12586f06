package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-compute/internal/handlers"
)

// Failure describes a request that could not be served.
type Failure struct {
	Operation string
	Message   string // returned to the client
	Err       error
	Status    int
}

// RecordError is the single failure path for every domain handler: it marks
// the span, counts the error per operation, logs with trace context and
// writes the JSON error body. The request ID travels in the X-Request-ID
// header only.
func RecordError(ctx context.Context, w http.ResponseWriter, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, f Failure) {
	span.RecordError(f.Err)
	span.SetStatus(codes.Error, f.Message)

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", f.Operation)))

	logger.Error(f.Message,
		zap.String("operation", f.Operation),
		zap.Error(f.Err),
		zap.Int("status", f.Status),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, f.Status, f.Message)
}
