package calculator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"go-chi-compute/internal/compute"
)

// instruments holds the calculator's OTel metric instruments.
type instruments struct {
	ops        metric.Int64Counter
	duration   metric.Float64Histogram
	errors     metric.Int64Counter
	lastResult metric.Float64Gauge
}

func newInstruments(meter metric.Meter, engine *compute.Calculator) (*instruments, error) {
	var (
		in  instruments
		err error
	)

	in.ops, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops counter: %w", err)
	}

	in.duration, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops histogram: %w", err)
	}

	in.errors, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	in.lastResult, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last finite calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating result gauge: %w", err)
	}

	_, err = meter.Int64ObservableGauge("calculator.history.size",
		metric.WithDescription("Number of records in the calculator history"),
		metric.WithUnit("{record}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			stats := engine.Statistics()
			o.Observe(int64(stats.HistoryCount), metric.WithAttributes(attribute.String("calculator", stats.Name)))
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating history gauge: %w", err)
	}

	return &in, nil
}

// completed records a successful operation.
func (in *instruments) completed(ctx context.Context, op string, elapsedMS float64, result compute.Number) {
	attrs := metric.WithAttributes(attribute.String("operation", op))
	in.ops.Add(ctx, 1, attrs)
	in.duration.Record(ctx, elapsedMS, attrs)
	if result.IsFinite() {
		in.lastResult.Record(ctx, result.Float64(), attrs)
	}
}
