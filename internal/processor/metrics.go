package processor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"go-chi-compute/internal/compute"
)

type instruments struct {
	ops      metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	items    metric.Int64Histogram
}

func newInstruments(meter metric.Meter, engine *compute.Processor) (*instruments, error) {
	ops, err := meter.Int64Counter("processor.operations.total",
		metric.WithDescription("Total number of processor operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops counter: %w", err)
	}

	duration, err := meter.Float64Histogram("processor.operation.duration",
		metric.WithDescription("Duration of processor operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	errs, err := meter.Int64Counter("processor.errors.total",
		metric.WithDescription("Total number of rejected processor requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	items, err := meter.Int64Histogram("processor.input.items",
		metric.WithDescription("Number of items submitted per processor operation"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(0, 1, 10, 100, 1000, 10000),
	)
	if err != nil {
		return nil, fmt.Errorf("creating items histogram: %w", err)
	}

	_, err = meter.Int64ObservableGauge("processor.history.size",
		metric.WithDescription("Number of records in the processor history"),
		metric.WithUnit("{record}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			stats := engine.Statistics()
			o.Observe(int64(stats.HistoryCount), metric.WithAttributes(attribute.String("processor", stats.Name)))
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating history gauge: %w", err)
	}

	return &instruments{ops: ops, duration: duration, errors: errs, items: items}, nil
}

func (in *instruments) completed(ctx context.Context, op string, elapsedMS float64, inputItems int) {
	attrs := metric.WithAttributes(attribute.String("operation", op))
	in.ops.Add(ctx, 1, attrs)
	in.duration.Record(ctx, elapsedMS, attrs)
	in.items.Record(ctx, int64(inputItems), attrs)
}
