package observability

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultServiceName = "compute-api"

// ServiceName returns OTEL_SERVICE_NAME, falling back to compute-api.
func ServiceName() string {
	name := os.Getenv("OTEL_SERVICE_NAME")
	if name == "" {
		name = defaultServiceName
	}
	return name
}

// NewResource describes this process for every OTel signal. Attributes from
// OTEL_RESOURCE_ATTRIBUTES are merged in.
func NewResource(ctx context.Context, service, version string) (*resource.Resource, error) {
	if service == "" {
		service = ServiceName()
	}

	return resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(service),
			semconv.ServiceVersion(version),
		),
	)
}
