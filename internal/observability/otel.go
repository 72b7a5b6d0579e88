// Package observability wires the OpenTelemetry metrics pipeline. Metric
// instruments themselves live in observability/metrics.
package observability

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ShutdownFunc flushes and stops the metrics pipeline.
type ShutdownFunc func(ctx context.Context) error

// InitMetrics installs the global meter provider. Without an OTLP endpoint
// configured the default no-op provider stays in place, so instruments keep
// working and exporting is simply off.
func InitMetrics(ctx context.Context, serviceName, version string) (ShutdownFunc, error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" &&
		os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT") == "" {
		slog.InfoContext(ctx, "OTLP endpoint not configured, metrics export disabled")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	))
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second),
		)),
	)
	otel.SetMeterProvider(provider)

	slog.InfoContext(ctx, "metrics export enabled",
		slog.String("service", serviceName),
	)

	return provider.Shutdown, nil
}
