package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const availabilityMeterName = "availability.service"

type AvailabilityMetrics struct {
	statusResolved    metric.Int64Counter
	filterEvaluations metric.Int64Counter
	listDuration      metric.Float64Histogram
}

func NewAvailabilityMetrics() (*AvailabilityMetrics, error) {
	meter := otel.Meter(availabilityMeterName)

	statusResolved, err := meter.Int64Counter(
		"availability_status_resolved_total",
		metric.WithDescription("Status classifications by kind"),
		metric.WithUnit("{status}"),
	)
	if err != nil {
		return nil, err
	}

	filterEvaluations, err := meter.Int64Counter(
		"availability_filter_evaluations_total",
		metric.WithDescription("Predicate evaluations by outcome"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	listDuration, err := meter.Float64Histogram(
		"availability_list_duration_seconds",
		metric.WithDescription("Time spent assembling a directory listing"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	return &AvailabilityMetrics{
		statusResolved:    statusResolved,
		filterEvaluations: filterEvaluations,
		listDuration:      listDuration,
	}, nil
}

func (m *AvailabilityMetrics) RecordStatusResolved(ctx context.Context, kind string) {
	m.statusResolved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *AvailabilityMetrics) RecordFilterEvaluation(ctx context.Context, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.filterEvaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *AvailabilityMetrics) RecordListDuration(ctx context.Context, d time.Duration) {
	m.listDuration.Record(ctx, d.Seconds())
}
