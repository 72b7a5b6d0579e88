package statusrecorder

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/campusdine/eatery-availability/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewRecorder returns an InfluxDB-backed status recorder, or the noop
// recorder when recording is disabled or unconfigured.
func NewRecorder(ctx context.Context, cfg *Config) (domain.StatusRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "status recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, status recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "status recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

func (r *influxDBRecorder) RecordStatuses(ctx context.Context, records []domain.StatusRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		point := influxdb2.NewPoint(
			"eatery_status",
			map[string]string{
				"eatery_id": strconv.FormatInt(record.EateryID, 10),
				"eatery":    record.EateryName,
				"kind":      record.Kind.String(),
			},
			map[string]any{
				"at_unix": record.At.Unix(),
			},
			time.Now(),
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write status record to InfluxDB",
				slog.String("error", err.Error()),
				slog.Int64("eatery_id", record.EateryID),
				slog.String("kind", record.Kind.String()),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	r.client.Close()
	return nil
}
