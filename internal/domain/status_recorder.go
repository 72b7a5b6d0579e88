package domain

import (
	"context"
	"time"
)

// StatusRecord is one status classification observed during a directory
// evaluation, recorded out of band for dashboards.
type StatusRecord struct {
	EateryID   int64
	EateryName string
	Kind       StatusKind
	At         time.Time
}

type StatusRecorder interface {
	RecordStatuses(ctx context.Context, records []StatusRecord) error
	Close() error
}
