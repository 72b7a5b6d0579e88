package statusrecorder

import (
	"context"

	"github.com/campusdine/eatery-availability/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.StatusRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordStatuses(_ context.Context, _ []domain.StatusRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
