package eateryfeed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

// HoursSource supplies additional service-window events per eatery, keyed
// by eatery ID. The ICS hours loader implements it.
type HoursSource interface {
	LoadEvents(ctx context.Context, from, until time.Time) (map[int64][]domain.Event, error)
}

// Store holds the latest feed snapshot. The engine itself never caches;
// snapshotting lives here at the infrastructure boundary so that one
// listing request sees one consistent directory.
type Store struct {
	client *Client
	hours  HoursSource

	// hoursHorizon bounds how far ahead ICS recurrences are expanded.
	hoursHorizon time.Duration

	mu       sync.RWMutex
	eateries []domain.Eatery
}

func NewStore(client *Client, hours HoursSource, hoursHorizon time.Duration) *Store {
	if hoursHorizon <= 0 {
		hoursHorizon = 7 * 24 * time.Hour
	}
	return &Store{
		client:       client,
		hours:        hours,
		hoursHorizon: hoursHorizon,
	}
}

// Refresh pulls the upstream feed, merges ICS-sourced events, and swaps the
// snapshot. The previous snapshot stays in place on failure.
func (s *Store) Refresh(ctx context.Context, now time.Time) error {
	eateries, err := s.client.FetchEateries(ctx)
	if err != nil {
		return err
	}

	if s.hours != nil {
		extra, err := s.hours.LoadEvents(ctx, now, now.Add(s.hoursHorizon))
		if err != nil {
			// ICS hours are supplemental; a broken calendar feed must not
			// take the directory down.
			slog.WarnContext(ctx, "failed to load ICS hours, keeping feed events only",
				slog.String("error", err.Error()),
			)
		} else {
			for i := range eateries {
				if events, ok := extra[eateries[i].ID]; ok {
					eateries[i].Events = append(eateries[i].Events, events...)
				}
			}
		}
	}

	s.mu.Lock()
	s.eateries = eateries
	s.mu.Unlock()

	slog.InfoContext(ctx, "eatery snapshot refreshed",
		slog.Int("eatery_count", len(eateries)),
	)

	return nil
}

// Eateries returns the current snapshot. Callers must not mutate it.
func (s *Store) Eateries(ctx context.Context) ([]domain.Eatery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.eateries) == 0 {
		return nil, domain.ErrFeedEmpty
	}
	return s.eateries, nil
}
