// Package icsfeed loads supplemental service-window events from iCalendar
// feeds. Campus facilities often publish operating hours as ICS; each
// configured source maps one feed URL to one eatery.
package icsfeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

// Source maps one ICS feed to the eatery whose hours it describes.
type Source struct {
	EateryID int64
	URL      string
}

type Loader struct {
	sources    []Source
	httpClient *http.Client
	cal        *domain.Calendar
}

func NewLoader(sources []Source, cal *domain.Calendar) *Loader {
	return &Loader{
		sources: sources,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cal: cal,
	}
}

// LoadEvents fetches every source and expands its events into the
// [from, until) window. A failing source is logged and skipped so one
// broken calendar cannot hide the others.
func (l *Loader) LoadEvents(ctx context.Context, from, until time.Time) (map[int64][]domain.Event, error) {
	out := make(map[int64][]domain.Event, len(l.sources))

	var firstErr error
	for _, src := range l.sources {
		body, err := l.fetch(ctx, src.URL)
		if err != nil {
			slog.WarnContext(ctx, "ics source fetch failed",
				slog.Int64("eatery_id", src.EateryID),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		events, err := ParseEvents(body, l.cal, from, until)
		if err != nil {
			slog.WarnContext(ctx, "ics source parse failed",
				slog.Int64("eatery_id", src.EateryID),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		out[src.EateryID] = append(out[src.EateryID], events...)
	}

	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ics request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from ics source: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
