// Package directory assembles the availability answer for the whole eatery
// directory: one feed snapshot, one favorites snapshot, one reference
// instant, evaluated through the filter, status, salience and timing
// components.
package directory

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/observability/metrics"
	"github.com/campusdine/eatery-availability/internal/service/filter"
	"github.com/campusdine/eatery-availability/internal/service/predicate"
	"github.com/campusdine/eatery-availability/internal/service/salience"
	"github.com/campusdine/eatery-availability/internal/service/status"
	"github.com/campusdine/eatery-availability/internal/service/timing"
)

// Source supplies the current eatery snapshot.
type Source interface {
	Eateries(ctx context.Context) ([]domain.Eatery, error)
}

// Entry is one eatery with everything the presentation layer needs.
type Entry struct {
	Eatery   domain.Eatery
	Status   domain.Status
	Salient  *domain.Event
	Favorite bool
	Timing   timing.Estimate
}

type Service struct {
	source    Source
	favorites domain.FavoriteRepository
	estimator *timing.Estimator
	metrics   *metrics.AvailabilityMetrics
	recorder  domain.StatusRecorder
}

func NewService(
	source Source,
	favorites domain.FavoriteRepository,
	estimator *timing.Estimator,
	availabilityMetrics *metrics.AvailabilityMetrics,
	recorder domain.StatusRecorder,
) *Service {
	return &Service{
		source:    source,
		favorites: favorites,
		estimator: estimator,
		metrics:   availabilityMetrics,
		recorder:  recorder,
	}
}

// List evaluates the filter over the current snapshot and classifies every
// accepted eatery at now. The reference instant is taken once by the caller
// and reused for every eatery so one listing is internally consistent.
func (s *Service) List(ctx context.Context, f filter.Filter, now time.Time) ([]Entry, error) {
	started := time.Now()

	eateries, err := s.source.Eateries(ctx)
	if err != nil {
		return nil, err
	}

	env := s.snapshotEnv(ctx)
	pred := f.Predicate()

	entries := make([]Entry, 0, len(eateries))
	statusRecords := make([]domain.StatusRecord, 0, len(eateries))

	for _, eatery := range eateries {
		accepted := pred.Evaluate(eatery, env)
		if s.metrics != nil {
			s.metrics.RecordFilterEvaluation(ctx, accepted)
		}
		if !accepted {
			continue
		}

		entry := s.buildEntry(eatery, env, f.Origin, now)
		entries = append(entries, entry)

		if s.metrics != nil {
			s.metrics.RecordStatusResolved(ctx, entry.Status.Kind.String())
		}
		statusRecords = append(statusRecords, domain.StatusRecord{
			EateryID:   eatery.ID,
			EateryName: eatery.Name,
			Kind:       entry.Status.Kind,
			At:         now,
		})
	}

	if s.recorder != nil {
		if err := s.recorder.RecordStatuses(ctx, statusRecords); err != nil {
			slog.WarnContext(ctx, "failed to record status classifications",
				slog.String("error", err.Error()),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordListDuration(ctx, time.Since(started))
	}

	slog.DebugContext(ctx, "directory listing assembled",
		slog.Int("total", len(eateries)),
		slog.Int("accepted", len(entries)),
		slog.Bool("filtered", f.Enabled()),
	)

	return entries, nil
}

// Get classifies a single eatery by ID.
func (s *Service) Get(ctx context.Context, id int64, origin *domain.Point, now time.Time) (Entry, error) {
	eateries, err := s.source.Eateries(ctx)
	if err != nil {
		return Entry{}, err
	}

	env := s.snapshotEnv(ctx)

	for _, eatery := range eateries {
		if eatery.ID == id {
			return s.buildEntry(eatery, env, origin, now), nil
		}
	}
	return Entry{}, domain.ErrEateryNotFound
}

func (s *Service) buildEntry(eatery domain.Eatery, env predicate.Env, origin *domain.Point, now time.Time) Entry {
	entry := Entry{
		Eatery:   eatery,
		Status:   status.Resolve(eatery.Events, now),
		Favorite: env.Favorites[eatery.ID],
	}

	if sal, ok := salience.Salient(eatery.Events, now, nil); ok {
		entry.Salient = &sal
	}

	if s.estimator != nil {
		entry.Timing = s.estimator.Estimate(eatery, origin, now)
	}

	return entry
}

// snapshotEnv takes the favorites snapshot once per request. A failing
// favorites store degrades to "nothing favorited" instead of failing the
// listing.
func (s *Service) snapshotEnv(ctx context.Context) predicate.Env {
	if s.favorites == nil {
		return predicate.Env{}
	}

	snapshot, err := s.favorites.Snapshot(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to snapshot favorites, treating all as unfavorited",
			slog.String("error", err.Error()),
		)
		return predicate.Env{}
	}
	return predicate.Env{Favorites: snapshot}
}
