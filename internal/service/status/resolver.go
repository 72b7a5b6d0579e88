// Package status derives the four-state availability classification from an
// event list and a reference instant. Resolution is a per-call
// classification, not a stored automaton: every call recomputes from
// scratch so the result can never go stale.
package status

import (
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/service/salience"
)

// SoonThreshold is the fixed window within which an open eatery is
// additionally flagged as closing soon, and a closed one as opening soon.
// It is a policy constant, not configurable per eatery.
const SoonThreshold = 60 * time.Minute

// Resolve classifies availability at now. It is total: for any event list,
// including an empty one, it returns exactly one of the four states.
func Resolve(events []domain.Event, now time.Time) domain.Status {
	if current, ok := salience.Current(events, now, nil); ok {
		if current.End.Sub(now) <= SoonThreshold {
			return domain.ClosingSoon(current)
		}
		return domain.Open(current)
	}

	if next, ok := salience.Next(events, now, nil); ok {
		if next.Start.Sub(now) <= SoonThreshold {
			return domain.OpeningSoon(next)
		}
	}

	return domain.Closed()
}
