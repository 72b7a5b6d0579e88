// Package salience picks the events most relevant to a reference instant
// out of a list of service windows. All functions are pure: they never read
// the clock, never mutate their inputs, and are safe to call concurrently
// with different reference instants.
package salience

import (
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

// Boundary policy: an event whose start equals the reference instant counts
// as current. Next keeps the inclusive comparison as well, so the boundary
// instant is handled the same way at every call site.

// Current returns the first event in list order containing now, restricted
// to day when a day filter is supplied.
func Current(events []domain.Event, now time.Time, day *domain.Day) (domain.Event, bool) {
	for _, e := range events {
		if day != nil && e.Day != *day {
			continue
		}
		if e.Happening(now) {
			return e, true
		}
	}
	return domain.Event{}, false
}

// Next returns the event with the smallest start at or after now.
func Next(events []domain.Event, now time.Time, day *domain.Day) (domain.Event, bool) {
	var best domain.Event
	found := false
	for _, e := range events {
		if day != nil && e.Day != *day {
			continue
		}
		if e.Start.Before(now) {
			continue
		}
		if !found || e.Start.Before(best.Start) {
			best = e
			found = true
		}
	}
	return best, found
}

// Previous returns the event with the largest end at or before now.
func Previous(events []domain.Event, now time.Time, day *domain.Day) (domain.Event, bool) {
	var best domain.Event
	found := false
	for _, e := range events {
		if day != nil && e.Day != *day {
			continue
		}
		if e.End.After(now) {
			continue
		}
		if !found || e.End.After(best.End) {
			best = e
			found = true
		}
	}
	return best, found
}

// Salient returns the single most relevant event: what is happening now,
// else what is coming up, else what just ended.
func Salient(events []domain.Event, now time.Time, day *domain.Day) (domain.Event, bool) {
	if e, ok := Current(events, now, day); ok {
		return e, true
	}
	if e, ok := Next(events, now, day); ok {
		return e, true
	}
	return Previous(events, now, day)
}
