// Package timing estimates how long it takes a user to reach and be served
// by an eatery: great-circle walk time plus a historical wait-time lookup
// at the projected arrival instant.
package timing

import (
	"math"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

const (
	// walkSpeedMetersPerSecond is the fixed average walking speed used for
	// all walk-time estimates.
	walkSpeedMetersPerSecond = 1.42

	earthRadiusMeters = 6371000.0
)

// WalkTime estimates the walking duration between two points, or reports
// unknown when either point is absent.
func WalkTime(origin, dest *domain.Point) (time.Duration, bool) {
	if origin == nil || dest == nil {
		return 0, false
	}
	meters := haversineMeters(*origin, *dest)
	seconds := meters / walkSpeedMetersPerSecond
	return time.Duration(seconds * float64(time.Second)), true
}

// WalkMinutes converts a walk duration to whole minutes, rounding down.
// This is the granularity both the distance predicate and the presentation
// layer work in.
func WalkMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

func haversineMeters(a, b domain.Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// Estimate is the end-to-end timing answer for one eatery. The zero value
// of either half means unknown, signalled by the corresponding flag.
type Estimate struct {
	Walk      time.Duration
	WalkKnown bool
	Wait      domain.WaitTimeSample
	WaitKnown bool
}

// Estimator resolves wait-time stores by calendar day. The calendar is
// injected so the estimator shares the engine's fixed reference timezone.
type Estimator struct {
	cal *domain.Calendar
}

func NewEstimator(cal *domain.Calendar) *Estimator {
	return &Estimator{cal: cal}
}

// WaitTime looks up the nearest wait-time sample for the calendar day of
// at. Unknown when the eatery has no sample store for that day.
func (e *Estimator) WaitTime(eatery domain.Eatery, at time.Time) (domain.WaitTimeSample, bool) {
	day := e.cal.DayOf(at)
	store, ok := eatery.WaitTimesByDay[day]
	if !ok {
		return domain.WaitTimeSample{}, false
	}
	return store.Sample(at)
}

// Estimate combines walk and wait. When the walk time is known, the wait
// lookup is made at departure+walk: the question is what the wait will be
// when the user actually arrives, not what it is now. The departure instant
// is taken once and reused; nothing here re-samples a live clock.
func (e *Estimator) Estimate(eatery domain.Eatery, origin *domain.Point, departure time.Time) Estimate {
	var est Estimate

	walk, walkKnown := WalkTime(origin, eatery.Coordinates)
	est.Walk = walk
	est.WalkKnown = walkKnown

	arrival := departure
	if walkKnown {
		arrival = departure.Add(walk)
	}

	if wait, ok := e.WaitTime(eatery, arrival); ok {
		est.Wait = wait
		est.WaitKnown = true
	}

	return est
}
