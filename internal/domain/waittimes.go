package domain

import "time"

// SamplingMethod tags how a WaitTimes store answers lookups. Only
// nearest-neighbor is defined today; the tag exists so additional methods
// can be added without breaking callers.
type SamplingMethod string

const (
	SamplingNearest SamplingMethod = "nearest"
)

// WaitTimeSample is one historical service-wait observation.
type WaitTimeSample struct {
	Timestamp time.Time
	Low       time.Duration
	Expected  time.Duration
	High      time.Duration
}

// WaitTimes is an ordered collection of samples for one location and day.
type WaitTimes struct {
	Method  SamplingMethod
	Samples []WaitTimeSample
}

// Sample returns the observation whose timestamp is closest to at, ties
// broken by list order. An empty store returns false rather than a zero
// sample: a zero sample would read as "no wait", which is a different,
// stronger claim than "unknown".
func (w WaitTimes) Sample(at time.Time) (WaitTimeSample, bool) {
	if len(w.Samples) == 0 {
		return WaitTimeSample{}, false
	}

	best := w.Samples[0]
	bestDiff := absDuration(best.Timestamp.Sub(at))
	for _, s := range w.Samples[1:] {
		diff := absDuration(s.Timestamp.Sub(at))
		if diff < bestDiff {
			best = s
			bestDiff = diff
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
