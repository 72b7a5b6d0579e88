package domain

import "time"

// Event is a single time-bounded service window: a meal period, a cafe's
// open block, or similar. Day is the canonical day the event is "for",
// which may differ from the day its instants fall on in other timezones.
type Event struct {
	Day   Day
	Start time.Time
	End   time.Time
	Label string
	Menu  []MenuCategory
}

// NewEvent normalizes start/end so that Start <= End always holds.
func NewEvent(day Day, start, end time.Time, label string) Event {
	if end.Before(start) {
		start, end = end, start
	}
	return Event{
		Day:   day,
		Start: start,
		End:   end,
		Label: label,
	}
}

// Happening reports whether at falls inside [Start, End], both bounds
// inclusive. An event starting exactly at the query instant counts as
// happening; see the selector in service/salience for the uniform policy.
func (e Event) Happening(at time.Time) bool {
	return !at.Before(e.Start) && !at.After(e.End)
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

type MenuCategory struct {
	Category string
	Items    []MenuItem
}

type MenuItem struct {
	Name    string
	Healthy bool
}

// EventsByDay buckets events by their canonical day, preserving list order
// within each bucket.
func EventsByDay(events []Event) map[Day][]Event {
	out := make(map[Day][]Event)
	for _, e := range events {
		out[e.Day] = append(out[e.Day], e)
	}
	return out
}
