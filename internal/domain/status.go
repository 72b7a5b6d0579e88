package domain

// StatusKind is the availability classification of an eatery at an instant.
type StatusKind string

const (
	StatusClosed      StatusKind = "closed"
	StatusOpeningSoon StatusKind = "opening_soon"
	StatusOpen        StatusKind = "open"
	StatusClosingSoon StatusKind = "closing_soon"
)

func (k StatusKind) String() string {
	return string(k)
}

// Status is a tagged union over the four availability states. Event is the
// payload of the non-Closed variants: the current event for Open and
// ClosingSoon, the upcoming event for OpeningSoon, nil for Closed. It is
// always recomputed from an event list plus a reference instant and never
// cached, since a stale value would show a wrong open/closed indicator.
type Status struct {
	Kind  StatusKind
	Event *Event
}

func Closed() Status {
	return Status{Kind: StatusClosed}
}

func OpeningSoon(e Event) Status {
	return Status{Kind: StatusOpeningSoon, Event: &e}
}

func Open(e Event) Status {
	return Status{Kind: StatusOpen, Event: &e}
}

func ClosingSoon(e Event) Status {
	return Status{Kind: StatusClosingSoon, Event: &e}
}

// IsOpen reports whether the eatery is currently serving, i.e. the status
// is Open or ClosingSoon.
func (s Status) IsOpen() bool {
	return s.Kind == StatusOpen || s.Kind == StatusClosingSoon
}
