package icsfeed

import (
	"bytes"
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/campusdine/eatery-availability/internal/domain"
)

const maxOccurrencesPerEvent = 500

// ParseEvents parses an ICS payload and expands its VEVENTs into concrete
// service windows inside [from, until). Recurring events (weekly hours are
// the common case) are expanded through their RRULE; a VEVENT that fails to
// parse is skipped rather than failing the whole payload.
func ParseEvents(body []byte, cal *domain.Calendar, from, until time.Time) ([]domain.Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ics body")
	}
	if until.Before(from) {
		return nil, errors.New("ics expansion range end before start")
	}

	parsed, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []domain.Event
	for _, ve := range parsed.Events() {
		out = append(out, expandVEvent(ve, cal, from, until)...)
	}
	return out, nil
}

func expandVEvent(ve *ical.VEvent, cal *domain.Calendar, from, until time.Time) []domain.Event {
	start, err := ve.GetStartAt()
	if err != nil {
		return nil
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil
	}

	label := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		label = p.Value
	}

	rawRRule := ""
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		rawRRule = p.Value
	}

	if rawRRule == "" {
		if end.Before(from) || !start.Before(until) {
			return nil
		}
		return []domain.Event{makeEvent(cal, start, end, label)}
	}

	rule, err := rrule.StrToRRule(rawRRule)
	if err != nil {
		return nil
	}
	rule.DTStart(start)

	duration := end.Sub(start)
	occStarts := rule.Between(from.In(start.Location()), until.In(start.Location()), true)
	if len(occStarts) > maxOccurrencesPerEvent {
		occStarts = occStarts[:maxOccurrencesPerEvent]
	}

	events := make([]domain.Event, 0, len(occStarts))
	for _, occStart := range occStarts {
		events = append(events, makeEvent(cal, occStart, occStart.Add(duration), label))
	}
	return events
}

func makeEvent(cal *domain.Calendar, start, end time.Time, label string) domain.Event {
	loc := cal.Location()
	return domain.NewEvent(cal.DayOf(start), start.In(loc), end.In(loc), label)
}
