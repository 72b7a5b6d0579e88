package icsfeed

import (
	"log/slog"
	"testing"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

const icsFixture = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//campus//dining hours//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:single-brunch@campus\r\n" +
	"DTSTART:20240316T140000Z\r\n" +
	"DTEND:20240316T180000Z\r\n" +
	"SUMMARY:Brunch\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly-lunch@campus\r\n" +
	"DTSTART:20240304T150000Z\r\n" +
	"DTEND:20240304T190000Z\r\n" +
	"SUMMARY:Lunch\r\n" +
	"RRULE:FREQ=WEEKLY;BYDAY=MO\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func testCalendar(t *testing.T) *domain.Calendar {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load reference timezone: %v", err)
	}
	return domain.NewCalendar(loc, time.Monday, slog.Default())
}

func TestParseEvents(t *testing.T) {
	cal := testCalendar(t)

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC)

	events, err := ParseEvents([]byte(icsFixture), cal, from, until)
	if err != nil {
		t.Fatalf("ParseEvents() error: %v", err)
	}

	var brunches, lunches []domain.Event
	for _, e := range events {
		switch e.Label {
		case "Brunch":
			brunches = append(brunches, e)
		case "Lunch":
			lunches = append(lunches, e)
		default:
			t.Errorf("unexpected event label %q", e.Label)
		}
	}

	if len(brunches) != 1 {
		t.Fatalf("got %d brunch events, want 1", len(brunches))
	}
	// 14:00Z on Mar 16 is 10:00 in New York; canonical day is Mar 16.
	wantDay := domain.Day{Year: 2024, Month: 3, Day: 16}
	if brunches[0].Day != wantDay {
		t.Errorf("brunch day = %v, want %v", brunches[0].Day, wantDay)
	}
	if brunches[0].Duration() != 4*time.Hour {
		t.Errorf("brunch duration = %v, want 4h", brunches[0].Duration())
	}

	// Two Mondays fall inside [Mar 10, Mar 24): Mar 11 and Mar 18.
	if len(lunches) != 2 {
		t.Fatalf("got %d weekly lunch occurrences, want 2", len(lunches))
	}
	wantDays := map[domain.Day]bool{
		{Year: 2024, Month: 3, Day: 11}: true,
		{Year: 2024, Month: 3, Day: 18}: true,
	}
	for _, l := range lunches {
		if !wantDays[l.Day] {
			t.Errorf("unexpected lunch occurrence day %v", l.Day)
		}
		if l.Duration() != 4*time.Hour {
			t.Errorf("lunch occurrence duration = %v, want 4h", l.Duration())
		}
	}
}

func TestParseEventsOutsideRange(t *testing.T) {
	cal := testCalendar(t)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	events, err := ParseEvents([]byte(icsFixture), cal, from, until)
	if err != nil {
		t.Fatalf("ParseEvents() error: %v", err)
	}

	for _, e := range events {
		if e.Label == "Brunch" {
			t.Errorf("one-off event outside range was not dropped")
		}
	}
}

func TestParseEventsEmptyBody(t *testing.T) {
	if _, err := ParseEvents(nil, testCalendar(t), time.Now(), time.Now().Add(time.Hour)); err == nil {
		t.Errorf("ParseEvents(empty) = nil error")
	}
}

func TestParseEventsInvertedRange(t *testing.T) {
	now := time.Now()
	if _, err := ParseEvents([]byte(icsFixture), testCalendar(t), now, now.Add(-time.Hour)); err == nil {
		t.Errorf("ParseEvents() with inverted range = nil error")
	}
}
