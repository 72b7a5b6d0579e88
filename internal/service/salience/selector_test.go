package salience

import (
	"testing"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

var testDay = domain.Day{Year: 2024, Month: 3, Day: 15}

func event(label string, start, end time.Time) domain.Event {
	return domain.NewEvent(testDay, start, end, label)
}

func TestCurrent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		events    []domain.Event
		wantLabel string
		wantFound bool
	}{
		{
			name:      "empty list",
			events:    nil,
			wantFound: false,
		},
		{
			name: "inside window",
			events: []domain.Event{
				event("Lunch", now.Add(-time.Hour), now.Add(time.Hour)),
			},
			wantLabel: "Lunch",
			wantFound: true,
		},
		{
			name: "start boundary counts as current",
			events: []domain.Event{
				event("Lunch", now, now.Add(2*time.Hour)),
			},
			wantLabel: "Lunch",
			wantFound: true,
		},
		{
			name: "end boundary counts as current",
			events: []domain.Event{
				event("Brunch", now.Add(-2*time.Hour), now),
			},
			wantLabel: "Brunch",
			wantFound: true,
		},
		{
			name: "overlapping windows: first in list order wins",
			events: []domain.Event{
				event("First", now.Add(-time.Hour), now.Add(time.Hour)),
				event("Second", now.Add(-30*time.Minute), now.Add(90*time.Minute)),
			},
			wantLabel: "First",
			wantFound: true,
		},
		{
			name: "nothing happening",
			events: []domain.Event{
				event("Dinner", now.Add(time.Hour), now.Add(3*time.Hour)),
			},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Current(tt.events, now, nil)
			if found != tt.wantFound {
				t.Fatalf("Current() found = %v, want %v", found, tt.wantFound)
			}
			if found && got.Label != tt.wantLabel {
				t.Errorf("Current() = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestCurrentDayFilter(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	otherDay := domain.Day{Year: 2024, Month: 3, Day: 16}

	events := []domain.Event{
		domain.NewEvent(otherDay, now.Add(-time.Hour), now.Add(time.Hour), "WrongDay"),
		domain.NewEvent(testDay, now.Add(-time.Hour), now.Add(time.Hour), "RightDay"),
	}

	got, found := Current(events, now, &testDay)
	if !found || got.Label != "RightDay" {
		t.Errorf("Current() with day filter = %q (found=%v), want RightDay", got.Label, found)
	}
}

func TestNextPicksSmallestStart(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	events := []domain.Event{
		event("Dinner", now.Add(5*time.Hour), now.Add(7*time.Hour)),
		event("Snack", now.Add(2*time.Hour), now.Add(3*time.Hour)),
		event("Past", now.Add(-3*time.Hour), now.Add(-time.Hour)),
	}

	got, found := Next(events, now, nil)
	if !found || got.Label != "Snack" {
		t.Errorf("Next() = %q (found=%v), want Snack", got.Label, found)
	}
}

func TestNextIncludesBoundaryInstant(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	events := []domain.Event{
		event("Exact", now, now.Add(time.Hour)),
	}

	if _, found := Next(events, now, nil); !found {
		t.Errorf("Next() missed event starting exactly at reference instant")
	}
}

func TestPreviousPicksLargestEnd(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	events := []domain.Event{
		event("Breakfast", now.Add(-5*time.Hour), now.Add(-4*time.Hour)),
		event("Brunch", now.Add(-3*time.Hour), now.Add(-time.Hour)),
		event("Future", now.Add(time.Hour), now.Add(2*time.Hour)),
	}

	got, found := Previous(events, now, nil)
	if !found || got.Label != "Brunch" {
		t.Errorf("Previous() = %q (found=%v), want Brunch", got.Label, found)
	}
}

func TestSalientFallbackOrder(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		events    []domain.Event
		wantLabel string
		wantFound bool
	}{
		{
			name: "current wins over imminent next",
			events: []domain.Event{
				event("Next", now.Add(time.Minute), now.Add(time.Hour)),
				event("Current", now.Add(-time.Hour), now.Add(30*time.Second)),
			},
			wantLabel: "Current",
			wantFound: true,
		},
		{
			name: "next wins over more recent previous",
			events: []domain.Event{
				event("Previous", now.Add(-time.Hour), now.Add(-time.Minute)),
				event("Next", now.Add(5*time.Hour), now.Add(7*time.Hour)),
			},
			wantLabel: "Next",
			wantFound: true,
		},
		{
			name: "previous as last resort",
			events: []domain.Event{
				event("Previous", now.Add(-3*time.Hour), now.Add(-2*time.Hour)),
			},
			wantLabel: "Previous",
			wantFound: true,
		},
		{
			name:      "no events at all",
			events:    nil,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Salient(tt.events, now, nil)
			if found != tt.wantFound {
				t.Fatalf("Salient() found = %v, want %v", found, tt.wantFound)
			}
			if found && got.Label != tt.wantLabel {
				t.Errorf("Salient() = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}
