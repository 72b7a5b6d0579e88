package status

import (
	"testing"
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/service/salience"
)

var testDay = domain.Day{Year: 2024, Month: 3, Day: 15}

func event(label string, start, end time.Time) domain.Event {
	return domain.NewEvent(testDay, start, end, label)
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		events   []domain.Event
		wantKind domain.StatusKind
	}{
		{
			name:     "empty event list is closed",
			events:   nil,
			wantKind: domain.StatusClosed,
		},
		{
			name: "current event well before close",
			events: []domain.Event{
				event("Lunch", now.Add(-time.Hour), now.Add(3*time.Hour)),
			},
			wantKind: domain.StatusOpen,
		},
		{
			name: "ending in exactly 60 minutes is closing soon",
			events: []domain.Event{
				event("Lunch", now.Add(-time.Hour), now.Add(60*time.Minute)),
			},
			wantKind: domain.StatusClosingSoon,
		},
		{
			name: "ending in 61 minutes is still open",
			events: []domain.Event{
				event("Lunch", now.Add(-time.Hour), now.Add(61*time.Minute)),
			},
			wantKind: domain.StatusOpen,
		},
		{
			name: "starting in exactly 60 minutes is opening soon",
			events: []domain.Event{
				event("Dinner", now.Add(60*time.Minute), now.Add(3*time.Hour)),
			},
			wantKind: domain.StatusOpeningSoon,
		},
		{
			name: "starting in 61 minutes is closed",
			events: []domain.Event{
				event("Dinner", now.Add(61*time.Minute), now.Add(3*time.Hour)),
			},
			wantKind: domain.StatusClosed,
		},
		{
			name: "only past events is closed",
			events: []domain.Event{
				event("Breakfast", now.Add(-4*time.Hour), now.Add(-2*time.Hour)),
			},
			wantKind: domain.StatusClosed,
		},
		{
			name: "current considered before next even when next is imminent",
			events: []domain.Event{
				event("Dinner", now.Add(10*time.Minute), now.Add(3*time.Hour)),
				event("Lunch", now.Add(-2*time.Hour), now.Add(90*time.Minute)),
			},
			wantKind: domain.StatusOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.events, now)
			if got.Kind != tt.wantKind {
				t.Errorf("Resolve() = %v, want %v", got.Kind, tt.wantKind)
			}
			if tt.wantKind == domain.StatusClosed && got.Event != nil {
				t.Errorf("closed status carries event %v, want nil", got.Event)
			}
			if tt.wantKind != domain.StatusClosed && got.Event == nil {
				t.Errorf("%v status missing event payload", tt.wantKind)
			}
		})
	}
}

// Scenario rows straight from the availability contract: one event relative
// to now determines both the status and the salient event.
func TestResolveEndToEndScenarios(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("closing soon half hour before end", func(t *testing.T) {
		events := []domain.Event{event("Lunch", now.Add(-60*time.Minute), now.Add(30*time.Minute))}
		if got := Resolve(events, now); got.Kind != domain.StatusClosingSoon {
			t.Errorf("Resolve() = %v, want closing_soon", got.Kind)
		}
	})

	t.Run("opening soon before start", func(t *testing.T) {
		events := []domain.Event{event("Dinner", now.Add(45*time.Minute), now.Add(90*time.Minute))}
		if got := Resolve(events, now); got.Kind != domain.StatusOpeningSoon {
			t.Errorf("Resolve() = %v, want opening_soon", got.Kind)
		}
	})

	t.Run("long past event: closed but still salient", func(t *testing.T) {
		events := []domain.Event{event("Breakfast", now.Add(-180*time.Minute), now.Add(-120*time.Minute))}

		if got := Resolve(events, now); got.Kind != domain.StatusClosed {
			t.Errorf("Resolve() = %v, want closed", got.Kind)
		}
		sal, ok := salience.Salient(events, now, nil)
		if !ok || sal.Label != "Breakfast" {
			t.Errorf("Salient() = %q (ok=%v), want Breakfast", sal.Label, ok)
		}
	})
}
