package eateryfeed

import (
	"time"

	"github.com/campusdine/eatery-availability/internal/domain"
)

// Wire DTOs for the upstream eatery feed. The engine is agnostic to the
// upstream format; this package owns the translation into the domain model.

type feedResponse struct {
	Eateries []eateryDTO `json:"eateries"`
}

type eateryDTO struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	CampusArea     string         `json:"campus_area"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	PaymentMethods []string       `json:"payment_methods"`
	Events         []eventDTO     `json:"events"`
	WaitTimes      []waitTimesDTO `json:"wait_times,omitempty"`
}

type eventDTO struct {
	Date  string            `json:"date"` // canonical day, 2006-01-02
	Start time.Time         `json:"start"`
	End   time.Time         `json:"end"`
	Label string            `json:"label,omitempty"`
	Menu  []menuCategoryDTO `json:"menu,omitempty"`
}

type menuCategoryDTO struct {
	Category string        `json:"category"`
	Items    []menuItemDTO `json:"items"`
}

type menuItemDTO struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy,omitempty"`
}

type waitTimesDTO struct {
	Date    string      `json:"date"`
	Method  string      `json:"method,omitempty"`
	Samples []sampleDTO `json:"samples"`
}

type sampleDTO struct {
	Timestamp       time.Time `json:"timestamp"`
	LowSeconds      int64     `json:"low_seconds"`
	ExpectedSeconds int64     `json:"expected_seconds"`
	HighSeconds     int64     `json:"high_seconds"`
}

const dayLayout = "2006-01-02"

func (d eateryDTO) toDomain(cal *domain.Calendar) domain.Eatery {
	e := domain.Eatery{
		ID:         d.ID,
		Name:       d.Name,
		CampusArea: d.CampusArea,
	}

	if d.Latitude != nil && d.Longitude != nil {
		e.Coordinates = &domain.Point{Latitude: *d.Latitude, Longitude: *d.Longitude}
	}

	e.PaymentMethods = make([]domain.PaymentMethod, 0, len(d.PaymentMethods))
	for _, m := range d.PaymentMethods {
		e.PaymentMethods = append(e.PaymentMethods, domain.PaymentMethod(m))
	}

	e.Events = make([]domain.Event, 0, len(d.Events))
	for _, ev := range d.Events {
		e.Events = append(e.Events, ev.toDomain(cal))
	}

	if len(d.WaitTimes) > 0 {
		e.WaitTimesByDay = make(map[domain.Day]domain.WaitTimes, len(d.WaitTimes))
		for _, wt := range d.WaitTimes {
			day, ok := parseDay(wt.Date, cal)
			if !ok {
				continue
			}
			e.WaitTimesByDay[day] = wt.toDomain()
		}
	}

	return e
}

func (d eventDTO) toDomain(cal *domain.Calendar) domain.Event {
	day, ok := parseDay(d.Date, cal)
	if !ok {
		// Canonical day missing from the feed: derive it from the start
		// instant in the reference timezone.
		day = cal.DayOf(d.Start)
	}

	ev := domain.NewEvent(day, d.Start, d.End, d.Label)
	for _, mc := range d.Menu {
		cat := domain.MenuCategory{Category: mc.Category}
		for _, it := range mc.Items {
			cat.Items = append(cat.Items, domain.MenuItem{Name: it.Name, Healthy: it.Healthy})
		}
		ev.Menu = append(ev.Menu, cat)
	}
	return ev
}

func (d waitTimesDTO) toDomain() domain.WaitTimes {
	method := domain.SamplingMethod(d.Method)
	if method == "" {
		method = domain.SamplingNearest
	}

	wt := domain.WaitTimes{Method: method}
	wt.Samples = make([]domain.WaitTimeSample, 0, len(d.Samples))
	for _, s := range d.Samples {
		wt.Samples = append(wt.Samples, domain.WaitTimeSample{
			Timestamp: s.Timestamp,
			Low:       time.Duration(s.LowSeconds) * time.Second,
			Expected:  time.Duration(s.ExpectedSeconds) * time.Second,
			High:      time.Duration(s.HighSeconds) * time.Second,
		})
	}
	return wt
}

func parseDay(s string, cal *domain.Calendar) (domain.Day, bool) {
	if s == "" {
		return domain.Day{}, false
	}
	t, err := time.ParseInLocation(dayLayout, s, cal.Location())
	if err != nil {
		return domain.Day{}, false
	}
	y, m, d := t.Date()
	return domain.Day{Year: y, Month: int(m), Day: d}, true
}
