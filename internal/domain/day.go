package domain

import (
	"fmt"
	"log/slog"
	"time"
)

// Day is a timezone-normalized calendar date, independent of clock time.
// The zero value is the sentinel returned when calendar construction fails.
type Day struct {
	Year  int
	Month int
	Day   int
}

func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare orders days lexicographically on (year, month, day).
func (d Day) Compare(o Day) int {
	if d.Year != o.Year {
		if d.Year < o.Year {
			return -1
		}
		return 1
	}
	if d.Month != o.Month {
		if d.Month < o.Month {
			return -1
		}
		return 1
	}
	if d.Day != o.Day {
		if d.Day < o.Day {
			return -1
		}
		return 1
	}
	return 0
}

func (d Day) Before(o Day) bool {
	return d.Compare(o) < 0
}

func (d Day) After(o Day) bool {
	return d.Compare(o) > 0
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Calendar projects instants into a fixed reference timezone and performs
// day arithmetic there. It is constructed once and injected; the engine
// never consults the process-local timezone.
type Calendar struct {
	loc          *time.Location
	firstWeekday time.Weekday
	logger       *slog.Logger
}

func NewCalendar(loc *time.Location, firstWeekday time.Weekday, logger *slog.Logger) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calendar{
		loc:          loc,
		firstWeekday: firstWeekday,
		logger:       logger,
	}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) FirstWeekday() time.Weekday {
	return c.firstWeekday
}

// DayOf extracts the calendar date of t in the reference timezone.
// A zero instant yields the sentinel zero Day and a logged fault; it is
// never surfaced as an error so one malformed event cannot abort the
// evaluation of a whole list.
func (c *Calendar) DayOf(t time.Time) Day {
	if t.IsZero() {
		c.logger.Warn("calendar: day requested for zero instant")
		return Day{}
	}
	y, m, d := t.In(c.loc).Date()
	return Day{Year: y, Month: int(m), Day: d}
}

// AddDays adds n days via calendar arithmetic in the reference timezone,
// rolling over month and year boundaries and DST transitions.
func (c *Calendar) AddDays(d Day, n int) Day {
	if d.IsZero() {
		c.logger.Warn("calendar: day arithmetic on zero day", slog.Int("delta", n))
		return Day{}
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day+n, 12, 0, 0, 0, c.loc)
	y, m, dd := t.Date()
	return Day{Year: y, Month: int(m), Day: dd}
}

// MidpointOf returns noon of d in the reference timezone. Noon is used as
// the anchor for weekday and week-start searches because it is safely away
// from DST transition hours.
func (c *Calendar) MidpointOf(d Day) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, c.loc)
}

func (c *Calendar) Weekday(d Day) time.Weekday {
	return c.MidpointOf(d).Weekday()
}

// StartOfWeek walks backward from d's midpoint to the most recent day whose
// weekday equals the configured first weekday.
func (c *Calendar) StartOfWeek(d Day) Day {
	cur := d
	for i := 0; i < 7; i++ {
		if c.Weekday(cur) == c.firstWeekday {
			return cur
		}
		cur = c.AddDays(cur, -1)
	}
	c.logger.Warn("calendar: start-of-week search exhausted", slog.String("day", d.String()))
	return Day{}
}
