package config

import (
	"os"
	"strings"
	"time"
)

const (
	timezoneEnv     = "TIMEZONE"
	firstWeekdayEnv = "FIRST_WEEKDAY"

	// The reference timezone is fixed per deployment, never taken from
	// the device or process locale.
	defaultTimezone     = "America/New_York"
	defaultFirstWeekday = time.Monday
)

type CalendarConfig struct {
	Timezone     string
	FirstWeekday time.Weekday
}

func LoadCalendarConfig() (*CalendarConfig, error) {
	tz := os.Getenv(timezoneEnv)
	if tz == "" {
		tz = defaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	weekday := defaultFirstWeekday
	if raw := os.Getenv(firstWeekdayEnv); raw != "" {
		parsed, ok := parseWeekday(raw)
		if !ok {
			return nil, ErrInvalidFirstWeekday
		}
		weekday = parsed
	}

	return &CalendarConfig{
		Timezone:     tz,
		FirstWeekday: weekday,
	}, nil
}

// Location resolves the configured timezone. Load already verified it.
func (c *CalendarConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return time.Sunday, false
	}
}
