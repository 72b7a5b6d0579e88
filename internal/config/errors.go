package config

import "errors"

var (
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidTimezone       = errors.New("TIMEZONE must be a valid IANA timezone name")
	ErrInvalidFirstWeekday   = errors.New("FIRST_WEEKDAY must be a weekday name")
	ErrFeedURLMissing        = errors.New("EATERY_FEED_URL is required")
	ErrInvalidICSHoursSource = errors.New("ICS_HOURS_SOURCES entries must be <eateryID>=<url>")
)
