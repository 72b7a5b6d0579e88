package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	feedURLEnv            = "EATERY_FEED_URL"
	feedRefreshMinutesEnv = "EATERY_FEED_REFRESH_MINUTES"
	icsHoursSourcesEnv    = "ICS_HOURS_SOURCES"
	icsHoursHorizonEnv    = "ICS_HOURS_HORIZON_DAYS"

	defaultFeedRefreshMinutes = 15
	defaultICSHorizonDays     = 7
)

// ICSHoursSource maps one iCalendar feed to an eatery.
type ICSHoursSource struct {
	EateryID int64
	URL      string
}

type FeedConfig struct {
	URL            string
	RefreshMinutes int

	// ICSHoursSources is parsed from ICS_HOURS_SOURCES, a comma-separated
	// list of <eateryID>=<url> pairs.
	ICSHoursSources []ICSHoursSource
	ICSHorizonDays  int
}

func LoadFeedConfig() (*FeedConfig, error) {
	refresh := defaultFeedRefreshMinutes
	if raw := os.Getenv(feedRefreshMinutesEnv); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			refresh = parsed
		}
	}

	horizon := defaultICSHorizonDays
	if raw := os.Getenv(icsHoursHorizonEnv); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			horizon = parsed
		}
	}

	sources, err := parseICSHoursSources(os.Getenv(icsHoursSourcesEnv))
	if err != nil {
		return nil, err
	}

	return &FeedConfig{
		URL:             os.Getenv(feedURLEnv),
		RefreshMinutes:  refresh,
		ICSHoursSources: sources,
		ICSHorizonDays:  horizon,
	}, nil
}

func parseICSHoursSources(raw string) ([]ICSHoursSource, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	sources := make([]ICSHoursSource, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, url, ok := strings.Cut(part, "=")
		if !ok {
			return nil, ErrInvalidICSHoursSource
		}
		eateryID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, ErrInvalidICSHoursSource
		}
		sources = append(sources, ICSHoursSource{
			EateryID: eateryID,
			URL:      strings.TrimSpace(url),
		})
	}
	return sources, nil
}
