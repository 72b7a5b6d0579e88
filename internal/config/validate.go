package config

// ValidateForRun checks the settings the server cannot start without.
// Optional concerns (Redis, ICS sources, the status recorder) degrade at
// runtime instead of failing here.
func ValidateForRun(cfg *Config) error {
	if cfg.Feed == nil || cfg.Feed.URL == "" {
		return ErrFeedURLMissing
	}
	return nil
}
