package config

import "time"

// UpstreamConfig controls how the OpenLigaDB API is reached.
type UpstreamConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	MinInterval time.Duration
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		BaseURL:     envOrDefault(envOpenLigaBaseURL, defaultOpenLigaBaseURL),
		Timeout:     durationEnvOrDefault(envOpenLigaTimeout, defaultOpenLigaTimeout),
		MaxAttempts: intEnvOrDefault(envUpstreamAttempts, defaultUpstreamAttempts),
		Backoff:     durationEnvOrDefault(envUpstreamBackoff, defaultUpstreamBackoff),
		MinInterval: durationEnvOrDefault(envUpstreamInterval, defaultUpstreamInterval),
	}
}
