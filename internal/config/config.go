package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port      string
	Provider  string
	Upstream  UpstreamConfig
	Schedule  ScheduleConfig
	CORS      []string
	Publisher PublisherConfig
	Metrics   MetricsConfig
	Log       LogConfig
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// PublisherConfig controls the optional Redis stream fan-out.
type PublisherConfig struct {
	RedisURL string
	Stream   string
}

// Enabled reports whether a Redis URL was configured.
func (p PublisherConfig) Enabled() bool {
	return p.RedisURL != ""
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Provider: strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		Upstream: loadUpstream(),
		Schedule: loadSchedule(),
		CORS:     listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Publisher: PublisherConfig{
			RedisURL: envOrDefault(envRedisURL, ""),
			Stream:   envOrDefault(envRedisStream, defaultRedisStream),
		},
		Metrics: loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

// LoadEnvFile loads ENV_FILE (default .env) into the process environment without
// overriding variables that are already set. A missing default file is not an error.
func LoadEnvFile() error {
	path := envOrDefault(envFile, defaultEnvFile)
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	return err
}
