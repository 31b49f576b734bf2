package config

import "time"

const (
	envFile             = "ENV_FILE"
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envOpenLigaBaseURL  = "OPENLIGADB_BASE_URL"
	envOpenLigaTimeout  = "OPENLIGADB_TIMEOUT"
	envUpstreamAttempts = "UPSTREAM_MAX_ATTEMPTS"
	envUpstreamBackoff  = "UPSTREAM_BACKOFF"
	envUpstreamInterval = "UPSTREAM_MIN_INTERVAL"
	envTimezone         = "SCHEDULE_TIMEZONE"
	envDefaultLeague    = "DEFAULT_LEAGUE"
	envDefaultSeason    = "DEFAULT_SEASON"
	envRefreshInterval  = "REFRESH_INTERVAL"
	envCORSOrigins      = "CORS_ORIGINS"
	envRedisURL         = "REDIS_URL"
	envRedisStream      = "REDIS_STREAM"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	defaultEnvFile          = ".env"
	defaultPort             = "4000"
	defaultProvider         = ProviderOpenLigaDB
	defaultOpenLigaBaseURL  = "https://api.openligadb.de"
	defaultOpenLigaTimeout  = 10 * time.Second
	defaultUpstreamAttempts = 1
	defaultUpstreamBackoff  = 500 * time.Millisecond
	defaultUpstreamInterval = time.Second
	defaultTimezone         = "Europe/Berlin"
	// Zero disables the background refresh; the schedule only reloads on request.
	defaultRefreshInterval = 0
	defaultCORSOrigins     = "*"
	defaultRedisStream     = "schedule.updates"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "sportkalender-service"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Provider names accepted by PROVIDER.
const (
	ProviderOpenLigaDB = "openligadb"
	ProviderFixture    = "fixture"
)
