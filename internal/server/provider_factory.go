package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/metrics"
	"sportkalender-service/internal/providers"
)

// providerFactory assembles the upstream provider with the shared retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.MatchProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap spaces upstream calls and retries transient failures. Every retry attempt takes a rate slot.
func (f providerFactory) wrap(cfg config.Config, base providers.MatchProvider) providers.MatchProvider {
	name := providerName(base)
	limited := providers.NewRateLimitedProvider(base, cfg.Upstream.MinInterval, name, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.Upstream.MaxAttempts, cfg.Upstream.Backoff)
}

// providerName prefers the provider's own Name so metrics and logs agree across wiring paths.
func providerName(provider providers.MatchProvider) string {
	if named, ok := provider.(interface{ Name() string }); ok && named.Name() != "" {
		return strings.ToLower(named.Name())
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}

// fetchTimeout bounds one controller fetch across every retry attempt.
// Zero leaves the fetch bounded only by the client timeout.
func fetchTimeout(up config.UpstreamConfig) time.Duration {
	if up.Timeout <= 0 {
		return 0
	}
	attempts := up.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts)*up.Timeout + time.Duration(attempts-1)*maxRetryWait
}
