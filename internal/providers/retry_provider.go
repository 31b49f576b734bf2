package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/metrics"
)

const (
	defaultRetryAttempts = 1
	defaultBackoff       = 500 * time.Millisecond
	maxBackoff           = 10 * time.Second
)

// retryingProvider wraps a MatchProvider with metrics and optional retries.
type retryingProvider struct {
	inner        MatchProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewRetryingProvider wraps inner so every attempt is recorded and failures are retried
// up to maxAttempts times with exponential backoff. maxAttempts <= 0 means a single attempt.
func NewRetryingProvider(inner MatchProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) MatchProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
		sleep: sleepCtx,
	}
}

func (r *retryingProvider) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	b := r.newBackOff()
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		raw, err := r.inner.FetchMatches(ctx, league, season)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if attempt == r.maxAttempts || !retryable(err) {
			break
		}

		delay := r.computeDelay(err, b)
		logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.providerName, "provider fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			logging.FieldDurationMS, delay.Milliseconds(),
			logging.FieldError, err,
		)
		if err := r.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// computeDelay honours Retry-After on rate limits and otherwise asks the backoff policy.
func (r *retryingProvider) computeDelay(err error, b backoff.BackOff) time.Duration {
	next := b.NextBackOff()
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	if next == backoff.Stop {
		return maxBackoff
	}
	return next
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
