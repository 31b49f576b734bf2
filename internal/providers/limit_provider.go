package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"sportkalender-service/internal/domain/matches"
)

// rateLimitedProvider spaces upstream calls by a minimum interval.
type rateLimitedProvider struct {
	next     MatchProvider
	limiter  *rate.Limiter
	provider string
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a MatchProvider that allows one call per interval.
// The first call passes immediately; later calls wait for their slot or for ctx to end,
// so a superseded fetch gives up its wait instead of reaching the upstream.
func NewRateLimitedProvider(next MatchProvider, interval time.Duration, providerName string, logger *slog.Logger) MatchProvider {
	if interval <= 0 {
		return next
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &rateLimitedProvider{
		next:     next,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		provider: providerName,
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.provider, "rate-limited fetch abandoned",
			slog.String("league", league),
			slog.String("season", season),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return p.next.FetchMatches(ctx, league, season)
}
