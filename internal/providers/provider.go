package providers

import (
	"context"
	"errors"

	"sportkalender-service/internal/domain/matches"
)

// ErrProviderUnavailable is returned when no upstream is configured.
var ErrProviderUnavailable = errors.New("match provider unavailable")

// MatchProvider fetches the raw match list for one league and season.
// Implementations return the upstream order unchanged; normalization happens later.
type MatchProvider interface {
	FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error)
}

// Func adapts a plain function to MatchProvider.
type Func func(ctx context.Context, league, season string) ([]matches.RawMatch, error)

// FetchMatches calls f, or fails with ErrProviderUnavailable when f is nil.
func (f Func) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	if f == nil {
		return nil, ErrProviderUnavailable
	}
	return f(ctx, league, season)
}
