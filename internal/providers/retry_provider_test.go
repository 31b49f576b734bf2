package providers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	_ = ctx
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("boom")
	}
	id := 1
	return []matches.RawMatch{{MatchID: &id}}, nil
}

func noSleep(rp MatchProvider) *retryingProvider {
	r := rp.(*retryingProvider)
	r.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return r
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := noSleep(NewRetryingProvider(fp, slog.Default(), rec, "flakey", 3, time.Millisecond))

	raw, err := rp.FetchMatches(context.Background(), "bl1", "2025")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(raw) != 1 || *raw[0].MatchID != 1 {
		t.Fatalf("unexpected matches %+v", raw)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
	if rec.ProviderCalls("flakey") != 3 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderDefaultsToSingleAttempt(t *testing.T) {
	fp := &flakeyProvider{failures: 1}
	rp := noSleep(NewRetryingProvider(fp, nil, nil, "", 0, 0))

	if _, err := rp.FetchMatches(context.Background(), "bl1", "2025"); err == nil {
		t.Fatal("expected error without retries")
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
	if rp.providerName != "provider" || rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("unexpected defaults %s %d", rp.providerName, rp.maxAttempts)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := noSleep(NewRetryingProvider(fp, nil, nil, "flakey", 2, time.Millisecond))

	if _, err := rp.FetchMatches(context.Background(), "bl1", "2025"); err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderSkipsClientErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &StatusError{Provider: "x", StatusCode: 404}}
	rp := noSleep(NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Millisecond))

	if _, err := rp.FetchMatches(context.Background(), "bl1", "2025"); err == nil {
		t.Fatal("expected error")
	}
	if fp.calls != 1 {
		t.Fatalf("expected no retry on 404, got %d calls", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchMatches(ctx, "bl1", "2025")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 2 * time.Second}}
	rec := metrics.NewRecorder()
	rp := noSleep(NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond))

	if _, err := rp.FetchMatches(context.Background(), "bl1", "2025"); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.LastRetryAfter("rl"); got != 2*time.Second {
		t.Fatalf("expected retry-after 2s, got %s", got)
	}
}

func TestRetryingProviderDelaySelection(t *testing.T) {
	rp := NewRetryingProvider(&flakeyProvider{}, nil, nil, "x", 2, 50*time.Millisecond).(*retryingProvider)

	if d := rp.computeDelay(&RateLimitError{RetryAfter: 3 * time.Second}, rp.newBackOff()); d != 3*time.Second {
		t.Fatalf("expected retry-after delay, got %s", d)
	}
	d := rp.computeDelay(errors.New("boom"), rp.newBackOff())
	if d < 25*time.Millisecond || d > 75*time.Millisecond {
		t.Fatalf("expected jittered delay around 50ms, got %s", d)
	}
	if d := rp.computeDelay(errors.New("boom"), &backoff.StopBackOff{}); d != maxBackoff {
		t.Fatalf("expected cap when policy stops, got %s", d)
	}
}

func TestRetryingProviderNilInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "x", 1, 0)
	if _, err := rp.FetchMatches(context.Background(), "bl1", "2025"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if _, err := Func(nil).FetchMatches(context.Background(), "bl1", "2025"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable from nil Func, got %v", err)
	}
}
