package providers

import (
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got != "rate limited (status=429)" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl != err {
		t.Fatalf("expected to unwrap rate limit error")
	}

	if got := (&RateLimitError{}).Error(); got != "provider rate limited" {
		t.Fatalf("expected fallback message, got %q", got)
	}
	if _, ok := AsRateLimitError(fmt.Errorf("plain")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Provider: "openligadb", StatusCode: 503, Body: "maintenance"}
	if got := err.Error(); got != "openligadb: unexpected status 503: maintenance" {
		t.Fatalf("unexpected message %q", got)
	}
	if !err.Retryable() {
		t.Fatalf("expected 5xx to be retryable")
	}
	notFound := &StatusError{Provider: "openligadb", StatusCode: 404}
	if notFound.Retryable() || notFound.Error() != "openligadb: unexpected status 404" {
		t.Fatalf("unexpected 404 handling %q", notFound.Error())
	}
}
