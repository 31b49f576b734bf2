package openligadb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sportkalender-service/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func response(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}

func TestFetchMatchesHitsAPIAndDecodesBothCasings(t *testing.T) {
	var capturedPath string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		body := `[
			{"matchID": 1, "matchDateTimeUTC": "2025-03-08T19:30:00Z", "team1": {"teamName": "FC A"}, "team2": {"teamName": "FC B"}},
			{"MatchID": 2, "MatchDateTime": "2025-03-09T15:30:00", "Team1": {"TeamName": "FC C"}, "Team2": {"TeamName": "FC D"}}
		]`
		return response(http.StatusOK, body, nil), nil
	})
	client := NewClient(Config{BaseURL: "https://example.test/", HTTPClient: &http.Client{Transport: rt}})

	raw, err := client.FetchMatches(context.Background(), "bl1", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedPath != "/getmatchdata/bl1/2025" {
		t.Fatalf("unexpected path %s", capturedPath)
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(raw))
	}
	if *raw[0].Team1.TeamName != "FC A" || *raw[1].Team2.TeamName != "FC D" {
		t.Fatalf("unexpected teams %+v / %+v", raw[0], raw[1])
	}
	if raw[1].MatchDateTime == nil || *raw[1].MatchDateTime != "2025-03-09T15:30:00" {
		t.Fatalf("expected PascalCase local timestamp")
	}
}

func TestFetchMatchesAgainstHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected json accept header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	raw, err := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}).FetchMatches(context.Background(), "dfb", "2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw == nil || len(raw) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", raw)
	}
}

func TestFetchMatchesNonOKStatus(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusBadGateway, "  upstream down \n", nil), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchMatches(context.Background(), "bl1", "2025")
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || statusErr.Body != "upstream down" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestFetchMatchesRateLimited(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		h := make(http.Header)
		h.Set("Retry-After", "7")
		return response(http.StatusTooManyRequests, "", h), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchMatches(context.Background(), "bl1", "2025")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.Provider != "openligadb" {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestFetchMatchesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusOK, `{"not": "a list"}`, nil), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchMatches(context.Background(), "bl1", "2025"); err == nil || !strings.Contains(err.Error(), "decode matches") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFetchMatchesTransportError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial failed")
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchMatches(context.Background(), "bl1", "2025"); err == nil || !strings.Contains(err.Error(), "dial failed") {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	if got := parseRetryAfter("", now); got != 0 {
		t.Fatalf("expected 0 for empty header, got %s", got)
	}
	if got := parseRetryAfter("-3", now); got != 0 {
		t.Fatalf("expected 0 for negative header, got %s", got)
	}
	if got := parseRetryAfter(now.Add(90*time.Second).Format(http.TimeFormat), now); got != 90*time.Second {
		t.Fatalf("expected 90s from http date, got %s", got)
	}
	if got := parseRetryAfter("soon", now); got != 0 {
		t.Fatalf("expected 0 for garbage, got %s", got)
	}
}

func TestDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.baseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", c.baseURL)
	}
	hc, ok := c.httpClient.(*http.Client)
	if !ok || hc.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default timeout client, got %#v", c.httpClient)
	}
	if c.Name() != "openligadb" {
		t.Fatalf("unexpected name %s", c.Name())
	}
}
