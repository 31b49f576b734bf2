package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/metrics"
	"sportkalender-service/internal/teststubs"
	"sportkalender-service/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics.Enabled = true

	srv := newServerWithMetrics(cfg, nil, &teststubs.StubProvider{}, nil)
	closeServer(t, srv)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	srv := newServerWithMetrics(testConfig(), nil, &teststubs.StubProvider{}, nil)
	closeServer(t, srv)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	cfg := testConfig()
	cfg.Metrics.Enabled = true

	srv := newServerWithMetrics(cfg, nil, &teststubs.StubProvider{}, rec)
	closeServer(t, srv)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}

	if _, err := srv.Controller().Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := rec.ScheduleLoads(metrics.LoadSucceeded); got != 1 {
		t.Fatalf("expected the controller to record into the injected recorder, got %d", got)
	}
	if got := rec.ProviderCalls("*teststubs.stubprovider"); got != 1 {
		t.Fatalf("expected provider attempt recorded by the retry wrapper, got %d", got)
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("unexpected metrics addr %s", srv.Addr())
	}
}
