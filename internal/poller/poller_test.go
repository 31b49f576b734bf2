package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/domain/options"
	"sportkalender-service/internal/metrics"
	"sportkalender-service/internal/teststubs"
	"sportkalender-service/internal/testutil"
)

type stubLoader struct {
	mu     sync.Mutex
	errs   []error
	calls  int
	notify chan struct{}
}

func (s *stubLoader) Load(ctx context.Context) (controller.Snapshot, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.calls < len(s.errs) {
		err = s.errs[s.calls]
	}
	s.calls++
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	return controller.Snapshot{League: options.Option{ID: "bl1"}, MatchCount: 3}, err
}

func (s *stubLoader) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestPollerLoadsOnStartAndOnTicks(t *testing.T) {
	loader := &stubLoader{notify: make(chan struct{}, 8)}
	rec := metrics.NewRecorder()
	p := New(loader, nil, rec, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	p.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-loader.notify:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for refresh %d", i+1)
		}
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error %v", err)
	}

	if st := p.Status(); st.LastSuccess.IsZero() || st.Failing() {
		t.Fatalf("expected healthy status, got %+v", st)
	}
	if total, failed := rec.RefreshCycles(); total < 2 || failed != 0 {
		t.Fatalf("unexpected refresh metrics %d/%d", total, failed)
	}
}

func TestPollerWithController(t *testing.T) {
	provider := &teststubs.StubProvider{Notify: make(chan struct{})}
	c := controller.New(controller.Config{Provider: provider})
	defer c.Close()

	p := New(c, nil, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial load")
	}
	deadline := time.Now().Add(time.Second)
	for p.Status().LastSuccess.IsZero() {
		if time.Now().After(deadline) {
			t.Fatalf("poller never became ready: %+v", p.Status())
		}
		time.Sleep(time.Millisecond)
	}
	_ = p.Stop(context.Background())
	if !c.Snapshot().Loaded {
		t.Fatalf("expected controller loaded by poller")
	}
}

func TestPollerRecordsFailuresAndRecovery(t *testing.T) {
	boom := errors.New("boom")
	loader := &stubLoader{errs: []error{boom, boom, boom, nil}}
	p := New(loader, nil, nil, time.Hour)
	p.now = testutil.NowAt(time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		p.refreshOnce(context.Background())
	}
	st := p.Status()
	if st.ConsecutiveFailures != 3 || st.LastError != "boom" || !st.Failing() {
		t.Fatalf("unexpected failing status %+v", st)
	}

	p.refreshOnce(context.Background())
	st = p.Status()
	if st.ConsecutiveFailures != 0 || st.LastError != "" || st.Failing() || st.LastSuccess.IsZero() {
		t.Fatalf("expected recovery, got %+v", st)
	}
}

func TestPollerIgnoresSupersededRefresh(t *testing.T) {
	rec := metrics.NewRecorder()
	loader := &stubLoader{errs: []error{controller.ErrSuperseded}}
	p := New(loader, nil, rec, time.Hour)

	p.refreshOnce(context.Background())

	if st := p.Status(); st.ConsecutiveFailures != 0 || !st.LastAttempt.After(time.Time{}) {
		t.Fatalf("superseded refresh must not count as failure, got %+v", st)
	}
	if total, _ := rec.RefreshCycles(); total != 0 {
		t.Fatalf("expected no recorded cycle, got %d", total)
	}
}

func TestStatusFailing(t *testing.T) {
	st := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if st.Failing() || (Status{}).Failing() {
		t.Fatalf("expected healthy under the failure threshold")
	}
	st.ConsecutiveFailures = 3
	if !st.Failing() {
		t.Fatalf("expected failing at the threshold")
	}
	if !(Status{ConsecutiveFailures: 3}).Failing() {
		t.Fatalf("expected failing without any past success")
	}
}

func TestStopWithoutStartAndTimeout(t *testing.T) {
	p := New(&stubLoader{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval, got %s", p.interval)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("expected idempotent stop, got %v", err)
	}
}
