package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/metrics"
)

const (
	defaultInterval = 15 * time.Minute
	// maxConsecutiveFailures is how many failed refreshes in a row still count as ready.
	maxConsecutiveFailures = 3
)

// Loader reloads the current schedule selection and waits for the result.
type Loader interface {
	Load(ctx context.Context) (controller.Snapshot, error)
}

// Poller reloads the schedule on an interval so long-running views stay current.
type Poller struct {
	loader   Loader
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// Failing reports whether refreshes have failed too often in a row, regardless of past successes.
func (s Status) Failing() bool {
	return s.ConsecutiveFailures >= maxConsecutiveFailures
}

// New constructs a Poller; a non-positive interval selects the default.
func New(loader Loader, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		loader:   loader,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial load to warm data on boot.
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop and waits for an in-flight refresh, bounded by ctx.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	snap, err := p.loader.Load(ctx)
	elapsed := time.Since(start)
	if errors.Is(err, controller.ErrSuperseded) {
		// A user selection replaced this refresh; its own outcome is tracked by the controller.
		logging.Info(p.logger, "poller refresh superseded", logging.FieldGeneration, snap.Generation)
		return
	}
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return
	}

	p.metrics.RecordRefreshCycle(elapsed, err)
	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err,
			logging.FieldLeague, snap.League.ID,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed schedule",
		logging.FieldLeague, snap.League.ID,
		logging.FieldSeason, snap.Season.ID,
		logging.FieldCount, snap.MatchCount,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
