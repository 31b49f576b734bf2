package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/domain/options"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/metrics"
	"sportkalender-service/internal/providers"
	"sportkalender-service/internal/schedule"
)

// UnknownErrorMessage is shown when a failed fetch carries no message.
const UnknownErrorMessage = "Unbekannter Fehler"

var (
	ErrUnknownLeague = errors.New("unknown league")
	ErrUnknownSeason = errors.New("unknown season")
	// ErrSuperseded is returned by Load when a newer fetch replaced the awaited one.
	ErrSuperseded = errors.New("load superseded by a newer request")
	ErrClosed     = errors.New("controller closed")
)

// Config wires the controller's collaborators. Nil fields get defaults.
type Config struct {
	Provider     providers.MatchProvider
	Catalog      *options.Catalog
	Normalizer   *matches.Normalizer
	Engine       *schedule.Engine
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	League       string
	Season       string
	FetchTimeout time.Duration
	Now          func() time.Time
}

// Controller owns the selected league and season, the fetched matches and the derived week.
// Fetches run in the background; a completion is applied only while its generation is current.
type Controller struct {
	provider   providers.MatchProvider
	catalog    *options.Catalog
	normalizer *matches.Normalizer
	engine     *schedule.Engine
	logger     *slog.Logger
	metrics    *metrics.Recorder
	timeout    time.Duration
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	generation    uint64
	fetchCancel   context.CancelFunc
	status        Status
	lastErr       error
	loaded        bool
	league        options.Option
	season        options.Option
	offset        int
	matches       []matches.Match
	week          schedule.Week
	updatedAt     time.Time
	subs          map[uint64]chan Snapshot
	nextSub       uint64
	closed        bool
}

// New builds an idle controller. Unknown initial ids fall back to the catalog defaults.
func New(cfg Config) *Controller {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = options.Default()
	}
	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = matches.NewNormalizer(nil)
	}
	engine := cfg.Engine
	if engine == nil {
		engine = schedule.NewEngine(normalizer.Location(), nil)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		provider:   cfg.Provider,
		catalog:    catalog,
		normalizer: normalizer,
		engine:     engine,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		timeout:    cfg.FetchTimeout,
		now:        now,
		ctx:        ctx,
		cancel:     cancel,
		status:     StatusIdle,
		league:     catalog.ResolveLeague(cfg.League),
		season:     catalog.ResolveSeason(cfg.Season),
		subs:       make(map[uint64]chan Snapshot),
	}
}

// Catalog returns the option lists the controller validates against.
func (c *Controller) Catalog() *options.Catalog {
	return c.catalog
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectLeague switches league, resets the week offset and starts a fetch.
func (c *Controller) SelectLeague(id string) (Snapshot, error) {
	return c.Select(id, "")
}

// SelectSeason switches season, resets the week offset and starts a fetch.
func (c *Controller) SelectSeason(id string) (Snapshot, error) {
	return c.Select("", id)
}

// Select changes league and season together with a single fetch. Empty ids keep the current value.
// Both ids are validated before anything changes.
func (c *Controller) Select(leagueID, seasonID string) (Snapshot, error) {
	var league, season options.Option
	var ok bool
	if leagueID != "" {
		if league, ok = c.catalog.League(leagueID); !ok {
			return c.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownLeague, leagueID)
		}
	}
	if seasonID != "" {
		if season, ok = c.catalog.Season(seasonID); !ok {
			return c.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownSeason, seasonID)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if leagueID != "" {
		c.league = league
	}
	if seasonID != "" {
		c.season = season
	}
	c.offset = 0
	c.deriveLocked()
	c.startFetchLocked()
	return c.snapshotLocked(), nil
}

// Reload refetches the current selection, keeping the week offset.
func (c *Controller) Reload() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startFetchLocked()
	return c.snapshotLocked()
}

// PreviousWeek moves the window one week back without fetching.
func (c *Controller) PreviousWeek() Snapshot {
	return c.navigate(func(offset int) int { return offset - 1 })
}

// NextWeek moves the window one week forward without fetching.
func (c *Controller) NextWeek() Snapshot {
	return c.navigate(func(offset int) int { return offset + 1 })
}

// CurrentWeek returns to the week containing today without fetching.
func (c *Controller) CurrentWeek() Snapshot {
	return c.navigate(func(int) int { return 0 })
}

func (c *Controller) navigate(move func(int) int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = move(c.offset)
	c.deriveLocked()
	c.updatedAt = c.now()
	c.publishLocked()
	return c.snapshotLocked()
}

// Subscribe returns a channel that receives the current snapshot and every later change.
// Slow readers only see the latest snapshot. The returned func unsubscribes.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Load reloads the current selection and waits for that fetch to finish.
// It returns ErrSuperseded when a newer fetch starts first.
func (c *Controller) Load(ctx context.Context) (Snapshot, error) {
	updates, unsubscribe := c.Subscribe()
	defer unsubscribe()

	started := c.Reload()
	if c.isClosed() {
		return started, ErrClosed
	}
	for {
		select {
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return c.Snapshot(), ErrClosed
			}
			switch {
			case snap.Generation > started.Generation:
				return snap, ErrSuperseded
			case snap.Generation < started.Generation || snap.Loading:
				continue
			case snap.Status == StatusFailed:
				if snap.err == nil {
					return snap, errors.New(snap.Error)
				}
				return snap, snap.err
			default:
				return snap, nil
			}
		}
	}
}

// Close cancels in-flight fetches, closes subscriber channels and waits for fetch goroutines.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancel()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) startFetchLocked() {
	if c.closed {
		return
	}
	c.generation++
	gen := c.generation
	if c.fetchCancel != nil {
		c.fetchCancel()
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.fetchCancel = cancel
	c.status = StatusLoading
	c.updatedAt = c.now()
	league, season := c.league.ID, c.season.ID

	logging.Info(c.logger, "schedule fetch started",
		logging.FieldLeague, league,
		logging.FieldSeason, season,
		logging.FieldGeneration, gen,
	)
	c.publishLocked()

	c.wg.Add(1)
	go c.fetch(ctx, cancel, gen, league, season)
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, league, season string) {
	defer c.wg.Done()
	defer cancel()

	start := time.Now()
	var (
		raw []matches.RawMatch
		err error
	)
	if c.provider == nil {
		err = providers.ErrProviderUnavailable
	} else {
		raw, err = c.provider.FetchMatches(ctx, league, season)
	}
	var normalized []matches.Match
	if err == nil {
		normalized = c.normalizer.NormalizeAll(raw)
	}
	c.complete(gen, league, normalized, err, time.Since(start))
}

func (c *Controller) complete(gen uint64, league string, normalized []matches.Match, err error, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		c.metrics.RecordScheduleLoad(league, metrics.LoadSuperseded, elapsed)
		if c.logger != nil {
			c.logger.Debug("schedule fetch superseded",
				logging.FieldLeague, league,
				logging.FieldGeneration, gen,
			)
		}
		return
	}
	c.fetchCancel = nil
	c.updatedAt = c.now()

	if err != nil {
		c.status = StatusFailed
		c.lastErr = err
		c.metrics.RecordScheduleLoad(league, metrics.LoadFailed, elapsed)
		logging.Error(c.logger, "schedule fetch failed", err,
			logging.FieldLeague, league,
			logging.FieldGeneration, gen,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		c.publishLocked()
		return
	}

	c.status = StatusReady
	c.lastErr = nil
	c.loaded = true
	c.matches = normalized
	c.deriveLocked()
	c.metrics.RecordScheduleLoad(league, metrics.LoadSucceeded, elapsed)
	logging.Info(c.logger, "schedule fetch completed",
		logging.FieldLeague, league,
		logging.FieldGeneration, gen,
		logging.FieldCount, len(normalized),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	c.publishLocked()
}

// deriveLocked rebuilds the week from the stored matches, tagged for the selected league.
func (c *Controller) deriveLocked() {
	c.week = c.engine.BuildWeek(c.matches, c.league.ID, c.offset, c.now())
}

func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Generation: c.generation,
		Status:     c.status,
		Loading:    c.status == StatusLoading,
		Loaded:     c.loaded,
		League:     c.league,
		Season:     c.season,
		WeekOffset: c.offset,
		Week:       c.week,
		MatchCount: len(c.matches),
		UpdatedAt:  c.updatedAt,
	}
	if c.status == StatusFailed {
		snap.Error = errorMessage(c.lastErr)
		snap.err = c.lastErr
	}
	return snap
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return UnknownErrorMessage
	}
	return err.Error()
}
