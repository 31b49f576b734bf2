package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"sportkalender-service/internal/domain/matches"
)

// StubProvider is a test double for providers.MatchProvider.
type StubProvider struct {
	Matches []matches.RawMatch
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}

	mu       sync.Mutex
	requests []Request
}

// Request records the arguments of one fetch.
type Request struct {
	League string
	Season string
}

// FetchMatches returns configured matches and error while tracking calls.
func (s *StubProvider) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	_ = ctx
	s.mu.Lock()
	s.requests = append(s.requests, Request{League: league, Season: season})
	s.mu.Unlock()
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	return s.Matches, s.Err
}

// Requests returns the recorded fetch arguments in call order.
func (s *StubProvider) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// GatedProvider blocks every fetch until the test resolves it, so completion order is scripted.
type GatedProvider struct {
	// HonourContext makes blocked fetches return when their context ends.
	HonourContext bool

	once    sync.Once
	started chan *GatedCall
}

// GatedCall is one blocked fetch.
type GatedCall struct {
	League string
	Season string
	result chan gatedResult
}

type gatedResult struct {
	matches []matches.RawMatch
	err     error
}

// Succeed releases the fetch with raw matches.
func (c *GatedCall) Succeed(raw []matches.RawMatch) {
	c.result <- gatedResult{matches: raw}
}

// Fail releases the fetch with err.
func (c *GatedCall) Fail(err error) {
	c.result <- gatedResult{err: err}
}

// Started delivers each fetch as it begins.
func (g *GatedProvider) Started() <-chan *GatedCall {
	g.init()
	return g.started
}

func (g *GatedProvider) init() {
	g.once.Do(func() {
		g.started = make(chan *GatedCall, 16)
	})
}

// FetchMatches announces the call and waits for Succeed or Fail.
func (g *GatedProvider) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	g.init()
	call := &GatedCall{League: league, Season: season, result: make(chan gatedResult, 1)}
	g.started <- call

	if g.HonourContext {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-call.result:
			return res.matches, res.err
		}
	}
	res := <-call.result
	return res.matches, res.err
}
