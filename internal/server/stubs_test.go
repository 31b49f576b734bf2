package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"sportkalender-service/internal/poller"
)

// StubPoller records Start and Stop calls.
type StubPoller struct {
	StartCalls atomic.Int32
	StopCalls  atomic.Int32
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls.Add(1)
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls.Add(1)
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StubHTTPServer returns ListenErr from ListenAndServe. Use http.ErrServerClosed for a clean exit.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	ListenCalls   atomic.Int32
	ShutdownCalls atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls.Add(1)
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// BlockingHTTPServer holds Shutdown until Unblock closes or the context ends.
type BlockingHTTPServer struct {
	StubHTTPServer
	Unblock chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls.Add(1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

// StubStreamClient captures XADD calls in place of a redis client.
type StubStreamClient struct {
	mu     sync.Mutex
	Args   []*redis.XAddArgs
	Closed atomic.Bool
	Added  chan struct{}
}

func (c *StubStreamClient) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	_ = ctx
	c.mu.Lock()
	c.Args = append(c.Args, a)
	c.mu.Unlock()
	if c.Added != nil {
		select {
		case c.Added <- struct{}{}:
		default:
		}
	}
	return redis.NewStringResult("0-1", nil)
}

// Calls returns how many entries were added.
func (c *StubStreamClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Args)
}

func (c *StubStreamClient) Close() error {
	c.Closed.Store(true)
	return nil
}
