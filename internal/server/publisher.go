package server

import (
	"context"
	"log/slog"
	"sync"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/publisher"
)

type streamClient interface {
	publisher.StreamAdder
	Close() error
}

// connectStream is swapped in tests to avoid a live redis.
var connectStream = func(ctx context.Context, redisURL string) (streamClient, error) {
	client, err := publisher.Connect(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// publisherRunner owns the optional redis fan-out of controller snapshots.
type publisherRunner struct {
	cfg    config.PublisherConfig
	logger *slog.Logger
	client streamClient
	wg     sync.WaitGroup
}

func newPublisherRunner(cfg config.PublisherConfig, logger *slog.Logger) *publisherRunner {
	return &publisherRunner{cfg: cfg, logger: logger}
}

// start connects and begins publishing. A failed connect is logged and the service runs without fan-out.
func (p *publisherRunner) start(ctx context.Context, source publisher.Source) {
	if p == nil || !p.cfg.Enabled() {
		return
	}
	client, err := connectStream(ctx, p.cfg.RedisURL)
	if err != nil {
		logging.Error(p.logger, "redis publisher disabled", err)
		return
	}
	p.client = client
	pub := publisher.NewStreamPublisher(client, p.cfg.Stream, p.logger)
	logging.Info(p.logger, "redis publisher started", "stream", p.cfg.Stream)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		pub.Run(ctx, source)
	}()
}

// stop waits for the publish loop and closes the client. The loop ends when its source closes or ctx ends.
func (p *publisherRunner) stop() {
	if p == nil || p.client == nil {
		return
	}
	p.wg.Wait()
	if err := p.client.Close(); err != nil {
		logging.Warn(p.logger, "redis close failed", logging.FieldError, err)
	}
}
