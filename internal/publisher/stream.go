package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/logging"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 2 * time.Second
	// Approximate cap on stream length so an idle consumer cannot grow it without bound.
	defaultMaxLen = 1000
)

// StreamAdder is the subset of the redis client used for publishing.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Source publishes controller snapshots to subscribers.
type Source interface {
	Subscribe() (<-chan controller.Snapshot, func())
}

// StreamPublisher appends schedule snapshots to a Redis stream.
type StreamPublisher struct {
	client StreamAdder
	stream string
	maxLen int64
	logger *slog.Logger
}

// NewStreamPublisher creates a publisher writing to stream.
func NewStreamPublisher(client StreamAdder, stream string, logger *slog.Logger) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
		maxLen: defaultMaxLen,
		logger: logger,
	}
}

// Connect parses redisURL and verifies the server answers a PING.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Publish appends one snapshot to the stream.
func (p *StreamPublisher) Publish(ctx context.Context, snap controller.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":       string(data),
			"league":     snap.League.ID,
			"season":     snap.Season.ID,
			"status":     string(snap.Status),
			"generation": strconv.FormatUint(snap.Generation, 10),
		},
	}).Err()
}

// Run publishes every snapshot from source until ctx ends or the source closes.
// Publish failures are logged and do not stop the loop.
func (p *StreamPublisher) Run(ctx context.Context, source Source) {
	updates, unsubscribe := source.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := p.Publish(pubCtx, snap)
			cancel()
			if err != nil {
				logging.Error(p.logger, "publish snapshot failed", err,
					"stream", p.stream,
					logging.FieldGeneration, snap.Generation,
				)
			}
		}
	}
}
