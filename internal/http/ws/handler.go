package ws

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/logging"
)

// Source publishes controller snapshots to subscribers.
type Source interface {
	Subscribe() (<-chan controller.Snapshot, func())
}

// Handler upgrades connections and streams every snapshot change to the client.
type Handler struct {
	ctx      context.Context
	source   Source
	logger   *slog.Logger
	upgrader websocket.Upgrader
	active   atomic.Int64
}

// NewHandler builds a Handler. Connections end when ctx is cancelled.
// An empty allowedOrigins list or a "*" entry accepts any origin.
func NewHandler(ctx context.Context, source Source, logger *slog.Logger, allowedOrigins []string) *Handler {
	if ctx == nil {
		ctx = context.Background()
	}
	h := &Handler{ctx: ctx, source: source, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// ActiveClients reports the number of open connections.
func (h *Handler) ActiveClients() int {
	return int(h.active.Load())
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		logging.Warn(logger, "websocket upgrade failed", logging.FieldError, err)
		return
	}

	id := uuid.NewString()
	if logger != nil {
		logger = logger.With(logging.FieldClientID, id)
	}
	c := newClient(id, conn, logger)
	updates, unsubscribe := h.source.Subscribe()

	h.active.Add(1)
	logging.Info(logger, "websocket client connected")

	go c.readPump()
	go func() {
		defer func() {
			unsubscribe()
			h.active.Add(-1)
			logging.Info(logger, "websocket client disconnected")
		}()
		c.writePump(h.ctx, updates)
	}()
}

func originChecker(allowed []string) func(*http.Request) bool {
	anyOrigin := len(allowed) == 0
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			anyOrigin = true
		}
		set[strings.ToLower(origin)] = struct{}{}
	}
	return func(r *http.Request) bool {
		if anyOrigin {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}
