package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/domain/options"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/poller"
)

const maxBodyBytes = 4 << 10

// ScheduleController is the part of the controller the HTTP surface drives.
type ScheduleController interface {
	Catalog() *options.Catalog
	Snapshot() controller.Snapshot
	Select(league, season string) (controller.Snapshot, error)
	Reload() controller.Snapshot
	PreviousWeek() controller.Snapshot
	NextWeek() controller.Snapshot
	CurrentWeek() controller.Snapshot
}

// Handler wires HTTP routes to the schedule controller.
type Handler struct {
	ctrl     ScheduleController
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no refresher runs.
func NewHandler(ctrl ScheduleController, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		ctrl:     ctrl,
		logger:   logger,
		statusFn: statusFn,
	}
}

// OptionsResponse lists the selectable leagues and seasons with the current choice.
type OptionsResponse struct {
	Leagues []options.Option `json:"leagues"`
	Seasons []options.Option `json:"seasons"`
	League  options.Option   `json:"league"`
	Season  options.Option   `json:"season"`
}

// SelectionRequest changes league and/or season. Empty fields keep the current value.
type SelectionRequest struct {
	League string `json:"league"`
	Season string `json:"season"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once a schedule has loaded and the refresher is not failing repeatedly.
// A refresh superseded by a user selection does not hold readiness back.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap := h.ctrl.Snapshot()
	if !snap.Loaded {
		msg := snap.Error
		if msg == "" {
			msg = "schedule not loaded"
		}
		writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
		return
	}
	if h.statusFn != nil {
		if st := h.statusFn(); st.Failing() {
			msg := st.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Options returns the league and season catalog.
func (h *Handler) Options(w nethttp.ResponseWriter, r *nethttp.Request) {
	catalog := h.ctrl.Catalog()
	snap := h.ctrl.Snapshot()
	writeJSON(w, nethttp.StatusOK, OptionsResponse{
		Leagues: catalog.Leagues(),
		Seasons: catalog.Seasons(),
		League:  snap.League,
		Season:  snap.Season,
	}, h.logger)
}

// Schedule returns the current snapshot.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.ctrl.Snapshot(), h.logger)
}

// UpdateSelection switches league and/or season and starts a fetch.
func (h *Handler) UpdateSelection(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req SelectionRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.League == "" && req.Season == "" {
		writeError(w, r, nethttp.StatusBadRequest, "league or season required", h.logger)
		return
	}

	snap, err := h.ctrl.Select(req.League, req.Season)
	switch {
	case errors.Is(err, controller.ErrUnknownLeague), errors.Is(err, controller.ErrUnknownSeason):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	case errors.Is(err, controller.ErrClosed):
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	case err != nil:
		writeError(w, r, nethttp.StatusInternalServerError, "selection failed", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "selection changed",
		logging.FieldLeague, snap.League.ID,
		logging.FieldSeason, snap.Season.ID,
		logging.FieldGeneration, snap.Generation,
	)
	writeJSON(w, nethttp.StatusAccepted, snap, h.logger)
}

// Week moves the week offset: previous, next or current.
func (h *Handler) Week(w nethttp.ResponseWriter, r *nethttp.Request) {
	var snap controller.Snapshot
	switch chi.URLParam(r, "direction") {
	case "previous":
		snap = h.ctrl.PreviousWeek()
	case "next":
		snap = h.ctrl.NextWeek()
	case "current":
		snap = h.ctrl.CurrentWeek()
	default:
		writeError(w, r, nethttp.StatusNotFound, "unknown week direction", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// Reload refetches the current selection.
func (h *Handler) Reload(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap := h.ctrl.Reload()
	logging.Info(loggerFromContext(r, h.logger), "reload requested", logging.FieldGeneration, snap.Generation)
	writeJSON(w, nethttp.StatusAccepted, snap, h.logger)
}
