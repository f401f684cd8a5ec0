package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/poller"
)

// Handler serves the bot's operational endpoints.
type Handler struct {
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the bot
// always reports ready.
func NewHandler(logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		logger:   logger,
		statusFn: statusFn,
	}
}

// StatusResponse is the JSON body of /status.
type StatusResponse struct {
	Ready               bool       `json:"ready"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastError           string     `json:"lastError,omitempty"`
	LastAttempt         *time.Time `json:"lastAttempt,omitempty"`
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
	Tracked             int        `json:"tracked"`
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness: at least one successful poll and fewer than three
// consecutive failures.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Status reports the poller's recent history.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	var status poller.Status
	if h.statusFn != nil {
		status = h.statusFn()
	}
	writeJSON(w, nethttp.StatusOK, StatusResponse{
		Ready:               h.statusFn == nil || status.IsReady(),
		ConsecutiveFailures: status.ConsecutiveFailures,
		LastError:           status.LastError,
		LastAttempt:         timePtr(status.LastAttempt),
		LastSuccess:         timePtr(status.LastSuccess),
		Tracked:             status.Tracked,
	}, h.logger)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
