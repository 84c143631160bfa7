// Package admin provides HTTP handlers for operational endpoints that are
// restricted to the admin role.
package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"noticeboard/internal/handler/http/respond"
	"noticeboard/internal/usecase/schedule"

	"golang.org/x/time/rate"
)

// SweepHandler triggers a publication sweep on demand, outside the worker's
// cron cadence. A token-bucket limiter caps trigger bursts; the sweep's own
// throttle guard still applies underneath, so rapid triggers cannot bypass
// the idempotence window.
type SweepHandler struct {
	Svc     *schedule.Service
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

// NewSweepHandler creates a sweep trigger handler allowing one trigger per
// ten seconds with a burst of three.
func NewSweepHandler(svc *schedule.Service, logger *slog.Logger) *SweepHandler {
	return &SweepHandler{
		Svc:     svc,
		Limiter: rate.NewLimiter(rate.Every(10*time.Second), 3),
		Logger:  logger,
	}
}

type sweepResponse struct {
	Published int `json:"published"`
	TakenDown int `json:"taken_down"`
}

// Register registers the admin endpoints with the given mux.
func (h *SweepHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /admin/sweep", h)
}

func (h *SweepHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow() {
		w.Header().Set("Retry-After", "10")
		respond.SafeError(w, http.StatusTooManyRequests,
			errors.New("sweep trigger rate limit exceeded"))
		return
	}

	result, err := h.Svc.RunSweep(r.Context(), time.Now())
	if err != nil {
		h.Logger.Error("manual sweep failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, sweepResponse{
		Published: result.Published,
		TakenDown: result.TakenDown,
	})
}
