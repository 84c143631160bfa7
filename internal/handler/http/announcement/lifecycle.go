package announcement

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/respond"
	annUC "noticeboard/internal/usecase/announcement"
)

// PublishHandler flips an announcement live or takes it down immediately.
// Publishing clears a pending scheduled_at; unpublishing clears a pending
// takedown_at.
type PublishHandler struct {
	Svc     *annUC.Service
	Publish bool
}

func (h PublishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if h.Publish {
		err = h.Svc.Publish(r.Context(), id)
	} else {
		err = h.Svc.Unpublish(r.Context(), id)
	}
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, annUC.ErrAnnouncementNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, annUC.ErrInvalidAnnouncementID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScheduleHandler stores or clears a publication timestamp. A null or
// missing "at" clears the pending schedule/takedown.
type ScheduleHandler struct {
	Svc      *annUC.Service
	Takedown bool
}

func (h ScheduleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		At *string `json:"at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var at *time.Time
	if req.At != nil {
		t, err := time.Parse(time.RFC3339, *req.At)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("at must be in RFC3339 format"))
			return
		}
		at = &t
	}

	if h.Takedown {
		err = h.Svc.ScheduleTakedown(r.Context(), id, at)
	} else {
		err = h.Svc.Schedule(r.Context(), id, at)
	}
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, annUC.ErrAnnouncementNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, annUC.ErrInvalidAnnouncementID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ViewHandler increments the announcement's view counter.
type ViewHandler struct{ Svc *annUC.Service }

func (h ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.RecordView(r.Context(), id); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
