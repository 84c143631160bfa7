package announcement

import (
	"errors"
	"net/http"

	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/respond"
	annUC "noticeboard/internal/usecase/announcement"
)

type GetHandler struct{ Svc *annUC.Service }

// ServeHTTP returns a single announcement by ID.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	ann, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, annUC.ErrInvalidAnnouncementID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, annUC.ErrAnnouncementNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(ann))
}
