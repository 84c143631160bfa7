package announcement

import (
	"net/http"

	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/respond"
	annUC "noticeboard/internal/usecase/announcement"
)

type DeleteHandler struct{ Svc *annUC.Service }

// ServeHTTP deletes an announcement and its revision history.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
