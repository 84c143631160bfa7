package revision

import (
	"errors"
	"net/http"

	"noticeboard/internal/handler/http/auth"
	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/respond"
	revUC "noticeboard/internal/usecase/revision"
)

type RestoreHandler struct{ Svc *revUC.Service }

// restoreResponse reports the announcement state after a restore.
type restoreResponse struct {
	AnnouncementID int64  `json:"announcement_id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Excerpt        string `json:"excerpt"`
	ImagePath      string `json:"image_path"`
}

// ServeHTTP restores an announcement's editorial fields to the chosen
// revision. The current state is snapshotted first so the restore is
// itself undoable.
func (h RestoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	ann, err := h.Svc.Restore(r.Context(), id, identity.Username)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, revUC.ErrRevisionNotFound) || errors.Is(err, revUC.ErrAnnouncementNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, revUC.ErrInvalidRevisionID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, restoreResponse{
		AnnouncementID: ann.ID,
		Title:          ann.Title,
		Content:        ann.Content,
		Excerpt:        ann.Excerpt,
		ImagePath:      ann.ImagePath,
	})
}
