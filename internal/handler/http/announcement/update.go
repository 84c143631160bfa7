package announcement

import (
	"encoding/json"
	"errors"
	"net/http"

	"noticeboard/internal/handler/http/auth"
	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/respond"
	annUC "noticeboard/internal/usecase/announcement"
)

type UpdateHandler struct{ Svc *annUC.Service }

// ServeHTTP applies a partial update. Only fields present in the request
// body are changed; a revision snapshot of the prior state is recorded
// best-effort by the use case layer.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		CategoryID    *int64  `json:"category_id"`
		Title         *string `json:"title"`
		Content       *string `json:"content"`
		Excerpt       *string `json:"excerpt"`
		ImagePath     *string `json:"image_path"`
		IsPinned      *bool   `json:"is_pinned"`
		IsHero        *bool   `json:"is_hero"`
		ChangeSummary *string `json:"change_summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	ann, err := h.Svc.Update(r.Context(), identity.Username, annUC.UpdateInput{
		ID:            id,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		ImagePath:     req.ImagePath,
		IsPinned:      req.IsPinned,
		IsHero:        req.IsHero,
		ChangeSummary: req.ChangeSummary,
	})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, annUC.ErrAnnouncementNotFound) || errors.Is(err, annUC.ErrCategoryNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(ann))
}
