package announcement

import (
	"encoding/json"
	"errors"
	"net/http"

	"noticeboard/internal/handler/http/auth"
	"noticeboard/internal/handler/http/respond"
	annUC "noticeboard/internal/usecase/announcement"
)

type CreateHandler struct{ Svc *annUC.Service }

// ServeHTTP creates a new draft announcement attributed to the
// authenticated user.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		CategoryID int64  `json:"category_id"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		Excerpt    string `json:"excerpt"`
		ImagePath  string `json:"image_path"`
		IsPinned   bool   `json:"is_pinned"`
		IsHero     bool   `json:"is_hero"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.CategoryID == 0 || req.Title == "" || req.Content == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("category_id, title, content are required"))
		return
	}

	ann, err := h.Svc.Create(r.Context(), identity.Username, annUC.CreateInput{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		ImagePath:  req.ImagePath,
		IsPinned:   req.IsPinned,
		IsHero:     req.IsHero,
	})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, annUC.ErrCategoryNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(ann))
}
