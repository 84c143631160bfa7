// Package category provides HTTP handlers for category endpoints.
package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"noticeboard/internal/domain/entity"
	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/respond"
	catUC "noticeboard/internal/usecase/category"
)

// DTO represents the JSON structure for category data transfer.
type DTO struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"General"`
	Slug      string    `json:"slug" example:"general"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(c *entity.Category) DTO {
	return DTO{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt}
}

// Register registers all category-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET /categories", ListHandler{svc})
	mux.Handle("GET /categories/{id}", GetHandler{svc})
	mux.Handle("POST /categories", CreateHandler{svc})
	mux.Handle("PUT /categories/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /categories/{id}", DeleteHandler{svc})
}

type ListHandler struct{ Svc *catUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, dtos)
}

type GetHandler struct{ Svc *catUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	cat, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, catUC.ErrCategoryNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, catUC.ErrInvalidCategoryID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(cat))
}

type CreateHandler struct{ Svc *catUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.Slug == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("name, slug are required"))
		return
	}

	cat, err := h.Svc.Create(r.Context(), catUC.CreateInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, catUC.ErrDuplicateSlug) {
			code = http.StatusConflict
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(cat))
}

type UpdateHandler struct{ Svc *catUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	cat, err := h.Svc.Update(r.Context(), catUC.UpdateInput{ID: id, Name: req.Name, Slug: req.Slug})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, catUC.ErrCategoryNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, catUC.ErrDuplicateSlug) {
			code = http.StatusConflict
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(cat))
}

type DeleteHandler struct{ Svc *catUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		// Categories still referenced by announcements fail the FK
		// restriction; surface as a conflict.
		respond.SafeError(w, http.StatusConflict, errors.New("category cannot be deleted"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
