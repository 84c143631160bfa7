package revision

import (
	"errors"
	"net/http"
	"strconv"

	"noticeboard/internal/handler/http/respond"
	revUC "noticeboard/internal/usecase/revision"
)

type CompareHandler struct{ Svc *revUC.Service }

// compareResponse reports which editorial fields differ between two
// revisions.
type compareResponse struct {
	RevisionA DTO                `json:"revision_a"`
	RevisionB DTO                `json:"revision_b"`
	Changed   revUC.FieldChanges `json:"changed"`
}

// ServeHTTP compares the revisions named by the "a" and "b" query
// parameters.
func (h CompareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idA, errA := strconv.ParseInt(r.URL.Query().Get("a"), 10, 64)
	idB, errB := strconv.ParseInt(r.URL.Query().Get("b"), 10, 64)
	if errA != nil || errB != nil || idA <= 0 || idB <= 0 {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("query parameters a and b must be positive revision IDs"))
		return
	}

	cmp, err := h.Svc.Compare(r.Context(), idA, idB)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, revUC.ErrRevisionNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, revUC.ErrInvalidRevisionID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, compareResponse{
		RevisionA: toDTO(cmp.RevisionA),
		RevisionB: toDTO(cmp.RevisionB),
		Changed:   cmp.Changed,
	})
}
