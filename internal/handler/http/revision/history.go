package revision

import (
	"errors"
	"log/slog"
	"net/http"

	"noticeboard/internal/common/pagination"
	"noticeboard/internal/handler/http/pathutil"
	"noticeboard/internal/handler/http/requestid"
	"noticeboard/internal/handler/http/respond"
	"noticeboard/internal/observability/logging"
	revUC "noticeboard/internal/usecase/revision"
)

type HistoryHandler struct {
	Svc           *revUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP returns one page of an announcement's revision history, newest
// version first.
func (h HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.History(ctx, id, params)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, revUC.ErrAnnouncementNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, revUC.ErrInvalidAnnouncementID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, rev := range result.Data {
		dtos = append(dtos, toDTO(rev))
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Pagination))
}
