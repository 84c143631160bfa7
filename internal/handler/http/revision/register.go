package revision

import (
	"log/slog"
	"net/http"

	"noticeboard/internal/common/pagination"
	revUC "noticeboard/internal/usecase/revision"
)

// Register registers all revision-related HTTP handlers with the given mux.
// History hangs off the announcement resource; restore and compare operate
// on revision IDs directly.
func Register(mux *http.ServeMux, svc *revUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /announcements/{id}/revisions", HistoryHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("POST /revisions/{id}/restore", RestoreHandler{svc})
	mux.Handle("GET /revisions/compare", CompareHandler{svc})
}
