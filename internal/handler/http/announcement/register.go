package announcement

import (
	"log/slog"
	"net/http"

	"noticeboard/internal/common/pagination"
	annUC "noticeboard/internal/usecase/announcement"
)

// Register registers all announcement-related HTTP handlers with the given
// mux. Authorization is applied by the server-wide Authz middleware, so the
// handlers themselves only deal with request semantics.
func Register(mux *http.ServeMux, svc *annUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /announcements", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /announcements/{id}", GetHandler{svc})
	mux.Handle("POST /announcements", CreateHandler{svc})
	mux.Handle("PUT /announcements/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /announcements/{id}", DeleteHandler{svc})

	mux.Handle("POST /announcements/{id}/publish", PublishHandler{Svc: svc, Publish: true})
	mux.Handle("POST /announcements/{id}/unpublish", PublishHandler{Svc: svc, Publish: false})
	mux.Handle("POST /announcements/{id}/schedule", ScheduleHandler{Svc: svc, Takedown: false})
	mux.Handle("POST /announcements/{id}/takedown", ScheduleHandler{Svc: svc, Takedown: true})
	mux.Handle("POST /announcements/{id}/view", ViewHandler{svc})
}
