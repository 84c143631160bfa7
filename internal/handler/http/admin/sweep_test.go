package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"noticeboard/internal/domain/entity"
	"noticeboard/internal/handler/http/admin"
	"noticeboard/internal/usecase/schedule"
)

type stubRepo struct {
	due     []int64
	listErr error
}

func (s *stubRepo) ListDuePublish(ctx context.Context, now time.Time) ([]int64, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.due, nil
}

func (s *stubRepo) ListDueTakedown(ctx context.Context, now time.Time) ([]int64, error) {
	return nil, nil
}

func (s *stubRepo) MarkPublished(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

func (s *stubRepo) MarkTakenDown(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (s *stubRepo) List(ctx context.Context) ([]*entity.Announcement, error) { return nil, nil }
func (s *stubRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Announcement, error) {
	return nil, nil
}
func (s *stubRepo) Count(ctx context.Context) (int64, error) { return 0, nil }
func (s *stubRepo) Get(ctx context.Context, id int64) (*entity.Announcement, error) {
	return nil, nil
}
func (s *stubRepo) Create(ctx context.Context, a *entity.Announcement) error { return nil }
func (s *stubRepo) Update(ctx context.Context, a *entity.Announcement) error { return nil }
func (s *stubRepo) Delete(ctx context.Context, id int64) error               { return nil }
func (s *stubRepo) SetPublished(ctx context.Context, id int64, published bool) error {
	return nil
}
func (s *stubRepo) SetSchedule(ctx context.Context, id int64, at *time.Time) error { return nil }
func (s *stubRepo) SetTakedown(ctx context.Context, id int64, at *time.Time) error { return nil }
func (s *stubRepo) UpdateEditorial(ctx context.Context, id int64, title, content, excerpt, imagePath string) error {
	return nil
}
func (s *stubRepo) IncrementViewCount(ctx context.Context, id int64) error { return nil }

func newHandler(repo *stubRepo) *admin.SweepHandler {
	// Zero guard interval so back-to-back triggers in the test both sweep.
	svc := schedule.NewService(repo, schedule.NewGuard(0), slog.Default())
	return admin.NewSweepHandler(svc, slog.Default())
}

func trigger(h *admin.SweepHandler) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Register(mux)
	req := httptest.NewRequest("POST", "/admin/sweep", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSweepHandler_ReportsTransitions(t *testing.T) {
	h := newHandler(&stubRepo{due: []int64{1, 2}})

	rec := trigger(h)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Published int `json:"published"`
		TakenDown int `json:"taken_down"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Published != 2 || body.TakenDown != 0 {
		t.Fatalf("body = %+v", body)
	}
}

func TestSweepHandler_RateLimited(t *testing.T) {
	h := newHandler(&stubRepo{})
	// Drain the burst allowance.
	h.Limiter = rate.NewLimiter(rate.Every(10*time.Second), 1)
	if rec := trigger(h); rec.Code != http.StatusOK {
		t.Fatalf("first trigger status=%d", rec.Code)
	}

	rec := trigger(h)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("429 must carry Retry-After")
	}
}

func TestSweepHandler_SelectionErrorIsServerError(t *testing.T) {
	h := newHandler(&stubRepo{listErr: errors.New("connection refused")})

	rec := trigger(h)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rec.Code)
	}
}
