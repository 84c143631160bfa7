package category_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"noticeboard/internal/domain/entity"
	hcat "noticeboard/internal/handler/http/category"
	catUC "noticeboard/internal/usecase/category"
)

type stubRepo struct {
	data   map[int64]*entity.Category
	nextID int64
	delErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Category{}, nextID: 1}
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	c, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *stubRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range s.data {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) List(ctx context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(s.data))
	for _, c := range s.data {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubRepo) Create(ctx context.Context, c *entity.Category) error {
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.data[c.ID] = &cp
	return nil
}

func (s *stubRepo) Update(ctx context.Context, c *entity.Category) error {
	cp := *c
	s.data[c.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.data, id)
	return nil
}

func newTestMux(repo *stubRepo) *http.ServeMux {
	mux := http.NewServeMux()
	hcat.Register(mux, catUC.NewService(repo, slog.Default()))
	return mux
}

func TestCreateHandler(t *testing.T) {
	mux := newTestMux(newStubRepo())

	body := `{"name":"General","slug":"general"}`
	req := httptest.NewRequest("POST", "/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var dto struct {
		ID   int64  `json:"id"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatal(err)
	}
	if dto.ID == 0 || dto.Slug != "general" {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestCreateHandler_DuplicateSlug(t *testing.T) {
	repo := newStubRepo()
	_ = repo.Create(context.Background(), &entity.Category{Name: "General", Slug: "general"})
	mux := newTestMux(repo)

	body := `{"name":"Other","slug":"general"}`
	req := httptest.NewRequest("POST", "/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", rec.Code)
	}
}

func TestCreateHandler_MissingFields(t *testing.T) {
	mux := newTestMux(newStubRepo())

	req := httptest.NewRequest("POST", "/categories", strings.NewReader(`{"name":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	mux := newTestMux(newStubRepo())

	req := httptest.NewRequest("GET", "/categories/404", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}

func TestListHandler(t *testing.T) {
	repo := newStubRepo()
	_ = repo.Create(context.Background(), &entity.Category{Name: "General", Slug: "general"})
	mux := newTestMux(repo)

	req := httptest.NewRequest("GET", "/categories", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var dtos []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &dtos); err != nil {
		t.Fatal(err)
	}
	if len(dtos) != 1 {
		t.Fatalf("got %d categories", len(dtos))
	}
}

func TestUpdateHandler_SlugCollision(t *testing.T) {
	repo := newStubRepo()
	_ = repo.Create(context.Background(), &entity.Category{Name: "General", Slug: "general"})
	_ = repo.Create(context.Background(), &entity.Category{Name: "Events", Slug: "events"})
	mux := newTestMux(repo)

	req := httptest.NewRequest("PUT", "/categories/2", strings.NewReader(`{"slug":"general"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", rec.Code)
	}
}

func TestDeleteHandler_StillReferenced(t *testing.T) {
	repo := newStubRepo()
	_ = repo.Create(context.Background(), &entity.Category{Name: "General", Slug: "general"})
	repo.delErr = errors.New("violates foreign key constraint")
	mux := newTestMux(repo)

	req := httptest.NewRequest("DELETE", "/categories/1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", rec.Code)
	}
}

func TestDeleteHandler(t *testing.T) {
	repo := newStubRepo()
	_ = repo.Create(context.Background(), &entity.Category{Name: "General", Slug: "general"})
	mux := newTestMux(repo)

	req := httptest.NewRequest("DELETE", "/categories/1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d", rec.Code)
	}
	if len(repo.data) != 0 {
		t.Fatal("category must be deleted")
	}
}
