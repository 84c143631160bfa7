package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLivenessHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/live", nil)
	rec := httptest.NewRecorder()
	LivenessHandler(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestReadinessHandler_NoDatabase(t *testing.T) {
	h := &ReadinessHandler{}
	req := httptest.NewRequest("GET", "/ready", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503", rec.Code)
	}
}

func TestReadinessHandler_Ready(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	h := &ReadinessHandler{DB: db}
	req := httptest.NewRequest("GET", "/ready", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestHealthHandler_Healthy(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)

	h := &HealthHandler{DB: db, Version: "test"}
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" || body.Version != "test" {
		t.Fatalf("body = %+v", body)
	}
	if body.Checks["database"].Status != "healthy" {
		t.Fatalf("database check = %+v", body.Checks["database"])
	}
}

func TestHealthHandler_NoDatabase(t *testing.T) {
	h := &HealthHandler{Version: "test"}
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503", rec.Code)
	}
}
