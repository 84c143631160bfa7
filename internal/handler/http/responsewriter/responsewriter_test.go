package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	if w.StatusCode() != http.StatusOK {
		t.Fatalf("default status=%d, want 200", w.StatusCode())
	}
	if w.BytesWritten() != 0 {
		t.Fatalf("default bytes=%d, want 0", w.BytesWritten())
	}
}

func TestWriteHeader_RecordsOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError) // ignored

	if w.StatusCode() != http.StatusNotFound {
		t.Fatalf("status=%d, want first write to win", w.StatusCode())
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("underlying status=%d", rec.Code)
	}
}

func TestWrite_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatal(err)
	}

	if w.BytesWritten() != 11 {
		t.Fatalf("bytes=%d, want 11", w.BytesWritten())
	}
	if w.StatusCode() != http.StatusOK {
		t.Fatalf("implicit status=%d, want 200", w.StatusCode())
	}
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	if w.Unwrap() != rec {
		t.Fatal("Unwrap must return the wrapped writer")
	}
}
