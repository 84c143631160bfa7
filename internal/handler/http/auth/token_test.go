package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenHandler_IssuesRoleBearingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ADMIN_USER", "admin-user")
	t.Setenv("ADMIN_USER_PASSWORD", "correct-horse-battery")
	t.Setenv("EDITOR_USER", "editor-user")
	t.Setenv("EDITOR_USER_PASSWORD", "staple-gun-sunrise")

	handler := TokenHandler(DefaultEnvProvider())

	body := `{"username":"editor-user","password":"staple-gun-sunrise"}`
	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("issued token invalid: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "editor-user" || claims["role"] != RoleEditor {
		t.Fatalf("claims = %v, want editor-user/editor", claims)
	}
	exp := int64(claims["exp"].(float64))
	if exp <= time.Now().Unix() || exp > time.Now().Add(TokenTTL+time.Minute).Unix() {
		t.Fatalf("exp=%d outside the expected TTL window", exp)
	}
}

func TestTokenHandler_RejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ADMIN_USER", "admin-user")
	t.Setenv("ADMIN_USER_PASSWORD", "correct-horse-battery")

	handler := TokenHandler(DefaultEnvProvider())

	body := `{"username":"admin-user","password":"wrong-password-here"}`
	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "wrong-password-here") {
		t.Fatal("response must not echo the submitted password")
	}
}

func TestTokenHandler_RejectsMalformedBody(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	handler := TokenHandler(DefaultEnvProvider())

	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}
