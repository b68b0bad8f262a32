package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-chat-backend/internal/models"
)

func authedHandler(t *testing.T, gotEmail *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(auth *JWTAuth, handler http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/threads", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	auth.Middleware(handler).ServeHTTP(rr, req)
	return rr
}

func TestMiddlewareMissingHeader(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	var email string

	rr := doRequest(auth, authedHandler(t, &email), "")

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != models.ErrUnauthorized {
		t.Errorf("Expected error %q, got %q", models.ErrUnauthorized, resp.Error)
	}
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	var email string

	rr := doRequest(auth, authedHandler(t, &email), "Token abc123")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	var email string

	rr := doRequest(auth, authedHandler(t, &email), "Bearer not.a.token")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestMiddlewareExpiredToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	token, err := auth.GenerateAccessToken("user@example.com", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	var email string

	rr := doRequest(auth, authedHandler(t, &email), "Bearer "+token)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message != "Token has expired" {
		t.Errorf("Expected expiry message, got %q", resp.Message)
	}
}

func TestMiddlewareWrongSecret(t *testing.T) {
	other := NewJWTAuth("other-secret")
	token, err := other.GenerateAccessToken("user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	auth := NewJWTAuth("test-secret")
	var email string

	rr := doRequest(auth, authedHandler(t, &email), "Bearer "+token)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	token, err := auth.GenerateAccessToken("user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	var email string

	rr := doRequest(auth, authedHandler(t, &email), "Bearer "+token)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if email != "user@example.com" {
		t.Errorf("Expected email claim in context, got %q", email)
	}
}
