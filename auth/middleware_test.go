package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/todo-api-go/apperror"
)

func protectedHandler(t *testing.T, gotClaims **Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("handler reached without claims in context")
		}
		*gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) apperror.ErrorResponse {
	t.Helper()
	var resp apperror.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestRequireAuthMissingHeader(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	var claims *Claims
	handler := RequireAuth(issuer)(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if resp := decodeErrorResponse(t, rec); resp.Message != "No token provided" {
		t.Fatalf("message = %q, want %q", resp.Message, "No token provided")
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	var claims *Claims
	handler := RequireAuth(issuer)(protectedHandler(t, &claims))

	for _, header := range []string{"Bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
		if resp := decodeErrorResponse(t, rec); resp.Message != "No token provided" {
			t.Fatalf("header %q: message = %q, want %q", header, resp.Message, "No token provided")
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	var claims *Claims
	handler := RequireAuth(issuer)(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if resp := decodeErrorResponse(t, rec); resp.Message != "Invalid token" {
		t.Fatalf("message = %q, want %q", resp.Message, "Invalid token")
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := NewTokenIssuer("test-secret", -time.Minute)
	token, err := expired.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer := NewTokenIssuer("test-secret", time.Hour)
	var claims *Claims
	handler := RequireAuth(issuer)(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if resp := decodeErrorResponse(t, rec); resp.Message != "Token expired" {
		t.Fatalf("message = %q, want %q", resp.Message, "Token expired")
	}
}

func TestRequireAuthValidTokenAttachesClaims(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	var claims *Claims
	handler := RequireAuth(issuer)(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if claims == nil {
		t.Fatal("claims were not attached to the request context")
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Fatalf("claims = %+v, want UserID 42 and Username alice", claims)
	}
}
