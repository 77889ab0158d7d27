package auth

import (
	"testing"
	"time"

	"github.com/user/todo-api-go/apperror"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("Username = %q, want %q", claims.Username, "alice")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one", time.Hour)
	other := NewTokenIssuer("secret-two", time.Hour)

	token, err := issuer.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = other.Verify(token)
	if err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
	appErr, ok := apperror.FromError(err)
	if !ok || appErr.Type != apperror.AuthError {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if appErr.Message != "Invalid token" {
		t.Fatalf("message = %q, want %q", appErr.Message, "Invalid token")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// A negative lifetime issues a token that is already past its expiry.
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = issuer.Verify(token)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	appErr, ok := apperror.FromError(err)
	if !ok || appErr.Type != apperror.AuthError {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if appErr.Message != "Token expired" {
		t.Fatalf("message = %q, want %q", appErr.Message, "Token expired")
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(token)
		if err == nil {
			t.Fatalf("expected error for malformed token %q", token)
		}
		appErr, ok := apperror.FromError(err)
		if !ok || appErr.Message != "Invalid token" {
			t.Fatalf("token %q: expected Invalid token AuthError, got %v", token, err)
		}
	}
}
