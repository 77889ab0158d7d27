package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		errType ErrorType
		want    int
	}{
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{ConflictError, http.StatusBadRequest},
		{AuthError, http.StatusUnauthorized},
		{NotFoundError, http.StatusNotFound},
		{DatabaseError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		got := NewAppError(c.errType, "msg", nil).StatusCode()
		if got != c.want {
			t.Fatalf("StatusCode(%d) = %d, want %d", c.errType, got, c.want)
		}
	}
}

func TestToResponseOmitsUnderlyingError(t *testing.T) {
	underlying := errors.New("connection refused: 10.0.0.1:5432")
	appErr := NewDatabaseError("Server error", underlying)

	resp := appErr.ToResponse()
	if resp.Message != "Server error" {
		t.Fatalf("Message = %q, want %q", resp.Message, "Server error")
	}
	if resp.Errors != nil {
		t.Fatalf("Errors = %v, want nil", resp.Errors)
	}
}

func TestToResponseCarriesFields(t *testing.T) {
	appErr := NewValidationError("All fields are required", nil).WithFields(map[string]string{
		"username": "Username is required",
	})

	resp := appErr.ToResponse()
	if resp.Errors["username"] != "Username is required" {
		t.Fatalf("Errors = %v", resp.Errors)
	}
}

func TestFromErrorUnwrapsWrappedAppError(t *testing.T) {
	inner := NewNotFoundError("Todo not found", nil)
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr, ok := FromError(wrapped)
	if !ok {
		t.Fatal("FromError did not find the wrapped AppError")
	}
	if appErr.Type != NotFoundError {
		t.Fatalf("Type = %d, want NotFoundError", appErr.Type)
	}
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound = false for wrapped NotFoundError")
	}
}

func TestUnwrapExposesUnderlyingError(t *testing.T) {
	sentinel := errors.New("sentinel")
	appErr := NewInternalError("failed", sentinel)

	if !errors.Is(appErr, sentinel) {
		t.Fatal("errors.Is did not reach the underlying error")
	}
}
