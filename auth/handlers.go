package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/user/todo-api-go/apperror"
)

// Service is the surface of AuthService the HTTP handlers depend on.
// Declared as an interface so handler tests can substitute a stub.
type Service interface {
	Register(ctx context.Context, req CredentialsRequest) (*AuthResponse, error)
	Login(ctx context.Context, req CredentialsRequest) (*AuthResponse, error)
	VerifyIdentity(ctx context.Context, tokenString string) (*VerifyResponse, error)
}

// Handlers wraps the auth service to provide HTTP handlers.
type Handlers struct {
	service Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user and returns the user with a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.CredentialsRequest true "User registration details"
// @Success 201 {object} auth.AuthResponse "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or username taken"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in an existing user and returns the user with a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.CredentialsRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleVerify godoc
// @Summary Verify bearer token
// @Description Verifies the Authorization header token and returns the current user.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.VerifyResponse "Token valid, user returned"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Missing, invalid or expired token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - User no longer exists"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/verify [get]
func (h *Handlers) HandleVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := BearerToken(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.VerifyIdentity(r.Context(), tokenString)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing or malformed header yields an AuthError with message
// "No token provided".
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperror.NewAuthError("No token provided", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperror.NewAuthError("No token provided", nil)
	}
	return parts[1], nil
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError writes a standardized error response. Errors that are not
// apperror types are wrapped as internal errors so raw detail never reaches
// the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("An unexpected error occurred. Please try again later.", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
