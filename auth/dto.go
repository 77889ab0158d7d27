// Data transfer objects for the auth endpoints: request payloads and the
// response shapes returned on successful registration, login and verify.
package auth

import "time"

// CredentialsRequest represents the registration and login request payload.
// Both endpoints take the same two fields and share the same validation.
type CredentialsRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"strongpassword123"`
}

// UserResponse is the public projection of a user: id and username only.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Message string       `json:"message" example:"Welcome back!"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// VerifyResponse is the user projection returned by the verify endpoint.
// Unlike UserResponse it includes the creation timestamp, matching the
// stored record minus the password hash.
type VerifyResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
