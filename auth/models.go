// Package auth is responsible for handling authentication and authorization:
// user registration, login, bearer token issuance and verification, and the
// middleware that gates protected routes.
package auth

import "time"

// User represents a user in the system as stored in the database.
// The hashed password is never serialized; the json:"-" tag keeps it out of
// any API response.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
