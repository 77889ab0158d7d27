package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/todo-api-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// AuthService orchestrates registration, login and identity verification,
// combining the password hasher, the token issuer and the credential store.
// Dependencies are injected via the constructor.
type AuthService struct {
	dbPool *pgxpool.Pool
	hasher *PasswordHasher
	issuer *TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbPool *pgxpool.Pool, hasher *PasswordHasher, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		dbPool: dbPool,
		hasher: hasher,
		issuer: issuer,
	}
}

// invalidCredentials is the single error returned for both "no such user"
// and "wrong password", so the response cannot be used to enumerate
// usernames.
func invalidCredentials() *apperror.AppError {
	return apperror.NewAuthError("Login failed", nil).WithFields(map[string]string{
		"auth": "Invalid username or password",
	})
}

// usernameTaken is the conflict error for duplicate registrations.
func usernameTaken() *apperror.AppError {
	return apperror.NewConflictError("Registration failed", nil).WithFields(map[string]string{
		"username": "Username is already taken",
	})
}

// Register validates the payload, creates the user with a hashed password
// and returns the public user projection together with a fresh token.
// Validation failures short-circuit before any store access.
func (s *AuthService) Register(ctx context.Context, req CredentialsRequest) (*AuthResponse, error) {
	if err := ValidateCredentials(req); err != nil {
		return nil, err
	}

	// Uniqueness check first for a clean error; the unique index still
	// guards against a concurrent registration racing past this check.
	var existingID int64
	err := s.dbPool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, req.Username).Scan(&existingID)
	if err == nil {
		return nil, usernameTaken()
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("Registration error: checking username %q: %v", req.Username, err)
		return nil, apperror.NewDatabaseError("Registration failed", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("Registration failed", err)
	}

	user := &User{
		Username:       req.Username,
		HashedPassword: digest,
	}
	query := `INSERT INTO users (username, password_hash)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err = s.dbPool.QueryRow(ctx, query, user.Username, user.HashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "username") {
			return nil, usernameTaken()
		}
		log.Printf("Registration error: inserting user %q: %v", req.Username, err)
		return nil, apperror.NewDatabaseError("Registration failed", err)
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperror.NewInternalError("Registration failed", err)
	}

	return &AuthResponse{
		Message: "Registration successful! Welcome aboard!",
		User:    UserResponse{ID: user.ID, Username: user.Username},
		Token:   token,
	}, nil
}

// Login validates the payload, checks the credentials and returns the user
// projection with a fresh token. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req CredentialsRequest) (*AuthResponse, error) {
	if err := ValidateCredentials(req); err != nil {
		return nil, err
	}

	var user User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	err := s.dbPool.QueryRow(ctx, query, req.Username).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invalidCredentials()
		}
		log.Printf("Login error: looking up user %q: %v", req.Username, err)
		return nil, apperror.NewDatabaseError("Login failed", err)
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return nil, invalidCredentials()
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperror.NewInternalError("Login failed", err)
	}

	return &AuthResponse{
		Message: "Welcome back!",
		User:    UserResponse{ID: user.ID, Username: user.Username},
		Token:   token,
	}, nil
}

// VerifyIdentity verifies a bearer token and returns the current projection
// of its user, excluding the password hash. Unlike the request authorizer,
// this re-queries the store, so a token for a since-deleted user fails with
// a not-found error.
func (s *AuthService) VerifyIdentity(ctx context.Context, tokenString string) (*VerifyResponse, error) {
	claims, err := s.issuer.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	var resp VerifyResponse
	query := `SELECT id, username, created_at FROM users WHERE id = $1`
	err = s.dbPool.QueryRow(ctx, query, claims.UserID).Scan(&resp.ID, &resp.Username, &resp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		log.Printf("Verify error: looking up user %d: %v", claims.UserID, err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	return &resp, nil
}
