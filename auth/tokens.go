package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/todo-api-go/apperror"
)

// Claims defines the payload of issued bearer tokens: the user's identity
// plus the standard registered claims (exp, iat).
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and validates signed, time-limited bearer tokens.
// The signing secret and token lifetime are injected at construction; the
// issuer is the only component that ever touches the secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret and
// issuing tokens valid for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed HS256 token encoding the user's id and username,
// valid from now until now+ttl. The compact serialization is safe to carry
// in an Authorization header.
func (t *TokenIssuer) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning its claims.
// An expired token yields an AuthError with message "Token expired"; a
// token with a bad signature, wrong algorithm or malformed structure yields
// "Invalid token". The two cases are distinguishable by clients only through
// the message, both map to 401.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.NewAuthError("Token expired", err)
		}
		return nil, apperror.NewAuthError("Invalid token", err)
	}

	if !token.Valid {
		return nil, apperror.NewAuthError("Invalid token", nil)
	}

	// A structurally valid token must still carry an identity.
	if claims.UserID == 0 {
		return nil, apperror.NewAuthError("Invalid token", nil)
	}

	return claims, nil
}
