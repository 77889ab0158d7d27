package auth

import (
	"net/http"
)

// RequireAuth returns middleware that gates protected routes on a valid
// bearer token. It extracts the Authorization header, verifies the token
// with the issuer and attaches the decoded claims to the request context.
// Authorization relies solely on the token claims; the store is not
// consulted, so a still-valid token for a deleted user passes until expiry.
func RequireAuth(issuer *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
