package middleware

import (
	"context"
	"net/http"
	"strings"

	"evkiosk/internal/auth"
)

type contextKey string

const claimsKey contextKey = "operatorClaims"

// OperatorAuth validates the bearer token on maintenance endpoints.
func OperatorAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves validated operator claims.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	val := ctx.Value(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
