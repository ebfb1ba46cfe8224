package middleware

import (
	"context"
	"net/http"

	"github.com/rohits-web03/blogify/internal/auth"
	"github.com/rohits-web03/blogify/internal/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenCookie carries the session token.
const TokenCookie = "token"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid token cookie with 401 and
// exposes the verified claims to next through the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
