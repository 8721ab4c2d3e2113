package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/http/respond"
	"github.com/hongminglow/storefront/internal/models"
)

type claimsKey struct{}

// ClaimsFrom returns the verified claims stored by RequireAuth.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok
}

// WithClaims stores claims on ctx.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Token requerido")
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "Token inválido")
			return
		}
		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// RequireAdmin is RequireAuth plus an admin role check.
func RequireAdmin(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(tokens, func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFrom(r.Context())
		if claims.Role != models.AdminUser {
			respond.Error(w, http.StatusForbidden, "Acceso denegado")
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
