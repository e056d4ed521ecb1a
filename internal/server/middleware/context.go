package middleware

import (
	"context"

	"restaurant-inventory/backend/internal/security"
)

type contextKey struct{ name string }

var claimsKey = contextKey{"auth_claims"}

// WithClaims returns a context carrying the decoded access-token claims.
// Handlers read them via GetClaims; the request object itself is never
// mutated.
func WithClaims(ctx context.Context, claims *security.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the decoded claims from ctx and true if a token was
// authenticated; otherwise nil, false.
func GetClaims(ctx context.Context) (*security.AccessClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*security.AccessClaims)
	return c, ok
}
