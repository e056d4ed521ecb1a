// Package middleware holds the per-request authorization guard: bearer
// authentication, role allow-lists, and location scoping.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"restaurant-inventory/backend/internal/auth"
	"restaurant-inventory/backend/internal/security"
	"restaurant-inventory/backend/internal/server/respond"
	userdomain "restaurant-inventory/backend/internal/user/domain"
)

const bearerPrefix = "bearer "

// Authenticate validates the request's access token and threads the decoded
// claims through the request context. Missing and invalid tokens are rejected
// with the matching taxonomy kind.
func Authenticate(codec *security.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respond.Error(w, auth.ErrTokenMissing)
				return
			}
			claims, err := codec.VerifyAccess(token)
			if err != nil {
				respond.Error(w, auth.ErrTokenInvalid)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid token is present and otherwise
// lets the request through unauthenticated. Used for endpoints with mixed
// public/private behavior.
func OptionalAuth(codec *security.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				if claims, err := codec.VerifyAccess(token); err == nil {
					r = r.WithContext(WithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles rejects authenticated requests whose role is not in the
// allow-list. Must run after Authenticate.
func RequireRoles(roles ...userdomain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respond.Error(w, auth.ErrTokenMissing)
				return
			}
			for _, role := range roles {
				if claims.Role == string(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			respond.Error(w, auth.ErrInsufficientPermissions)
		})
	}
}

// RequireLocationAccess enforces location scoping against the {locationId}
// path variable: admins and area managers pass unconditionally, every other
// role only for its own assigned location. Must run after Authenticate.
func RequireLocationAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			respond.Error(w, auth.ErrTokenMissing)
			return
		}
		switch claims.Role {
		case string(userdomain.RoleAdmin), string(userdomain.RoleAreaManager):
			next.ServeHTTP(w, r)
			return
		}
		locationID := mux.Vars(r)["locationId"]
		if claims.LocationID != "" && claims.LocationID == locationID {
			next.ServeHTTP(w, r)
			return
		}
		respond.Error(w, auth.ErrLocationNotAccessible)
	})
}

// extractToken returns the credential from the Authorization header. Accepts
// "Bearer <token>" or, for older clients, the raw token string.
func extractToken(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if v == "" {
		return ""
	}
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(v[len(bearerPrefix):])
	}
	return v
}
