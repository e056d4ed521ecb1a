// Package auth defines the authentication failure taxonomy shared by the
// session manager, the request guard middleware, and the HTTP handlers.
// Callers branch on these kinds, so they must stay distinct.
package auth

import (
	"errors"
	"net/http"
)

var (
	// ErrTokenMissing means no credential was presented on the request.
	ErrTokenMissing = errors.New("authentication token missing")
	// ErrTokenInvalid covers malformed tokens, bad signatures, wrong
	// issuer/audience, and embedded expiry.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrSessionNotFound means the refresh token has no stored session;
	// the client must perform a full login.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired means the stored session passed its expires_at.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserUnavailable means the session's user was deleted or deactivated
	// after the tokens were issued.
	ErrUserUnavailable = errors.New("user not found or inactive")
	// ErrInsufficientPermissions means the caller is authenticated but the
	// role is not in the endpoint's allow-list.
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	// ErrLocationNotAccessible means the caller's role is acceptable but the
	// token's location does not match the requested resource's location.
	ErrLocationNotAccessible = errors.New("location not accessible")

	// ErrInvalidCredentials is the login-time failure; deliberately the same
	// for unknown user, inactive user, and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUser is returned by registration when the username or
	// email is already taken.
	ErrDuplicateUser = errors.New("username or email already registered")
)

// Code returns the wire error code for err, or INTERNAL_SERVER_ERROR when the
// error is not part of the taxonomy.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrTokenMissing):
		return "AUTH_TOKEN_MISSING"
	case errors.Is(err, ErrTokenInvalid):
		return "AUTH_TOKEN_INVALID"
	case errors.Is(err, ErrSessionNotFound):
		return "AUTH_SESSION_NOT_FOUND"
	case errors.Is(err, ErrSessionExpired):
		return "AUTH_SESSION_EXPIRED"
	case errors.Is(err, ErrUserUnavailable):
		return "AUTH_USER_UNAVAILABLE"
	case errors.Is(err, ErrInsufficientPermissions):
		return "INSUFFICIENT_PERMISSIONS"
	case errors.Is(err, ErrLocationNotAccessible):
		return "LOCATION_NOT_ACCESSIBLE"
	case errors.Is(err, ErrInvalidCredentials):
		return "AUTH_CREDENTIALS_INVALID"
	case errors.Is(err, ErrDuplicateUser):
		return "DUPLICATE_ENTRY"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// HTTPStatus maps err to the status the HTTP layer should answer with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTokenMissing),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrUserUnavailable),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientPermissions),
		errors.Is(err, ErrLocationNotAccessible):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicateUser):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
