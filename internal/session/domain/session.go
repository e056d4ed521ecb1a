package domain

import "time"

// Session is a persisted refresh-token session. A session is live only while
// the refresh token's own embedded expiry AND ExpiresAt both hold; the stored
// ExpiresAt is the decisive one for session lifetime.
type Session struct {
	ID           string
	UserID       string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}
