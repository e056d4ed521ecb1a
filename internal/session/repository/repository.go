package repository

import (
	"context"
	"time"

	"restaurant-inventory/backend/internal/session/domain"
)

// Repository defines persistence for refresh-token sessions. It is a pure
// persistence boundary; session lifecycle decisions live in the auth service.
type Repository interface {
	Create(ctx context.Context, s *domain.Session) error
	// GetByToken returns the session whose refresh_token equals token, or nil
	// if absent.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session with the given id. Idempotent.
	Delete(ctx context.Context, id string) error
	// DeleteAllByUser removes every session for the user and returns the count.
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
	// DeleteExpired removes every session with expires_at before now and
	// returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
