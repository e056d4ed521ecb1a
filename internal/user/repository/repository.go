package repository

import (
	"context"

	"restaurant-inventory/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByLogin returns the user whose username or email equals login.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}
