// Package service implements the session manager: token issuance, refresh with
// rotation, revocation, and expired-session cleanup.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant-inventory/backend/internal/auth"
	"restaurant-inventory/backend/internal/security"
	sessiondomain "restaurant-inventory/backend/internal/session/domain"
	userdomain "restaurant-inventory/backend/internal/user/domain"
)

// TokenPair is the credential set handed to a client after login or refresh.
// ExpiresIn is the configured access-token lifetime string (e.g. "24h").
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    string
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByLogin(ctx context.Context, login string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	Create(ctx context.Context, s *sessiondomain.Session) error
	GetByToken(ctx context.Context, token string) (*sessiondomain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AuthService owns the lifecycle of refresh sessions and composes the token
// codec and the session store. It is the only writer of user_sessions rows.
type AuthService struct {
	userRepo        UserRepo
	sessionRepo     SessionRepo
	hasher          *security.Hasher
	codec           *security.TokenCodec
	accessExpiresIn string
	sessionTTL      time.Duration
}

// NewAuthService returns an AuthService with the given dependencies.
// sessionTTL drives the stored expires_at and should equal the codec's refresh
// lifetime; the stored expiry is the decisive one.
func NewAuthService(
	userRepo UserRepo,
	sessionRepo SessionRepo,
	hasher *security.Hasher,
	codec *security.TokenCodec,
	accessExpiresIn string,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		hasher:          hasher,
		codec:           codec,
		accessExpiresIn: accessExpiresIn,
		sessionTTL:      sessionTTL,
	}
}

// IssueTokens signs an access token from the user's identity, signs a fresh
// refresh token, and persists the refresh session.
func (s *AuthService) IssueTokens(ctx context.Context, user *userdomain.User) (*TokenPair, error) {
	accessToken, _, err := s.codec.SignAccess(user.ID, user.Username, user.Email, string(user.Role), user.LocationID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, _, err := s.codec.SignRefresh()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &sessiondomain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.sessionTTL),
		CreatedAt:    now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.accessExpiresIn,
	}, nil
}

// Login authenticates by username or email plus password and issues a token
// pair. Unknown user, inactive user, and wrong password all collapse to
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (*userdomain.User, *TokenPair, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, nil, auth.ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, auth.ErrInvalidCredentials
	}
	if !s.hasher.Verify([]byte(password), user.PasswordHash) {
		return nil, nil, auth.ErrInvalidCredentials
	}
	pair, err := s.IssueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RegisterParams is the input for creating a user account.
type RegisterParams struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       userdomain.Role
	LocationID string
}

// Register creates a user with a hashed password. Username and email must be
// unused; collisions return ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*userdomain.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))

	existing, err := s.userRepo.GetByLogin(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.userRepo.GetByLogin(ctx, p.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, auth.ErrDuplicateUser
	}

	hash, err := s.hasher.Hash([]byte(p.Password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Role:         p.Role,
		LocationID:   p.LocationID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Refresh validates the refresh token, rotates the session, and returns a new
// token pair. The stored row is checked independently of the token's embedded
// expiry; dead sessions are deleted eagerly so callers never retry into them.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*userdomain.User, *TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, auth.ErrTokenInvalid
	}
	if _, err := s.codec.VerifyRefresh(refreshToken); err != nil {
		return nil, nil, auth.ErrTokenInvalid
	}
	sess, err := s.sessionRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, auth.ErrSessionNotFound
	}
	now := time.Now().UTC()
	if sess.ExpiresAt.Before(now) {
		_ = s.sessionRepo.Delete(ctx, sess.ID)
		return nil, nil, auth.ErrSessionExpired
	}
	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		_ = s.sessionRepo.Delete(ctx, sess.ID)
		return nil, nil, auth.ErrUserUnavailable
	}
	pair, err := s.IssueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	// Rotation: a crash between IssueTokens and this delete can leak one extra
	// session row until cleanup, but the old token is never reusable once the
	// row is gone.
	if err := s.sessionRepo.Delete(ctx, sess.ID); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Revoke deletes the session for the given refresh token. Revoking an unknown
// token is a no-op, so logout is idempotent.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	sess, err := s.sessionRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sess.ID)
}

// RevokeAll deletes every session for the user ("logout all devices",
// password change). Returns how many sessions were removed.
func (s *AuthService) RevokeAll(ctx context.Context, userID string) (int64, error) {
	return s.sessionRepo.DeleteAllByUser(ctx, userID)
}

// CleanupExpired removes every session whose stored expiry has passed.
// Intended to run on a schedule (cmd/worker).
func (s *AuthService) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, now)
}

// ChangePassword verifies the current password, stores a hash of the new one,
// and revokes every session for the user so all devices must log in again.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return auth.ErrUserUnavailable
	}
	if !s.hasher.Verify([]byte(currentPassword), user.PasswordHash) {
		return auth.ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash([]byte(newPassword))
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	_, err = s.RevokeAll(ctx, userID)
	return err
}

// Profile returns the current user record for the authenticated id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*userdomain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, auth.ErrUserUnavailable
	}
	return user, nil
}
