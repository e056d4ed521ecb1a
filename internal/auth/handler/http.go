// Package handler exposes the auth endpoints over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"restaurant-inventory/backend/internal/auth"
	"restaurant-inventory/backend/internal/auth/service"
	"restaurant-inventory/backend/internal/server/middleware"
	"restaurant-inventory/backend/internal/server/respond"
	userdomain "restaurant-inventory/backend/internal/user/domain"
)

// Service is the slice of the auth service the HTTP layer needs.
type Service interface {
	Login(ctx context.Context, login, password string) (*userdomain.User, *service.TokenPair, error)
	Register(ctx context.Context, p service.RegisterParams) (*userdomain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*userdomain.User, *service.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID string) (int64, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Profile(ctx context.Context, userID string) (*userdomain.User, error)
}

// Handler serves the /auth routes.
type Handler struct {
	svc Service
	log *logrus.Logger
}

// New returns a Handler backed by svc, logging through log.
func New(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type userSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
	LocationID string `json:"locationId,omitempty"`
}

type tokenBody struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func summarize(u *userdomain.User) userSummary {
	return userSummary{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       string(u.Role),
		LocationID: u.LocationID,
	}
}

func tokens(p *service.TokenPair) tokenBody {
	return tokenBody{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresIn: p.ExpiresIn}
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		respond.ErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}
	user, pair, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"user":   summarize(user),
		"tokens": tokens(pair),
	}, "login successful")
}

// Register handles POST /auth/register. Route is admin-guarded.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username   string `json:"username"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Role       string `json:"role"`
		LocationID string `json:"locationId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond.ErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "username, email, and password are required")
		return
	}
	role := userdomain.Role(req.Role)
	if !role.Valid() {
		respond.ErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown role")
		return
	}
	user, err := h.svc.Register(r.Context(), service.RegisterParams{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       role,
		LocationID: req.LocationID,
	})
	if err != nil {
		h.fail(w, "register", err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]interface{}{"user": summarize(user)}, "user created")
}

// Refresh handles POST /auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		respond.ErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "refreshToken is required")
		return
	}
	_, pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, "refresh", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"tokens": tokens(pair)}, "token refreshed")
}

// Logout handles POST /auth/logout. Revoking an unknown token still succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Revoke(r.Context(), req.RefreshToken); err != nil {
		h.fail(w, "logout", err)
		return
	}
	respond.JSON(w, http.StatusOK, nil, "logged out")
}

// LogoutAll handles POST /auth/logout-all. Route is authenticated.
func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.Error(w, auth.ErrTokenMissing)
		return
	}
	n, err := h.svc.RevokeAll(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, "logout-all", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"revokedSessions": n}, "logged out from all devices")
}

// Profile handles GET /auth/profile. Route is authenticated.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.Error(w, auth.ErrTokenMissing)
		return
	}
	user, err := h.svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, "profile", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"user": summarize(user)}, "")
}

// ChangePassword handles PUT /auth/change-password. Route is authenticated.
// All of the user's sessions are revoked on success.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respond.Error(w, auth.ErrTokenMissing)
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respond.ErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "currentPassword and newPassword are required")
		return
	}
	if err := h.svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, "change-password", err)
		return
	}
	respond.JSON(w, http.StatusOK, nil, "password changed; please log in again")
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if auth.Code(err) == "INTERNAL_SERVER_ERROR" {
		h.log.WithError(err).WithField("op", op).Error("auth operation failed")
		respond.ErrorCode(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
		return
	}
	h.log.WithError(err).WithField("op", op).Warn("auth request rejected")
	respond.Error(w, err)
}

// decode unmarshals the request body into dst. An empty body is allowed;
// malformed JSON writes a validation failure and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respond.ErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return false
	}
	return true
}
