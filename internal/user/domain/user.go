package domain

import (
	"errors"
	"time"
)

// Role is the fixed role enumeration for chain staff.
type Role string

const (
	RoleAdmin                 Role = "admin"
	RoleAreaManager           Role = "area_manager"
	RoleCentralKitchenManager Role = "central_kitchen_manager"
	RoleRestaurantManager     Role = "restaurant_manager"
	RoleHeadChef              Role = "head_chef"
	RoleStaff                 Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAreaManager, RoleCentralKitchenManager, RoleRestaurantManager, RoleHeadChef, RoleStaff:
		return true
	}
	return false
}

// User is the core user entity. Lifecycle is owned by user-management CRUD;
// the auth core reads it and writes back only the password hash.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	LocationID   string // empty when the user is not assigned to a location
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the user for persistence. Returns an error describing the
// first validation failure.
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if !u.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}
