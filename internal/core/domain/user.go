package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the system. Accounts are never
// hard-deleted.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor is the minimal identity extracted from an authenticated request.
type Actor struct {
	UserID string
	Role   string
}

// Authorize is the single ownership/role decision applied by every service:
// admins may act on any resource, everyone else only on resources they own.
func Authorize(actor Actor, ownerID string) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.UserID != "" && actor.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}
