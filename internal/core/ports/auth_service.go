package ports

import (
	"context"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string // defaults to "user"; "admin" only via seeding
}

// UpdateProfileInput carries profile edits. Empty fields are left unchanged;
// the role is never editable through this path.
type UpdateProfileInput struct {
	Name  string
	Phone string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	// VerifyToken parses a signed token into an actor. Used by the relay on
	// websocket connect, where no HTTP middleware runs.
	VerifyToken(token string) (domain.Actor, error)
}
