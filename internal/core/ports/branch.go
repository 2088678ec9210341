package ports

import (
	"context"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// BranchRepository defines persistence operations for branches.
type BranchRepository interface {
	Create(ctx context.Context, b *domain.Branch) (*domain.Branch, error)
	FindByID(ctx context.Context, id string) (*domain.Branch, error)
	List(ctx context.Context) ([]*domain.Branch, error)
	Update(ctx context.Context, b *domain.Branch) error
	Delete(ctx context.Context, id string) error
}

// BranchInput carries branch attributes for create and update.
type BranchInput struct {
	Name    string
	Address string
	Phone   string
	Lat     float64
	Lng     float64
}

// BranchService defines branch management. Listing is public; mutation is
// admin only.
type BranchService interface {
	Create(ctx context.Context, actor domain.Actor, in BranchInput) (*domain.Branch, error)
	List(ctx context.Context) ([]*domain.Branch, error)
	Update(ctx context.Context, actor domain.Actor, id string, in BranchInput) (*domain.Branch, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
