package ports

import (
	"context"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// TruckRepository defines persistence operations for dispatch trucks.
type TruckRepository interface {
	Create(ctx context.Context, t *domain.Truck) (*domain.Truck, error)
	FindByID(ctx context.Context, id string) (*domain.Truck, error)
	List(ctx context.Context) ([]*domain.Truck, error)
	Update(ctx context.Context, t *domain.Truck) error
	Delete(ctx context.Context, id string) error
}

// CreateTruckInput carries the data needed to register a truck.
type CreateTruckInput struct {
	PlateNumber string
	DriverName  string
	Capacity    int
}

// UpdateTruckInput carries mutable truck attributes. Nil means unchanged.
type UpdateTruckInput struct {
	DriverName *string
	Capacity   *int
	Status     *domain.TruckStatus
}

// TruckService defines admin-only truck management.
type TruckService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateTruckInput) (*domain.Truck, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Truck, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Truck, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateTruckInput) (*domain.Truck, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
