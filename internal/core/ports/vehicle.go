package ports

import (
	"context"
	"time"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// VehicleRepository defines persistence operations for vehicles. All reads
// exclude soft-deleted documents.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// ListByOwner returns active vehicles for one owner; an empty ownerID
	// returns all active vehicles (admin listing).
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	// AppendMaintenance atomically pushes an entry onto the maintenance
	// history and updates the stored mileage.
	AppendMaintenance(ctx context.Context, id string, entry domain.MaintenanceEntry) error
	// SoftDelete clears the active flag.
	SoftDelete(ctx context.Context, id string) error
}

// CreateVehicleInput carries the data needed to register a vehicle.
type CreateVehicleInput struct {
	Make         string
	Model        string
	Year         int
	LicensePlate string
	Color        string
	Mileage      int
}

// UpdateVehicleInput carries mutable vehicle attributes. Nil pointers mean
// "leave unchanged".
type UpdateVehicleInput struct {
	Color   *string
	Mileage *int
}

// MaintenanceInput is one append-only maintenance record.
type MaintenanceInput struct {
	Description string
	Mileage     int
	PerformedAt time.Time
}

// VehicleService defines use-case operations for vehicles. Every operation
// takes the acting caller so ownership can be enforced uniformly.
type VehicleService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateVehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Vehicle, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Vehicle, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateVehicleInput) (*domain.Vehicle, error)
	AddMaintenance(ctx context.Context, actor domain.Actor, id string, in MaintenanceInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
