package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// VehicleService implements vehicle use cases with uniform ownership checks.
type VehicleService struct {
	repo ports.VehicleRepository
	log  zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, log zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, log: log}
}

func (s *VehicleService) Create(ctx context.Context, actor domain.Actor, in ports.CreateVehicleInput) (*domain.Vehicle, error) {
	now := time.Now().UTC()
	vehicle := &domain.Vehicle{
		OwnerID:            actor.UserID,
		Make:               in.Make,
		Model:              in.Model,
		Year:               in.Year,
		LicensePlate:       in.LicensePlate,
		Color:              in.Color,
		Mileage:            in.Mileage,
		MaintenanceHistory: []domain.MaintenanceEntry{},
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create vehicle")
		return nil, err
	}

	s.log.Info().Str("vehicle_id", created.ID).Str("owner_id", actor.UserID).Msg("vehicle created")
	return created, nil
}

func (s *VehicleService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, vehicle.OwnerID); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, actor domain.Actor) ([]*domain.Vehicle, error) {
	ownerID := actor.UserID
	if actor.Role == domain.RoleAdmin {
		ownerID = ""
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *VehicleService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Color != nil {
		vehicle.Color = *in.Color
	}
	if in.Mileage != nil {
		vehicle.Mileage = *in.Mileage
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) AddMaintenance(ctx context.Context, actor domain.Actor, id string, in ports.MaintenanceInput) (*domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	performedAt := in.PerformedAt
	if performedAt.IsZero() {
		performedAt = time.Now().UTC()
	}
	entry := domain.MaintenanceEntry{
		Description: in.Description,
		Mileage:     in.Mileage,
		PerformedAt: performedAt,
	}

	if err := s.repo.AppendMaintenance(ctx, id, entry); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, vehicle.ID)
}

func (s *VehicleService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
