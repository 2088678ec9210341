package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// TruckService implements admin-only truck management.
type TruckService struct {
	repo ports.TruckRepository
	log  zerolog.Logger
}

func NewTruckService(repo ports.TruckRepository, log zerolog.Logger) *TruckService {
	return &TruckService{repo: repo, log: log}
}

func (s *TruckService) Create(ctx context.Context, actor domain.Actor, in ports.CreateTruckInput) (*domain.Truck, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	truck := &domain.Truck{
		PlateNumber: in.PlateNumber,
		DriverName:  in.DriverName,
		Capacity:    in.Capacity,
		Status:      domain.TruckAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, truck)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("truck_id", created.ID).Str("plate", created.PlateNumber).Msg("truck registered")
	return created, nil
}

func (s *TruckService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Truck, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TruckService) List(ctx context.Context, actor domain.Actor) ([]*domain.Truck, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *TruckService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateTruckInput) (*domain.Truck, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	truck, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DriverName != nil {
		truck.DriverName = *in.DriverName
	}
	if in.Capacity != nil {
		truck.Capacity = *in.Capacity
	}
	if in.Status != nil {
		truck.Status = *in.Status
	}
	truck.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

func (s *TruckService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
