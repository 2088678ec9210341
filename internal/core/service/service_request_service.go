package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

const maxListLimit = 100

// ServiceRequestService implements service-request use cases including the
// status state machine and truck dispatch.
type ServiceRequestService struct {
	repo        ports.ServiceRepository
	vehicleRepo ports.VehicleRepository
	truckRepo   ports.TruckRepository
	log         zerolog.Logger
}

func NewServiceRequestService(
	repo ports.ServiceRepository,
	vehicleRepo ports.VehicleRepository,
	truckRepo ports.TruckRepository,
	log zerolog.Logger,
) *ServiceRequestService {
	return &ServiceRequestService{repo: repo, vehicleRepo: vehicleRepo, truckRepo: truckRepo, log: log}
}

func (s *ServiceRequestService) Create(ctx context.Context, actor domain.Actor, in ports.CreateServiceInput) (*domain.ServiceRequest, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, vehicle.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.ServiceRequest{
		UserID:        vehicle.OwnerID,
		VehicleID:     vehicle.ID,
		ServiceType:   in.ServiceType,
		Title:         in.Title,
		Description:   in.Description,
		PreferredDate: in.PreferredDate,
		Location:      in.Location,
		Status:        domain.ServicePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create service request")
		return nil, err
	}

	s.log.Info().Str("service_id", created.ID).Str("user_id", created.UserID).Str("type", created.ServiceType).Msg("service request created")
	return created, nil
}

func (s *ServiceRequestService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.ServiceRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, req.UserID); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *ServiceRequestService) List(ctx context.Context, actor domain.Actor, in ports.ListServicesInput) (*ports.ListServicesResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := ports.ListServicesFilter{
		UserID: actor.UserID,
		Status: in.Status,
		Page:   page,
		Limit:  limit,
	}
	if actor.Role == domain.RoleAdmin {
		filter.UserID = ""
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListServicesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus applies an admin-driven state machine transition. The
// completion time is stamped only when the new status is completed.
func (s *ServiceRequestService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.ServiceStatus) (*domain.ServiceRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, req.Status, status)
	}

	now := time.Now().UTC()
	req.Status = status
	req.UpdatedAt = now
	if status == domain.ServiceCompleted {
		req.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}

	// Release the dispatched truck once the request reaches a terminal state.
	if status.IsTerminal() && req.TruckID != "" {
		if err := s.releaseTruck(ctx, req.TruckID); err != nil {
			s.log.Warn().Err(err).Str("truck_id", req.TruckID).Msg("failed to release truck")
		}
	}

	s.log.Info().Str("service_id", req.ID).Str("status", string(status)).Msg("service status updated")
	return req, nil
}

// Dispatch assigns an available truck to an approved or in-progress request.
func (s *ServiceRequestService) Dispatch(ctx context.Context, actor domain.Actor, id, truckID string) (*domain.ServiceRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ServiceApproved && req.Status != domain.ServiceInProgress {
		return nil, fmt.Errorf("%w (request is %s)", domain.ErrInvalidTransition, req.Status)
	}

	truck, err := s.truckRepo.FindByID(ctx, truckID)
	if err != nil {
		return nil, err
	}
	if truck.Status != domain.TruckAvailable {
		return nil, domain.ErrTruckUnavailable
	}

	now := time.Now().UTC()
	truck.Status = domain.TruckDispatched
	truck.AssignedServiceID = req.ID
	truck.UpdatedAt = now
	if err := s.truckRepo.Update(ctx, truck); err != nil {
		return nil, err
	}

	req.TruckID = truck.ID
	req.UpdatedAt = now
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().Str("service_id", req.ID).Str("truck_id", truck.ID).Msg("truck dispatched")
	return req, nil
}

func (s *ServiceRequestService) releaseTruck(ctx context.Context, truckID string) error {
	truck, err := s.truckRepo.FindByID(ctx, truckID)
	if err != nil {
		return err
	}
	truck.Status = domain.TruckAvailable
	truck.AssignedServiceID = ""
	truck.UpdatedAt = time.Now().UTC()
	return s.truckRepo.Update(ctx, truck)
}
