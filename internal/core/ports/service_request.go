package ports

import (
	"context"
	"time"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// ListServicesFilter carries query parameters for listing service requests.
// UserID is enforced by the service layer for non-admin callers.
type ListServicesFilter struct {
	UserID string // empty = no filter (admin); non-empty = scoped to owner
	Status string // optional: filter by status
	Page   int    // 1-based
	Limit  int    // capped by the service layer
}

// ServiceRepository defines persistence operations for service requests.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.ServiceRequest) (*domain.ServiceRequest, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	// List returns a page of service requests matching filter and the total count.
	List(ctx context.Context, filter ListServicesFilter) ([]*domain.ServiceRequest, int64, error)
	Update(ctx context.Context, s *domain.ServiceRequest) error
}

// CreateServiceInput carries the data needed to open a service request.
type CreateServiceInput struct {
	VehicleID     string
	ServiceType   string
	Title         string
	Description   string
	PreferredDate time.Time
	Location      string
}

// ListServicesInput carries list parameters from the transport layer.
type ListServicesInput struct {
	Status string
	Page   int
	Limit  int
}

// ListServicesResult is a page of service requests.
type ListServicesResult struct {
	Items      []*domain.ServiceRequest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ServiceRequestService defines use-case operations for service requests.
type ServiceRequestService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateServiceInput) (*domain.ServiceRequest, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, actor domain.Actor, in ListServicesInput) (*ListServicesResult, error)
	// UpdateStatus applies a state-machine transition. Admin only; stamping
	// of the completion time happens exclusively on the completed transition.
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.ServiceStatus) (*domain.ServiceRequest, error)
	// Dispatch assigns an available truck to the request. Admin only.
	Dispatch(ctx context.Context, actor domain.Actor, id, truckID string) (*domain.ServiceRequest, error)
}
