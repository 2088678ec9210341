package domain

import (
	"errors"
	"time"
)

// ServiceStatus represents the lifecycle state of a service request.
type ServiceStatus string

const (
	ServicePending    ServiceStatus = "pending"
	ServiceApproved   ServiceStatus = "approved"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
	ServiceCancelled  ServiceStatus = "cancelled"
)

// serviceTransitions defines the allowed state machine transitions.
// Cancellation is allowed from any state prior to completion.
var serviceTransitions = map[ServiceStatus][]ServiceStatus{
	ServicePending:    {ServiceApproved, ServiceCancelled},
	ServiceApproved:   {ServiceInProgress, ServiceCancelled},
	ServiceInProgress: {ServiceCompleted, ServiceCancelled},
}

var ErrServiceNotFound = errors.New("service request not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s ServiceStatus) CanTransitionTo(next ServiceStatus) bool {
	for _, allowed := range serviceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s ServiceStatus) IsTerminal() bool {
	return s == ServiceCompleted || s == ServiceCancelled
}

// ServiceRequest references one user and one vehicle. Status is mutated only
// through the transition map; CompletedAt is stamped exclusively on the
// transition to completed.
type ServiceRequest struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	UserID        string        `json:"user_id" bson:"user_id"`
	VehicleID     string        `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType   string        `json:"service_type" bson:"service_type"`
	Title         string        `json:"title" bson:"title"`
	Description   string        `json:"description,omitempty" bson:"description,omitempty"`
	PreferredDate time.Time     `json:"preferred_date" bson:"preferred_date"`
	Location      string        `json:"location,omitempty" bson:"location,omitempty"`
	Status        ServiceStatus `json:"status" bson:"status"`
	TruckID       string        `json:"truck_id,omitempty" bson:"truck_id,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}
