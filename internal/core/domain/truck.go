package domain

import (
	"errors"
	"time"
)

// TruckStatus represents the dispatch state of a service truck.
type TruckStatus string

const (
	TruckAvailable   TruckStatus = "available"
	TruckDispatched  TruckStatus = "dispatched"
	TruckMaintenance TruckStatus = "maintenance"
)

var ErrTruckNotFound = errors.New("truck not found")
var ErrTruckUnavailable = errors.New("truck not available for dispatch")

// Truck is a dispatchable service vehicle managed by admins.
type Truck struct {
	ID                string      `json:"id" bson:"_id,omitempty"`
	PlateNumber       string      `json:"plate_number" bson:"plate_number"`
	DriverName        string      `json:"driver_name" bson:"driver_name"`
	Capacity          int         `json:"capacity" bson:"capacity"`
	Status            TruckStatus `json:"status" bson:"status"`
	AssignedServiceID string      `json:"assigned_service_id,omitempty" bson:"assigned_service_id,omitempty"`
	CreatedAt         time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" bson:"updated_at"`
}
