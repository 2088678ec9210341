package domain

import (
	"errors"
	"time"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// MaintenanceEntry is a single record in a vehicle's append-only
// maintenance history.
type MaintenanceEntry struct {
	Description string    `json:"description" bson:"description"`
	Mileage     int       `json:"mileage" bson:"mileage"`
	PerformedAt time.Time `json:"performed_at" bson:"performed_at"`
}

// Vehicle is owned by exactly one user and soft-deleted via the Active flag.
type Vehicle struct {
	ID                 string             `json:"id" bson:"_id,omitempty"`
	OwnerID            string             `json:"owner_id" bson:"owner_id"`
	Make               string             `json:"make" bson:"make"`
	Model              string             `json:"model" bson:"model"`
	Year               int                `json:"year" bson:"year"`
	LicensePlate       string             `json:"license_plate" bson:"license_plate"`
	Color              string             `json:"color,omitempty" bson:"color,omitempty"`
	Mileage            int                `json:"mileage" bson:"mileage"`
	MaintenanceHistory []MaintenanceEntry `json:"maintenance_history" bson:"maintenance_history"`
	Active             bool               `json:"active" bson:"active"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}
