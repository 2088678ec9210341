package domain

import (
	"errors"
	"time"
)

var ErrLocationNotFound = errors.New("location not found")

// Location is a geographic point shared by a user. At most one primary
// location exists per (user, type) pair; saving a new primary clears the flag
// on every other location of that pair.
type Location struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Type      string    `json:"type" bson:"type"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	IsPrimary bool      `json:"is_primary" bson:"is_primary"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
