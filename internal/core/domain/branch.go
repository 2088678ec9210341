package domain

import (
	"errors"
	"time"
)

var ErrBranchNotFound = errors.New("branch not found")

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Branch is a physical service location.
type Branch struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	Name        string      `json:"name" bson:"name"`
	Address     string      `json:"address" bson:"address"`
	Phone       string      `json:"phone,omitempty" bson:"phone,omitempty"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}
