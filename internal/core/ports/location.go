package ports

import (
	"context"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// LocationRepository defines persistence operations for shared locations.
type LocationRepository interface {
	Create(ctx context.Context, l *domain.Location) (*domain.Location, error)
	FindByID(ctx context.Context, id string) (*domain.Location, error)
	// ListByUser returns locations for one user; an empty userID returns all
	// (admin listing).
	ListByUser(ctx context.Context, userID string) ([]*domain.Location, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Location, error)
	Update(ctx context.Context, l *domain.Location) error
	Delete(ctx context.Context, id string) error
	// ClearPrimary unsets the primary flag on every location of the
	// (user, type) pair except the one identified by keepID (may be empty).
	ClearPrimary(ctx context.Context, userID, locType, keepID string) error
}

// GeoIndex maintains a radius-searchable index of location points.
type GeoIndex interface {
	Add(ctx context.Context, id string, lat, lng float64) error
	Remove(ctx context.Context, id string) error
	// SearchRadius returns ids of points within radiusKm of the given center.
	SearchRadius(ctx context.Context, lat, lng, radiusKm float64) ([]string, error)
}

// SaveLocationInput carries location attributes for create and update.
type SaveLocationInput struct {
	Latitude  float64
	Longitude float64
	Name      string
	Type      string
	Address   string
	IsPrimary bool
}

// NearbyInput is a radius query around a point.
type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// MapMarker is a location pre-shaped for map rendering.
type MapMarker struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	OwnerRole string  `json:"owner_role"`
}

// LocationService defines location use cases.
type LocationService interface {
	Create(ctx context.Context, actor domain.Actor, in SaveLocationInput) (*domain.Location, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Location, error)
	Update(ctx context.Context, actor domain.Actor, id string, in SaveLocationInput) (*domain.Location, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	Nearby(ctx context.Context, actor domain.Actor, in NearbyInput) ([]*domain.Location, error)
	MapsFormat(ctx context.Context, actor domain.Actor) ([]MapMarker, error)
}
