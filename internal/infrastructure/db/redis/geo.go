package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const geoKey = "locations:geo"

// GeoIndex provides radius queries over location points backed by the Redis
// GEO commands. The documents in MongoDB remain the source of truth; this
// index only answers "which ids are near this point".
type GeoIndex struct {
	client *redis.Client
}

// NewGeoIndex creates a GeoIndex wrapping the given Redis client.
func NewGeoIndex(client *redis.Client) *GeoIndex {
	return &GeoIndex{client: client}
}

// Add upserts a point into the index keyed by the location id.
func (g *GeoIndex) Add(ctx context.Context, id string, lat, lng float64) error {
	err := g.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      id,
		Latitude:  lat,
		Longitude: lng,
	}).Err()
	if err != nil {
		return fmt.Errorf("geo add: %w", err)
	}
	return nil
}

// Remove drops a point from the index.
func (g *GeoIndex) Remove(ctx context.Context, id string) error {
	if err := g.client.ZRem(ctx, geoKey, id).Err(); err != nil {
		return fmt.Errorf("geo remove: %w", err)
	}
	return nil
}

// SearchRadius returns the ids of points within radiusKm of the center.
func (g *GeoIndex) SearchRadius(ctx context.Context, lat, lng, radiusKm float64) ([]string, error) {
	results, err := g.client.GeoSearch(ctx, geoKey, &redis.GeoSearchQuery{
		Latitude:   lat,
		Longitude:  lng,
		Radius:     radiusKm,
		RadiusUnit: "km",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}
	return results, nil
}
