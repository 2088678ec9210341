package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

const locationsCollection = "locations"

// LocationRepository implements ports.LocationRepository backed by MongoDB.
type LocationRepository struct {
	coll *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{coll: db.Collection(locationsCollection)}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if l.ID == "" {
		l.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return nil, fmt.Errorf("insert location: %w", err)
	}
	return l, nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Location
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("find location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer cur.Close(ctx)

	locations := []*domain.Location{}
	if err := cur.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	return locations, nil
}

func (r *LocationRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find locations: %w", err)
	}
	defer cur.Close(ctx)

	locations := []*domain.Location{}
	if err := cur.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	return locations, nil
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// ClearPrimary unsets is_primary on every location of the (user, type) pair
// except keepID. A single multi-document update; no transaction is needed
// because each document write is atomic on its own.
func (r *LocationRepository) ClearPrimary(ctx context.Context, userID, locType, keepID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id":    userID,
		"type":       locType,
		"is_primary": true,
	}
	if keepID != "" {
		filter["_id"] = bson.M{"$ne": keepID}
	}

	_, err := r.coll.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"is_primary": false, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("clear primary: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner and primary lookup indexes.
func (r *LocationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_primary", Value: 1}}},
	})
	return err
}
