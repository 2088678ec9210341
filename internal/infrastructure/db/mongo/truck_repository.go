package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

const trucksCollection = "trucks"

// TruckRepository implements ports.TruckRepository backed by MongoDB.
type TruckRepository struct {
	coll *mongo.Collection
}

func NewTruckRepository(db *mongo.Database) *TruckRepository {
	return &TruckRepository{coll: db.Collection(trucksCollection)}
}

func (r *TruckRepository) Create(ctx context.Context, t *domain.Truck) (*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if t.ID == "" {
		t.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return nil, fmt.Errorf("insert truck: %w", err)
	}
	return t, nil
}

func (r *TruckRepository) FindByID(ctx context.Context, id string) (*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Truck
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTruckNotFound
		}
		return nil, fmt.Errorf("find truck: %w", err)
	}
	return &t, nil
}

func (r *TruckRepository) List(ctx context.Context) ([]*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list trucks: %w", err)
	}
	defer cur.Close(ctx)

	trucks := []*domain.Truck{}
	if err := cur.All(ctx, &trucks); err != nil {
		return nil, fmt.Errorf("decode trucks: %w", err)
	}
	return trucks, nil
}

func (r *TruckRepository) Update(ctx context.Context, t *domain.Truck) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return fmt.Errorf("update truck: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTruckNotFound
	}
	return nil
}

func (r *TruckRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete truck: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTruckNotFound
	}
	return nil
}
