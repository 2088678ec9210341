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

const vehiclesCollection = "vehicles"

// VehicleRepository implements ports.VehicleRepository backed by MongoDB.
// All reads filter on the active flag so soft-deleted vehicles stay hidden.
type VehicleRepository struct {
	coll *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{coll: db.Collection(vehiclesCollection)}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	return v, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"active": true}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	vehicles := []*domain.Vehicle{}
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": v.ID, "active": true}, v)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// AppendMaintenance atomically pushes a history entry and bumps the mileage.
func (r *VehicleRepository) AppendMaintenance(ctx context.Context, id string, entry domain.MaintenanceEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"maintenance_history": entry},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if entry.Mileage > 0 {
		update["$max"] = bson.M{"mileage": entry.Mileage}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "active": true}, update)
	if err != nil {
		return fmt.Errorf("append maintenance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("soft delete vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "license_plate", Value: 1}}},
	})
	return err
}
