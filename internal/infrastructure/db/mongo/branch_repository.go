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

const branchesCollection = "branches"

// BranchRepository implements ports.BranchRepository backed by MongoDB.
type BranchRepository struct {
	coll *mongo.Collection
}

func NewBranchRepository(db *mongo.Database) *BranchRepository {
	return &BranchRepository{coll: db.Collection(branchesCollection)}
}

func (r *BranchRepository) Create(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return nil, fmt.Errorf("insert branch: %w", err)
	}
	return b, nil
}

func (r *BranchRepository) FindByID(ctx context.Context, id string) (*domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Branch
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}
	return &b, nil
}

func (r *BranchRepository) List(ctx context.Context) ([]*domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer cur.Close(ctx)

	branches := []*domain.Branch{}
	if err := cur.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("decode branches: %w", err)
	}
	return branches, nil
}

func (r *BranchRepository) Update(ctx context.Context, b *domain.Branch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBranchNotFound
	}
	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBranchNotFound
	}
	return nil
}
