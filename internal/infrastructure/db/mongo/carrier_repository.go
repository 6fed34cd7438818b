package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jake-esse/ai-broker/internal/core/domain"
)

const collectionCarriers = "carriers"

type CarrierRepository struct {
	col *mongo.Collection
}

func NewCarrierRepository(db *mongo.Database) *CarrierRepository {
	return &CarrierRepository{col: db.Collection(collectionCarriers)}
}

// FindActive returns all carriers eligible for load matching.
func (r *CarrierRepository) FindActive(ctx context.Context) ([]*domain.Carrier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"status": "active"})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var carriers []*domain.Carrier
	if err := cur.All(ctx, &carriers); err != nil {
		return nil, err
	}
	return carriers, nil
}

// FindByID retrieves a carrier by its ID.
func (r *CarrierRepository) FindByID(ctx context.Context, id string) (*domain.Carrier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Carrier
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarrierNotFound
		}
		return nil, err
	}
	return &c, nil
}
