package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

const collectionLoads = "loads"

type LoadRepository struct {
	col *mongo.Collection
}

func NewLoadRepository(db *mongo.Database) *LoadRepository {
	return &LoadRepository{col: db.Collection(collectionLoads)}
}

// Create inserts a new load document.
func (r *LoadRepository) Create(ctx context.Context, l *domain.Load) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateLoad
		}
		return err
	}
	return nil
}

// FindByLoadNumber retrieves a load by its load number.
func (r *LoadRepository) FindByLoadNumber(ctx context.Context, loadNumber string) (*domain.Load, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Load
	err := r.col.FindOne(ctx, bson.M{"load_number": loadNumber}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoadNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindIncompleteByThread returns the most recent incomplete load on the
// given email thread.
func (r *LoadRepository) FindIncompleteByThread(ctx context.Context, threadID string) (*domain.Load, error) {
	return r.findIncomplete(ctx, bson.M{"thread_id": threadID, "is_complete": false})
}

// FindIncompleteByShipper returns the most recent incomplete load from the
// given shipper, the fallback when a reply carries no thread reference.
func (r *LoadRepository) FindIncompleteByShipper(ctx context.Context, shipperEmail string) (*domain.Load, error) {
	return r.findIncomplete(ctx, bson.M{"shipper_email": shipperEmail, "is_complete": false})
}

func (r *LoadRepository) findIncomplete(ctx context.Context, filter bson.M) (*domain.Load, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var l domain.Load
	err := r.col.FindOne(ctx, filter, opts).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoadNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Update replaces the load document identified by its ID.
func (r *LoadRepository) Update(ctx context.Context, l *domain.Load) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrLoadNotFound
	}
	return nil
}

// List returns a page of loads matching the filter, newest first, plus the
// total match count for pagination.
func (r *LoadRepository) List(ctx context.Context, filter ports.ListLoadsFilter) ([]*domain.Load, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.BrokerID != "" {
		// Brokers see their own loads plus unassigned ones. $in with nil
		// also matches documents missing the field entirely.
		query["broker_id"] = bson.M{"$in": bson.A{filter.BrokerID, "", nil}}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.FreightType != "" {
		query["freight_type"] = filter.FreightType
	}
	if filter.Search != "" {
		pattern := primitiveRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"load_number": pattern},
			bson.M{"shipper_email": pattern},
		}
	}
	if !filter.DateFrom.IsZero() || !filter.DateTo.IsZero() {
		created := bson.M{}
		if !filter.DateFrom.IsZero() {
			created["$gte"] = filter.DateFrom
		}
		if !filter.DateTo.IsZero() {
			created["$lte"] = filter.DateTo
		}
		query["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var loads []*domain.Load
	if err := cur.All(ctx, &loads); err != nil {
		return nil, 0, err
	}
	return loads, total, nil
}

// EnsureIndexes creates the indexes intake and the dashboard query on.
func (r *LoadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "load_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "thread_id", Value: 1}, {Key: "is_complete", Value: 1}}},
		{Keys: bson.D{{Key: "shipper_email", Value: 1}, {Key: "is_complete", Value: 1}}},
		{Keys: bson.D{{Key: "broker_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func primitiveRegex(s string) bson.M {
	return bson.M{"$regex": s, "$options": "i"}
}
