package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/pricing"
)

const collectionQuotes = "quotes"

// laneRateWindow bounds how far back historical quotes count as current
// market signal.
const laneRateWindow = 30 * 24 * time.Hour

type QuoteRepository struct {
	col   *mongo.Collection
	loads *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{
		col:   db.Collection(collectionQuotes),
		loads: db.Collection(collectionLoads),
	}
}

// Create inserts a new quote document.
func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, q)
	return err
}

// UpdateStatus sets the lifecycle status of a stored quote.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

// FindByID retrieves a quote by its ID.
func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var q domain.Quote
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindLatestByLoad retrieves the most recent quote for a load.
func (r *QuoteRepository) FindLatestByLoad(ctx context.Context, loadID string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var q domain.Quote
	err := r.col.FindOne(ctx, bson.M{"load_id": loadID}, opts).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &q, nil
}

// LaneRates aggregates recent per-mile carrier rates quoted on the lane. The
// second return value is false when the lane has no recent history, which
// tells the pricing engine to fall back to its equipment base rates.
func (r *QuoteRepository) LaneRates(ctx context.Context, originState, destState, equipment string) (pricing.LaneRates, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	since := time.Now().UTC().Add(-laneRateWindow)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at":    bson.M{"$gte": since},
			"rate_per_mile": bson.M{"$gt": 0},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionLoads,
			"localField":   "load_id",
			"foreignField": "_id",
			"as":           "load",
		}}},
		{{Key: "$unwind", Value: "$load"}},
		{{Key: "$match", Value: bson.M{
			"load.data.pickup_state":   originState,
			"load.data.delivery_state": destState,
			"load.data.equipment_type": equipment,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":  nil,
			"avg":  bson.M{"$avg": "$rate_per_mile"},
			"low":  bson.M{"$min": "$rate_per_mile"},
			"high": bson.M{"$max": "$rate_per_mile"},
			"n":    bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return pricing.LaneRates{}, false, err
	}
	defer cur.Close(ctx)

	var row struct {
		Avg  float64 `bson:"avg"`
		Low  float64 `bson:"low"`
		High float64 `bson:"high"`
		N    int     `bson:"n"`
	}
	if !cur.Next(ctx) {
		return pricing.LaneRates{}, false, cur.Err()
	}
	if err := cur.Decode(&row); err != nil {
		return pricing.LaneRates{}, false, err
	}
	if row.N == 0 {
		return pricing.LaneRates{}, false, nil
	}

	return pricing.LaneRates{Average: row.Avg, Low: row.Low, High: row.High}, true, nil
}

// EnsureIndexes creates the indexes quote lookups and lane aggregation use.
func (r *QuoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "load_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
