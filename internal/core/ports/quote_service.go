package ports

import (
	"context"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/pricing"
)

// QuoteRepository defines persistence operations for quotes.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error
	FindByID(ctx context.Context, id string) (*domain.Quote, error)
	FindLatestByLoad(ctx context.Context, loadID string) (*domain.Quote, error)
	// LaneRates aggregates per-mile rates from recent quotes on the lane, for
	// the pricing engine's market lookup.
	LaneRates(ctx context.Context, originState, destState, equipment string) (pricing.LaneRates, bool, error)
}

// QuoteService prices ready loads and records the resulting quotes.
type QuoteService interface {
	// GenerateQuote prices the load and persists a quote. The load must be in
	// ready_to_quote; it transitions to quoted on success.
	GenerateQuote(ctx context.Context, loadNumber string) (*domain.Quote, error)
	GetQuote(ctx context.Context, id string) (*domain.Quote, error)
}
