package ports

import (
	"context"
	"time"

	"github.com/jake-esse/ai-broker/internal/core/domain"
)

// ListLoadsFilter carries all query parameters for listing loads.
// BrokerID is always enforced by the service layer (RBAC).
type ListLoadsFilter struct {
	BrokerID    string    // empty = no filter (admin); non-empty = scoped to broker
	Status      string    // optional: filter by load status
	FreightType string    // optional: filter by freight type
	Search      string    // optional: partial match on load_number or shipper_email
	DateFrom    time.Time // optional: created_at >= DateFrom
	DateTo      time.Time // optional: created_at <= DateTo
	Page        int       // 1-based
	Limit       int       // max rows per page (capped at 100 by service)
}

// LoadRepository defines persistence operations for loads.
type LoadRepository interface {
	Create(ctx context.Context, l *domain.Load) error
	FindByLoadNumber(ctx context.Context, loadNumber string) (*domain.Load, error)
	// FindIncompleteByThread returns the most recent incomplete load on the
	// given email thread, or domain.ErrLoadNotFound.
	FindIncompleteByThread(ctx context.Context, threadID string) (*domain.Load, error)
	// FindIncompleteByShipper is the fallback lookup when a reply carries no
	// usable thread reference.
	FindIncompleteByShipper(ctx context.Context, shipperEmail string) (*domain.Load, error)
	Update(ctx context.Context, l *domain.Load) error
	// List returns a page of loads matching filter and the total count.
	List(ctx context.Context, filter ListLoadsFilter) ([]*domain.Load, int64, error)
}
