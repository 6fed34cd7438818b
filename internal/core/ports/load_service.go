package ports

import (
	"context"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
)

// CreateLoadInput carries a load tender submitted through the dashboard.
type CreateLoadInput struct {
	ShipperEmail string
	ThreadID     string
	Data         freight.LoadData
}

// LoadResult is returned after intake of a load.
type LoadResult struct {
	LoadID        string
	LoadNumber    string
	Status        string
	FreightType   freight.FreightType
	IsComplete    bool
	MissingFields []string
	Warnings      []string
}

// GetLoadInput carries the parameters to retrieve a single load.
type GetLoadInput struct {
	LoadNumber string
	// Role and BrokerID enforce RBAC: the broker role only sees own loads.
	Role     string
	BrokerID string
}

// ListLoadsInput carries all parameters for the list endpoint.
type ListLoadsInput struct {
	Role        string
	BrokerID    string
	Status      string
	FreightType string
	Search      string
	DateFrom    string
	DateTo      string
	Page        int
	Limit       int
}

// ListLoadsResult is returned by ListLoads.
type ListLoadsResult struct {
	Items      []*domain.Load
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// LoadService defines dashboard use-case operations for loads.
type LoadService interface {
	CreateLoad(ctx context.Context, input CreateLoadInput) (*LoadResult, error)
	GetLoad(ctx context.Context, input GetLoadInput) (*domain.Load, error)
	ListLoads(ctx context.Context, input ListLoadsInput) (*ListLoadsResult, error)
}
