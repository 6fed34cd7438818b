package ports

import (
	"context"

	"github.com/jake-esse/ai-broker/internal/core/domain"
)

// CarrierRepository defines persistence operations for carriers.
type CarrierRepository interface {
	FindActive(ctx context.Context) ([]*domain.Carrier, error)
	FindByID(ctx context.Context, id string) (*domain.Carrier, error)
}

// CarrierScore is one carrier's ranked fit for a load, with a per-factor
// breakdown so dispatchers can see why a carrier ranked where it did.
type CarrierScore struct {
	CarrierID         string
	CarrierName       string
	CarrierEmail      string
	TotalScore        float64
	LaneScore         float64
	EquipmentScore    float64
	PerformanceScore  float64
	PriceScore        float64
	AvailabilityScore float64
	Notes             []string
}

// CarrierMatcher ranks carriers for a load.
type CarrierMatcher interface {
	MatchCarriers(ctx context.Context, loadNumber string) ([]CarrierScore, error)
}
