package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
)

type stubCarrierRepo struct {
	active  []*domain.Carrier
	findErr error
}

func (r *stubCarrierRepo) FindActive(_ context.Context) ([]*domain.Carrier, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.active, nil
}

func (r *stubCarrierRepo) FindByID(_ context.Context, id string) (*domain.Carrier, error) {
	for _, c := range r.active {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCarrierNotFound
}

func seededCarrierLoad(freightType freight.FreightType) *stubLoadRepo {
	loads := newStubLoadRepo()
	loads.seed(&domain.Load{
		ID:          "load-c1",
		LoadNumber:  "LD-0000CAFE",
		Status:      domain.StatusReadyToQuote,
		FreightType: freightType,
		IsComplete:  true,
		Data: freight.LoadData{
			PickupCity:    "Dallas",
			PickupState:   "TX",
			DeliveryCity:  "Houston",
			DeliveryState: "TX",
			EquipmentType: "van",
		},
	})
	return loads
}

func TestCarrierService_RanksByTotalScore(t *testing.T) {
	loads := seededCarrierLoad(freight.FTLDryVan)
	carriers := &stubCarrierRepo{active: []*domain.Carrier{
		{
			ID: "c-lane", Name: "Lane Specialist",
			EquipmentTypes: []string{"van"},
			PreferredLanes: []string{"TX-TX"},
			OnTimePct:      97, ClaimsRatio: 0.005, ResponseRate: 95, AvgRatePerMile: 1.90,
		},
		{
			ID: "c-national", Name: "Big National",
			EquipmentTypes: []string{"van", "reefer", "flatbed", "stepdeck"},
			OperatingArea:  "national",
			OnTimePct:      90, ClaimsRatio: 0.03, ResponseRate: 70, AvgRatePerMile: 2.40,
		},
		{
			ID: "c-nofit", Name: "Tanker Only",
			EquipmentTypes: []string{"tanker"},
			OnTimePct:      0, ResponseRate: 0,
		},
	}}

	svc := NewCarrierService(loads, carriers, zerolog.Nop())

	scores, err := svc.MatchCarriers(context.Background(), "LD-0000CAFE")
	if err != nil {
		t.Fatalf("MatchCarriers returned error: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 ranked carriers, got %d", len(scores))
	}
	if scores[0].CarrierID != "c-lane" || scores[2].CarrierID != "c-nofit" {
		t.Fatalf("unexpected ranking: %s, %s, %s", scores[0].CarrierID, scores[1].CarrierID, scores[2].CarrierID)
	}
	if scores[0].TotalScore <= scores[1].TotalScore || scores[1].TotalScore <= scores[2].TotalScore {
		t.Fatalf("ranking not descending: %.1f, %.1f, %.1f", scores[0].TotalScore, scores[1].TotalScore, scores[2].TotalScore)
	}

	// Lane specialist: state lane 20 + exact equipment 25 + performance
	// (0.97*15+5=19.55) + price 15 + availability 9.5 = 89.05.
	if got := scores[0].TotalScore; got < 89 || got > 89.1 {
		t.Fatalf("unexpected top score %.2f", got)
	}
	if scores[0].LaneScore != 20 || scores[0].EquipmentScore != 25 || scores[0].PriceScore != 15 {
		t.Fatalf("unexpected breakdown: %+v", scores[0])
	}
}

func TestCarrierService_HazmatRequiresCertification(t *testing.T) {
	loads := seededCarrierLoad(freight.FTLHazmat)
	carriers := &stubCarrierRepo{active: []*domain.Carrier{
		{
			ID: "c-plain", Name: "No Hazmat",
			EquipmentTypes: []string{"van"}, OperatingArea: "national",
			OnTimePct: 95, ResponseRate: 90,
		},
		{
			ID: "c-certified", Name: "Hazmat Certified",
			EquipmentTypes: []string{"van"}, OperatingArea: "national",
			HazmatCertified: true,
			OnTimePct:       95, ResponseRate: 90,
		},
	}}

	svc := NewCarrierService(loads, carriers, zerolog.Nop())

	scores, err := svc.MatchCarriers(context.Background(), "LD-0000CAFE")
	if err != nil {
		t.Fatalf("MatchCarriers returned error: %v", err)
	}
	if len(scores) != 1 || scores[0].CarrierID != "c-certified" {
		t.Fatalf("expected only the certified carrier, got %+v", scores)
	}
}

func TestCarrierService_CompatibleEquipment(t *testing.T) {
	loads := newStubLoadRepo()
	loads.seed(&domain.Load{
		ID:          "load-c2",
		LoadNumber:  "LD-0000FEED",
		Status:      domain.StatusReadyToQuote,
		FreightType: freight.FTLFlatbed,
		Data: freight.LoadData{
			PickupState:   "TX",
			DeliveryState: "OK",
			EquipmentType: "flatbed",
		},
	})
	carriers := &stubCarrierRepo{active: []*domain.Carrier{{
		ID: "c-step", Name: "Stepdeck Fleet",
		EquipmentTypes: []string{"stepdeck"},
		OperatingArea:  "national",
		OnTimePct:      90, ResponseRate: 80,
	}}}

	svc := NewCarrierService(loads, carriers, zerolog.Nop())

	scores, err := svc.MatchCarriers(context.Background(), "LD-0000FEED")
	if err != nil {
		t.Fatalf("MatchCarriers returned error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 carrier, got %d", len(scores))
	}
	if scores[0].EquipmentScore != 15 {
		t.Fatalf("expected compatible-equipment score 15, got %.0f", scores[0].EquipmentScore)
	}
}

func TestCarrierService_LoadNotFound(t *testing.T) {
	svc := NewCarrierService(newStubLoadRepo(), &stubCarrierRepo{}, zerolog.Nop())

	if _, err := svc.MatchCarriers(context.Background(), "LD-MISSING"); !errors.Is(err, domain.ErrLoadNotFound) {
		t.Fatalf("expected ErrLoadNotFound, got %v", err)
	}
}
