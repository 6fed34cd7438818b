package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// Scoring bands. Total possible: 100 points.
// lane 0-30, equipment 0-25, performance 0-20, price 0-15, availability 0-10.
type carrierService struct {
	loads    ports.LoadRepository
	carriers ports.CarrierRepository
	log      zerolog.Logger
}

// NewCarrierService returns a CarrierMatcher implementation.
func NewCarrierService(loads ports.LoadRepository, carriers ports.CarrierRepository, log zerolog.Logger) ports.CarrierMatcher {
	return &carrierService{loads: loads, carriers: carriers, log: log}
}

// MatchCarriers ranks active carriers for the load, best fit first. Carriers
// scoring zero are dropped; hazmat loads only consider certified carriers.
func (s *carrierService) MatchCarriers(ctx context.Context, loadNumber string) ([]ports.CarrierScore, error) {
	load, err := s.loads.FindByLoadNumber(ctx, loadNumber)
	if err != nil {
		return nil, fmt.Errorf("match carriers: %w", err)
	}

	carriers, err := s.carriers.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("match carriers: %w", err)
	}

	scored := make([]ports.CarrierScore, 0, len(carriers))
	for _, carrier := range carriers {
		if load.FreightType == freight.FTLHazmat && !carrier.HazmatCertified {
			continue
		}
		score := scoreCarrier(carrier, load)
		if score.TotalScore > 0 {
			scored = append(scored, score)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	s.log.Info().
		Str("load_number", loadNumber).
		Int("candidates", len(carriers)).
		Int("matched", len(scored)).
		Msg("carriers matched")

	return scored, nil
}

func scoreCarrier(carrier *domain.Carrier, load *domain.Load) ports.CarrierScore {
	score := ports.CarrierScore{
		CarrierID:    carrier.ID,
		CarrierName:  carrier.Name,
		CarrierEmail: carrier.Email,
	}

	score.LaneScore = laneScore(carrier, load, &score.Notes)
	score.EquipmentScore = equipmentScore(carrier, load, &score.Notes)
	score.PerformanceScore = performanceScore(carrier, &score.Notes)
	score.PriceScore = priceScore(carrier, &score.Notes)
	score.AvailabilityScore = availabilityScore(carrier, &score.Notes)

	score.TotalScore = score.LaneScore + score.EquipmentScore +
		score.PerformanceScore + score.PriceScore + score.AvailabilityScore
	return score
}

// laneScore: exact lane 30, state lane 20, origin coverage 15, national 10.
func laneScore(carrier *domain.Carrier, load *domain.Load, notes *[]string) float64 {
	exactLane := load.Data.PickupZip + "-" + load.Data.DeliveryZip
	if load.Data.PickupZip != "" && containsString(carrier.PreferredLanes, exactLane) {
		*notes = append(*notes, "Exact lane match: "+exactLane)
		return 30
	}

	originState := strings.ToUpper(load.Data.PickupState)
	destState := strings.ToUpper(load.Data.DeliveryState)
	if originState != "" && destState != "" {
		stateLane := originState + "-" + destState
		for _, lane := range carrier.PreferredLanes {
			if strings.Contains(strings.ToUpper(lane), stateLane) {
				*notes = append(*notes, "State lane match: "+stateLane)
				return 20
			}
		}
	}

	if originState != "" && containsFold(carrier.CoverageAreas, originState) {
		*notes = append(*notes, "Services origin state: "+originState)
		return 15
	}
	if carrier.OperatingArea == "national" {
		*notes = append(*notes, "National carrier")
		return 10
	}

	*notes = append(*notes, "No specific lane coverage")
	return 0
}

// equipmentCompatibility maps a required equipment class to trailer types
// that can still move the load.
var equipmentCompatibility = map[string][]string{
	"van":      {"dry van", "van"},
	"reefer":   {"refrigerated", "reefer"},
	"flatbed":  {"flatbed", "stepdeck", "rgn"},
	"stepdeck": {"stepdeck", "flatbed"},
}

// equipmentScore: exact 25, compatible 15, multi-equipment fleet 10.
func equipmentScore(carrier *domain.Carrier, load *domain.Load, notes *[]string) float64 {
	required := strings.ToLower(strings.TrimSpace(load.Data.EquipmentType))
	if required == "" {
		required = "van"
	}

	fleet := make([]string, len(carrier.EquipmentTypes))
	for i, eq := range carrier.EquipmentTypes {
		fleet[i] = strings.ToLower(eq)
	}

	if containsString(fleet, required) {
		*notes = append(*notes, "Has required equipment: "+required)
		return 25
	}
	for _, compatible := range equipmentCompatibility[required] {
		if containsString(fleet, compatible) {
			*notes = append(*notes, "Has compatible equipment")
			return 15
		}
	}
	if len(fleet) > 3 {
		*notes = append(*notes, "Multi-equipment carrier")
		return 10
	}
	return 0
}

// performanceScore scales on-time percentage and claims history into 0-20.
func performanceScore(carrier *domain.Carrier, notes *[]string) float64 {
	score := carrier.OnTimePct / 100 * 15
	if carrier.ClaimsRatio < 0.01 {
		score += 5
		*notes = append(*notes, "Clean claims history")
	} else if carrier.ClaimsRatio < 0.05 {
		score += 2
	}
	if score > 20 {
		score = 20
	}
	return score
}

// priceScore favours carriers with competitive historical rates, 0-15.
func priceScore(carrier *domain.Carrier, notes *[]string) float64 {
	switch {
	case carrier.AvgRatePerMile == 0:
		return 7 // no history, neutral
	case carrier.AvgRatePerMile < 2.00:
		*notes = append(*notes, "Historically competitive rates")
		return 15
	case carrier.AvgRatePerMile < 2.50:
		return 10
	default:
		return 5
	}
}

// availabilityScore scales response rate into 0-10.
func availabilityScore(carrier *domain.Carrier, notes *[]string) float64 {
	score := carrier.ResponseRate / 100 * 10
	if score > 10 {
		score = 10
	}
	if score >= 9 {
		*notes = append(*notes, "Highly responsive")
	}
	return score
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
