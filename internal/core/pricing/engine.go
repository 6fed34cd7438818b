// Package pricing calculates carrier rates and shipper quotes for freight
// lanes: linehaul from mileage and market rate, fuel surcharge, accessorials,
// and broker margin, with a confidence score over the inputs.
package pricing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// MarketCondition reflects supply/demand on a lane for a pickup date.
type MarketCondition string

const (
	MarketTight    MarketCondition = "tight"
	MarketBalanced MarketCondition = "balanced"
	MarketLoose    MarketCondition = "loose"
)

// LaneRates is the per-mile rate band observed on a lane.
type LaneRates struct {
	Average float64
	Low     float64
	High    float64
}

// RateSource supplies historical lane rates, typically from recent quotes in
// the database. Implementations return ok=false when no history exists for
// the lane, in which case the engine falls back to equipment defaults.
type RateSource interface {
	LaneRates(ctx context.Context, originState, destState, equipment string) (LaneRates, bool, error)
}

// equipmentRate couples the display name with the base-rate multiplier the
// equipment commands over a dry van.
type equipmentRate struct {
	display    string
	multiplier float64
}

var equipmentRates = map[string]equipmentRate{
	"van":        {"Van", 1.0},
	"reefer":     {"Reefer", 1.25},
	"flatbed":    {"Flatbed", 1.15},
	"stepdeck":   {"Stepdeck", 1.20},
	"power only": {"Power Only", 0.85},
}

// defaultLaneRates are the per-mile fallbacks when no history exists.
var defaultLaneRates = map[string]LaneRates{
	"van":     {Average: 2.00, Low: 1.75, High: 2.50},
	"reefer":  {Average: 2.50, Low: 2.20, High: 3.00},
	"flatbed": {Average: 2.30, Low: 2.00, High: 2.80},
}

// Config holds the tunable pricing knobs.
type Config struct {
	TargetMargin float64 // broker margin applied on top of the carrier rate

	BaseFuelPrice    float64 // diesel baseline above which surcharge applies
	CurrentFuelPrice float64
	TruckMPG         float64

	HeavyLoadThresholdLb float64
	HeavyLoadCharge      float64

	FallbackMiles int // used when a lane is not in the distance matrix
	QuoteValidity time.Duration
}

// DefaultConfig returns the standard brokerage pricing parameters.
func DefaultConfig() Config {
	return Config{
		TargetMargin:         0.15,
		BaseFuelPrice:        3.00,
		CurrentFuelPrice:     4.00,
		TruckMPG:             6.0,
		HeavyLoadThresholdLb: 45_000,
		HeavyLoadCharge:      150.00,
		FallbackMiles:        500,
		QuoteValidity:        24 * time.Hour,
	}
}

// Input carries the load facts pricing needs.
type Input struct {
	OriginCity  string
	OriginState string
	DestCity    string
	DestState   string
	Equipment   string
	WeightLb    float64
	PickupDate  time.Time
}

// Result is a complete rate breakdown for one load.
type Result struct {
	TotalMiles      int
	BaseRatePerMile float64
	LinehaulRate    float64
	FuelSurcharge   float64
	Accessorials    map[string]float64
	CarrierRate     float64
	RatePerMile     float64
	MarginPct       float64
	ShipperRate     float64

	MarketAverage   float64
	MarketLow       float64
	MarketHigh      float64
	MarketCondition MarketCondition
	Confidence      float64
	Notes           []string
}

// Engine prices loads. Construct with NewEngine; a nil RateSource is allowed
// and simply skips the historical lookup.
type Engine struct {
	cfg   Config
	rates RateSource
}

func NewEngine(cfg Config, rates RateSource) *Engine {
	if cfg.TruckMPG <= 0 {
		cfg.TruckMPG = 6.0
	}
	if cfg.FallbackMiles <= 0 {
		cfg.FallbackMiles = 500
	}
	return &Engine{cfg: cfg, rates: rates}
}

// Price produces a full rate breakdown for in. It never fails: unknown lanes
// and equipment fall back to defaults, with the uncertainty reflected in the
// confidence score and notes.
func (e *Engine) Price(ctx context.Context, in Input) Result {
	res := Result{
		Accessorials: map[string]float64{},
		MarginPct:    e.cfg.TargetMargin * 100,
	}

	miles, knownLane := e.distance(in)
	res.TotalMiles = miles
	res.Notes = append(res.Notes, fmt.Sprintf("Calculated distance: %d miles", miles))

	lane, historical := e.laneRates(ctx, in)
	res.MarketAverage = lane.Average
	res.MarketLow = lane.Low
	res.MarketHigh = lane.High

	res.MarketCondition = AssessMarketCondition(in.PickupDate)
	baseRate := lane.Average
	switch res.MarketCondition {
	case MarketTight:
		baseRate *= 1.10
		res.Notes = append(res.Notes, "Applied 10% increase for tight market")
	case MarketLoose:
		baseRate *= 0.90
		res.Notes = append(res.Notes, "Applied 10% decrease for loose market")
	}

	eq, knownEquipment := lookupEquipment(in.Equipment)
	if knownEquipment {
		baseRate *= eq.multiplier
		if eq.multiplier != 1.0 {
			res.Notes = append(res.Notes, fmt.Sprintf("Applied %s equipment adjustment", eq.display))
		}
	}

	res.BaseRatePerMile = round2(baseRate)
	res.LinehaulRate = round2(baseRate * float64(miles))

	res.FuelSurcharge = e.fuelSurcharge(miles)
	if res.FuelSurcharge > 0 {
		res.Notes = append(res.Notes, fmt.Sprintf("Fuel surcharge: $%.2f", res.FuelSurcharge))
	}

	if in.WeightLb > e.cfg.HeavyLoadThresholdLb {
		res.Accessorials["Heavy Load"] = e.cfg.HeavyLoadCharge
		res.Notes = append(res.Notes, "Added heavy load charge")
	}

	carrierRate := res.LinehaulRate + res.FuelSurcharge
	for _, charge := range res.Accessorials {
		carrierRate += charge
	}
	res.CarrierRate = round2(carrierRate)
	if miles > 0 {
		res.RatePerMile = round2(carrierRate / float64(miles))
	}
	res.ShipperRate = round2(carrierRate * (1 + e.cfg.TargetMargin))

	res.Confidence = confidence(knownLane, historical, knownEquipment)
	res.Notes = append(res.Notes, fmt.Sprintf(
		"Quote: $%.2f ($%.2f/mile to carrier + %.0f%% margin)",
		res.ShipperRate, res.RatePerMile, e.cfg.TargetMargin*100))

	return res
}

// AssessMarketCondition infers lane tightness from the pickup weekday:
// Monday and Friday run tight, weekends loose.
func AssessMarketCondition(pickup time.Time) MarketCondition {
	if pickup.IsZero() {
		return MarketBalanced
	}
	switch pickup.Weekday() {
	case time.Monday, time.Friday:
		return MarketTight
	case time.Saturday, time.Sunday:
		return MarketLoose
	default:
		return MarketBalanced
	}
}

// distanceMatrix covers the brokerage's common lanes; everything else uses the
// configured fallback. TODO: replace with a routing API client once the
// PC*Miler account is provisioned.
var distanceMatrix = map[[2]string]int{
	{"Dallas, TX", "Houston, TX"}:       240,
	{"Dallas, TX", "Miami, FL"}:         1300,
	{"Los Angeles, CA", "Phoenix, AZ"}:  370,
	{"Chicago, IL", "Atlanta, GA"}:      720,
	{"New York, NY", "Los Angeles, CA"}: 2800,
	{"Chicago, IL", "New York, NY"}:     790,
}

func (e *Engine) distance(in Input) (int, bool) {
	origin := fmt.Sprintf("%s, %s", in.OriginCity, in.OriginState)
	dest := fmt.Sprintf("%s, %s", in.DestCity, in.DestState)
	if miles, ok := distanceMatrix[[2]string{origin, dest}]; ok {
		return miles, true
	}
	if miles, ok := distanceMatrix[[2]string{dest, origin}]; ok {
		return miles, true
	}
	return e.cfg.FallbackMiles, false
}

func (e *Engine) laneRates(ctx context.Context, in Input) (LaneRates, bool) {
	if e.rates != nil {
		lane, ok, err := e.rates.LaneRates(ctx, in.OriginState, in.DestState, in.Equipment)
		if err == nil && ok {
			return lane, true
		}
	}
	key := normalizeEquipment(in.Equipment)
	if lane, ok := defaultLaneRates[key]; ok {
		return lane, false
	}
	return defaultLaneRates["van"], false
}

// fuelSurcharge compensates for diesel above the baseline:
// (current - base) / MPG * miles.
func (e *Engine) fuelSurcharge(miles int) float64 {
	if e.cfg.CurrentFuelPrice <= e.cfg.BaseFuelPrice {
		return 0
	}
	gallons := float64(miles) / e.cfg.TruckMPG
	return round2((e.cfg.CurrentFuelPrice - e.cfg.BaseFuelPrice) * gallons)
}

func confidence(knownLane, historicalRates, knownEquipment bool) float64 {
	factors := []float64{0.5, 0.7, 0.8}
	if knownLane {
		factors[0] = 0.9
	}
	if historicalRates {
		factors[1] = 0.95
	}
	if knownEquipment {
		factors[2] = 0.95
	}
	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	return sum / float64(len(factors))
}

func lookupEquipment(equipment string) (equipmentRate, bool) {
	eq, ok := equipmentRates[normalizeEquipment(equipment)]
	return eq, ok
}

// normalizeEquipment maps free-text equipment strings onto rate table keys.
func normalizeEquipment(equipment string) string {
	s := strings.ToLower(strings.TrimSpace(equipment))
	switch {
	case strings.Contains(s, "reefer"), strings.Contains(s, "refrigerated"):
		return "reefer"
	case strings.Contains(s, "step"):
		return "stepdeck"
	case strings.Contains(s, "flat"):
		return "flatbed"
	case strings.Contains(s, "power"):
		return "power only"
	case strings.Contains(s, "van"), s == "":
		return "van"
	default:
		return s
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
