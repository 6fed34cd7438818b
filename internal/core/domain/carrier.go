package domain

import "time"

// Carrier is a trucking company we can tender loads to.
type Carrier struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Status string `json:"status" bson:"status"` // active, suspended

	// EquipmentTypes lists trailer types the carrier runs (lowercase).
	EquipmentTypes []string `json:"equipment_types" bson:"equipment_types"`
	// PreferredLanes are "origin-dest" pairs, either zip-zip or state-state.
	PreferredLanes []string `json:"preferred_lanes,omitempty" bson:"preferred_lanes,omitempty"`
	// CoverageAreas are state codes the carrier services.
	CoverageAreas []string `json:"coverage_areas,omitempty" bson:"coverage_areas,omitempty"`
	OperatingArea string   `json:"operating_area,omitempty" bson:"operating_area,omitempty"` // regional, national

	HazmatCertified bool    `json:"hazmat_certified" bson:"hazmat_certified"`
	OnTimePct       float64 `json:"on_time_pct" bson:"on_time_pct"`
	ClaimsRatio     float64 `json:"claims_ratio" bson:"claims_ratio"`
	ResponseRate    float64 `json:"response_rate" bson:"response_rate"`
	AvgRatePerMile  float64 `json:"avg_rate_per_mile,omitempty" bson:"avg_rate_per_mile,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
