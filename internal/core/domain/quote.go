package domain

import "time"

// QuoteStatus is the lifecycle state of a shipper quote.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteExpired  QuoteStatus = "expired"
)

// Quote is a priced offer to a shipper for a specific load. Amounts are USD.
type Quote struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	LoadID     string      `json:"load_id" bson:"load_id"`
	LoadNumber string      `json:"load_number" bson:"load_number"`
	Status     QuoteStatus `json:"status" bson:"status"`

	TotalMiles      int                `json:"total_miles" bson:"total_miles"`
	BaseRatePerMile float64            `json:"base_rate_per_mile" bson:"base_rate_per_mile"`
	LinehaulRate    float64            `json:"linehaul_rate" bson:"linehaul_rate"`
	FuelSurcharge   float64            `json:"fuel_surcharge" bson:"fuel_surcharge"`
	Accessorials    map[string]float64 `json:"accessorials,omitempty" bson:"accessorials,omitempty"`
	CarrierRate     float64            `json:"carrier_rate" bson:"carrier_rate"`
	RatePerMile     float64            `json:"rate_per_mile" bson:"rate_per_mile"`
	MarginPct       float64            `json:"margin_pct" bson:"margin_pct"`
	ShipperRate     float64            `json:"shipper_rate" bson:"shipper_rate"`

	MarketCondition string   `json:"market_condition" bson:"market_condition"`
	Confidence      float64  `json:"confidence" bson:"confidence"`
	Notes           []string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}
