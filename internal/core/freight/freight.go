// Package freight implements freight-type classification and required-field
// validation for inbound load tenders.
//
// All operations are pure functions over their input: no I/O, no state, safe
// to call from any number of goroutines.
package freight

// FreightType is the closed set of freight classifications a load can resolve to.
type FreightType string

const (
	FTLDryVan  FreightType = "FTL_DRY_VAN"
	FTLReefer  FreightType = "FTL_REEFER"
	FTLFlatbed FreightType = "FTL_FLATBED"
	FTLHazmat  FreightType = "FTL_HAZMAT"
	LTL        FreightType = "LTL"
	Partial    FreightType = "PARTIAL"
	Unknown    FreightType = "UNKNOWN"
)

// Dimensions is the physical size of a load in inches.
// A zero sub-value means that sub-field was not provided.
type Dimensions struct {
	LengthIn float64 `json:"length_in" bson:"length_in"`
	WidthIn  float64 `json:"width_in" bson:"width_in"`
	HeightIn float64 `json:"height_in" bson:"height_in"`
}

// TemperatureRange is a required temperature band for reefer freight.
// Min and Max are pointers because 0 degrees is a legitimate setpoint.
type TemperatureRange struct {
	Min  *float64 `json:"min" bson:"min"`
	Max  *float64 `json:"max" bson:"max"`
	Unit string   `json:"unit,omitempty" bson:"unit,omitempty"`
}

// LoadData is the open record of optional freight attributes extracted from a
// load tender. Every field may be absent; presence drives both classification
// and validation. It carries no identity of its own; callers persist whatever
// they derive from it.
type LoadData struct {
	PickupLocation   string `json:"pickup_location,omitempty" bson:"pickup_location,omitempty"`
	DeliveryLocation string `json:"delivery_location,omitempty" bson:"delivery_location,omitempty"`

	PickupCity    string `json:"pickup_city,omitempty" bson:"pickup_city,omitempty"`
	PickupState   string `json:"pickup_state,omitempty" bson:"pickup_state,omitempty"`
	PickupZip     string `json:"pickup_zip,omitempty" bson:"pickup_zip,omitempty"`
	DeliveryCity  string `json:"delivery_city,omitempty" bson:"delivery_city,omitempty"`
	DeliveryState string `json:"delivery_state,omitempty" bson:"delivery_state,omitempty"`
	DeliveryZip   string `json:"delivery_zip,omitempty" bson:"delivery_zip,omitempty"`

	// WeightLb is the load weight in pounds; nil when not provided.
	WeightLb      *float64 `json:"weight_lb,omitempty" bson:"weight_lb,omitempty"`
	EquipmentType string   `json:"equipment_type,omitempty" bson:"equipment_type,omitempty"`
	Commodity     string   `json:"commodity,omitempty" bson:"commodity,omitempty"`
	PickupDate    string   `json:"pickup_date,omitempty" bson:"pickup_date,omitempty"`
	DeliveryDate  string   `json:"delivery_date,omitempty" bson:"delivery_date,omitempty"`

	Dimensions  *Dimensions       `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	Temperature *TemperatureRange `json:"temperature,omitempty" bson:"temperature,omitempty"`

	HazmatClass        string `json:"hazmat_class,omitempty" bson:"hazmat_class,omitempty"`
	UNNumber           string `json:"un_number,omitempty" bson:"un_number,omitempty"`
	ProperShippingName string `json:"proper_shipping_name,omitempty" bson:"proper_shipping_name,omitempty"`
	PackingGroup       string `json:"packing_group,omitempty" bson:"packing_group,omitempty"`
	EmergencyContact   string `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`

	// FreightClass is the LTL classification code (50-500), kept as a string
	// because shippers write things like "77.5".
	FreightClass string `json:"freight_class,omitempty" bson:"freight_class,omitempty"`
	PieceCount   *int   `json:"piece_count,omitempty" bson:"piece_count,omitempty"`
}

// Thresholds holds every tunable boundary used by the classifier and
// validator, so tests and deployments can adjust them without code changes.
type Thresholds struct {
	// LTLMaxWeightLb is the weight below which a load with a piece count is LTL.
	LTLMaxWeightLb float64
	// FTLMinWeightLb is the weight at or above which a load fills a trailer.
	// Weights between LTLMaxWeightLb and FTLMinWeightLb are partial loads.
	FTLMinWeightLb float64

	// Legal dimensions of a standard 53' trailer. Anything beyond these needs
	// oversize permits.
	MaxLengthIn float64
	MaxWidthIn  float64
	MaxHeightIn float64

	// Valid NMFC freight class range for LTL.
	FreightClassMin float64
	FreightClassMax float64
}

// DefaultThresholds returns the standard industry boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LTLMaxWeightLb:  10_000,
		FTLMinWeightLb:  20_000,
		MaxLengthIn:     636,
		MaxWidthIn:      102,
		MaxHeightIn:     110,
		FreightClassMin: 50,
		FreightClassMax: 500,
	}
}

// freightTypeDescriptions holds the one-sentence UI copy per freight type.
var freightTypeDescriptions = map[FreightType]string{
	FTLDryVan:  "Full truckload in a standard enclosed dry van trailer.",
	FTLReefer:  "Full truckload requiring temperature-controlled (refrigerated) equipment.",
	FTLFlatbed: "Full truckload on an open-deck flatbed trailer, often oversize freight.",
	FTLHazmat:  "Full truckload of regulated hazardous materials requiring placards and documentation.",
	LTL:        "Less-than-truckload shipment sharing trailer space with other freight.",
	Partial:    "Partial truckload, larger than LTL but not filling an entire trailer.",
	Unknown:    "Freight type could not be determined from the provided details.",
}

// Description returns the human-readable description for t, falling back to
// the UNKNOWN copy for unrecognised values.
func (t FreightType) Description() string {
	if d, ok := freightTypeDescriptions[t]; ok {
		return d
	}
	return freightTypeDescriptions[Unknown]
}
