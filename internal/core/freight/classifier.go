package freight

import "strings"

// reeferKeywords are commodity terms that imply temperature control even when
// no explicit temperature range was given.
var reeferKeywords = []string{
	"frozen", "refrigerated", "perishable", "chilled", "temp controlled",
	"temperature controlled", "reefer", "fresh produce", "ice cream", "dairy",
}

// flatbedKeywords identify open-deck equipment requests.
var flatbedKeywords = []string{
	"flatbed", "flat bed", "stepdeck", "step deck", "rgn", "lowboy",
	"open deck", "conestoga",
}

// dryVanKeywords identify standard enclosed trailer requests.
var dryVanKeywords = []string{"dry van", "van", "box trailer", "enclosed"}

// Classifier maps a raw load payload to a FreightType using attribute presence
// and the configured weight/dimension thresholds.
type Classifier struct {
	cfg Thresholds
}

// NewClassifier returns a Classifier using the given thresholds.
func NewClassifier(cfg Thresholds) *Classifier {
	return &Classifier{cfg: cfg}
}

// IdentifyFreightType classifies data with the default thresholds.
func IdentifyFreightType(data LoadData) FreightType {
	return NewClassifier(DefaultThresholds()).Identify(data)
}

// Identify resolves exactly one FreightType for any input. Rules are checked
// in priority order and the first match wins: hazmat paperwork beats a
// temperature range, which beats flatbed signals, which beat the weight bands.
// When nothing matches the result is Unknown, never an error.
func (c *Classifier) Identify(data LoadData) FreightType {
	if hasHazmatSignal(data) {
		return FTLHazmat
	}
	if hasReeferSignal(data) {
		return FTLReefer
	}
	if c.hasFlatbedSignal(data) {
		return FTLFlatbed
	}

	equipment := strings.ToLower(data.EquipmentType)
	weight := 0.0
	if data.WeightLb != nil {
		weight = *data.WeightLb
	}

	if weight > 0 && weight < c.cfg.LTLMaxWeightLb && data.PieceCount != nil {
		return LTL
	}
	if (weight >= c.cfg.LTLMaxWeightLb && weight < c.cfg.FTLMinWeightLb) ||
		strings.Contains(equipment, "partial") {
		return Partial
	}
	if containsAny(equipment, dryVanKeywords) || weight >= c.cfg.FTLMinWeightLb {
		return FTLDryVan
	}

	return Unknown
}

// hasHazmatSignal reports whether any hazmat-identifying field is populated.
// Any one of them is enough to force hazmat handling.
func hasHazmatSignal(data LoadData) bool {
	return strings.TrimSpace(data.HazmatClass) != "" ||
		strings.TrimSpace(data.UNNumber) != "" ||
		strings.TrimSpace(data.ProperShippingName) != ""
}

func hasReeferSignal(data LoadData) bool {
	if data.Temperature != nil {
		return true
	}
	commodity := strings.ToLower(data.Commodity)
	equipment := strings.ToLower(data.EquipmentType)
	return containsAny(commodity, reeferKeywords) || containsAny(equipment, reeferKeywords)
}

// hasFlatbedSignal matches explicit open-deck equipment or dimensions that
// exceed what fits inside an enclosed trailer.
func (c *Classifier) hasFlatbedSignal(data LoadData) bool {
	if containsAny(strings.ToLower(data.EquipmentType), flatbedKeywords) {
		return true
	}
	d := data.Dimensions
	if d == nil {
		return false
	}
	return d.LengthIn > c.cfg.MaxLengthIn ||
		d.WidthIn > c.cfg.MaxWidthIn ||
		d.HeightIn > c.cfg.MaxHeightIn
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
