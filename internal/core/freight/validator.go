package freight

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical field names used in validation output. These are the keys the
// clarification workflow maps to display names when emailing a shipper.
const (
	FieldPickupLocation     = "pickup_location"
	FieldDeliveryLocation   = "delivery_location"
	FieldWeight             = "weight"
	FieldCommodity          = "commodity"
	FieldPickupDate         = "pickup_date"
	FieldTemperature        = "temperature"
	FieldDimensions         = "dimensions"
	FieldPieceCount         = "piece_count"
	FieldFreightClass       = "freight_class"
	FieldHazmatClass        = "hazmat_class"
	FieldUNNumber           = "un_number"
	FieldProperShippingName = "proper_shipping_name"
	FieldPackingGroup       = "packing_group"
	FieldEmergencyContact   = "emergency_contact"
)

// commonFields are required for every freight type, in canonical order.
var commonFields = []string{
	FieldPickupLocation,
	FieldDeliveryLocation,
	FieldWeight,
	FieldCommodity,
	FieldPickupDate,
}

// extraFields are the type-specific requirements appended after the common
// fields. PARTIAL is handled separately because it needs only one of
// dimensions / piece_count.
var extraFields = map[FreightType][]string{
	FTLDryVan:  {},
	FTLReefer:  {FieldTemperature},
	FTLFlatbed: {FieldDimensions},
	FTLHazmat: {
		FieldHazmatClass,
		FieldUNNumber,
		FieldProperShippingName,
		FieldPackingGroup,
		FieldEmergencyContact,
	},
	LTL: {FieldDimensions, FieldPieceCount, FieldFreightClass},
}

// ValidationResult reports which required fields are still missing before a
// load can be quoted. Warnings are advisory and never affect IsValid.
type ValidationResult struct {
	IsValid       bool     `json:"is_valid"`
	MissingFields []string `json:"missing_fields"`
	Warnings      []string `json:"warnings"`
}

// Validator checks field completeness per freight type. Like the classifier it
// is pure: malformed or absent fields count as missing, never as errors.
type Validator struct {
	cfg Thresholds
}

// NewValidator returns a Validator using the given thresholds.
func NewValidator(cfg Thresholds) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateRequiredFields validates data against freightType using the default
// thresholds.
func ValidateRequiredFields(data LoadData, freightType FreightType) ValidationResult {
	return NewValidator(DefaultThresholds()).Validate(data, freightType)
}

// Validate returns the ordered list of required fields absent from data for
// the given freight type, plus any non-blocking warnings. IsValid is true iff
// MissingFields is empty. Unknown freight types get only the common-field
// check, since nothing more specific can be required yet.
func (v *Validator) Validate(data LoadData, freightType FreightType) ValidationResult {
	var missing []string
	for _, field := range commonFields {
		if !v.fieldPresent(data, field) {
			missing = append(missing, field)
		}
	}
	for _, field := range extraFields[freightType] {
		if !v.fieldPresent(data, field) {
			missing = append(missing, field)
		}
	}
	if freightType == Partial {
		// Partial loads need dimensions or a piece count, either one. When
		// both are absent we list both so the shipper can answer with
		// whichever they have.
		if !v.fieldPresent(data, FieldDimensions) && !v.fieldPresent(data, FieldPieceCount) {
			missing = append(missing, FieldDimensions, FieldPieceCount)
		}
	}

	return ValidationResult{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
		Warnings:      v.warnings(data, freightType),
	}
}

// fieldPresent reports whether a canonical field carries a usable value.
// Composite fields are present only when their required sub-keys are set.
func (v *Validator) fieldPresent(data LoadData, field string) bool {
	switch field {
	case FieldPickupLocation:
		return present(data.PickupLocation) || (present(data.PickupCity) && present(data.PickupState))
	case FieldDeliveryLocation:
		return present(data.DeliveryLocation) || (present(data.DeliveryCity) && present(data.DeliveryState))
	case FieldWeight:
		return data.WeightLb != nil && *data.WeightLb > 0
	case FieldCommodity:
		return present(data.Commodity)
	case FieldPickupDate:
		return present(data.PickupDate)
	case FieldTemperature:
		return data.Temperature != nil && data.Temperature.Min != nil && data.Temperature.Max != nil
	case FieldDimensions:
		d := data.Dimensions
		return d != nil && d.LengthIn > 0 && d.WidthIn > 0 && d.HeightIn > 0
	case FieldPieceCount:
		return data.PieceCount != nil && *data.PieceCount > 0
	case FieldFreightClass:
		return present(data.FreightClass)
	case FieldHazmatClass:
		return present(data.HazmatClass)
	case FieldUNNumber:
		return present(data.UNNumber)
	case FieldProperShippingName:
		return present(data.ProperShippingName)
	case FieldPackingGroup:
		return present(data.PackingGroup)
	case FieldEmergencyContact:
		return present(data.EmergencyContact)
	default:
		return false
	}
}

func (v *Validator) warnings(data LoadData, freightType FreightType) []string {
	var warnings []string

	if freightType == FTLFlatbed && data.Dimensions != nil {
		d := data.Dimensions
		if d.LengthIn > v.cfg.MaxLengthIn || d.WidthIn > v.cfg.MaxWidthIn || d.HeightIn > v.cfg.MaxHeightIn {
			warnings = append(warnings, "Note: This load is oversize and will require permits")
		}
	}

	if freightType == LTL && present(data.FreightClass) {
		class, err := strconv.ParseFloat(strings.TrimSpace(data.FreightClass), 64)
		if err != nil || class < v.cfg.FreightClassMin || class > v.cfg.FreightClassMax {
			warnings = append(warnings, fmt.Sprintf("Freight class must be between %g and %g",
				v.cfg.FreightClassMin, v.cfg.FreightClassMax))
		}
	}

	return warnings
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
