package freight

import "strings"

// fieldDisplayNames maps canonical field keys to the labels used in shipper
// facing emails and the dashboard.
var fieldDisplayNames = map[string]string{
	FieldPickupLocation:     "Pickup Location",
	FieldDeliveryLocation:   "Delivery Location",
	FieldWeight:             "Weight (lbs)",
	FieldCommodity:          "Commodity",
	FieldPickupDate:         "Pickup Date",
	FieldTemperature:        "Temperature Requirements",
	FieldDimensions:         "Dimensions (L x W x H)",
	FieldPieceCount:         "Piece Count",
	FieldFreightClass:       "Freight Class",
	FieldHazmatClass:        "Hazmat Class",
	FieldUNNumber:           "UN Number",
	FieldProperShippingName: "Proper Shipping Name",
	FieldPackingGroup:       "Packing Group",
	FieldEmergencyContact:   "24-Hour Emergency Contact",
}

// FieldDisplayName returns the human label for a canonical field key,
// title-casing unmapped keys so new fields degrade gracefully.
func FieldDisplayName(field string) string {
	if name, ok := fieldDisplayNames[field]; ok {
		return name
	}
	words := strings.Split(strings.ReplaceAll(field, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
