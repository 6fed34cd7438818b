package freight

// Merge copies into dst every field of src that dst does not already have,
// returning the canonical names of the fields it filled. Existing values are
// never overwritten: a shipper's follow-up only supplies what was missing, it
// does not amend what was already confirmed.
func Merge(dst *LoadData, src LoadData) []string {
	var filled []string
	mark := func(field string) { filled = append(filled, field) }

	if dst.PickupLocation == "" && src.PickupLocation != "" {
		dst.PickupLocation = src.PickupLocation
		mark(FieldPickupLocation)
	}
	if dst.DeliveryLocation == "" && src.DeliveryLocation != "" {
		dst.DeliveryLocation = src.DeliveryLocation
		mark(FieldDeliveryLocation)
	}

	// City/state/zip breakdowns ride along with their location field.
	fillString(&dst.PickupCity, src.PickupCity)
	fillString(&dst.PickupState, src.PickupState)
	fillString(&dst.PickupZip, src.PickupZip)
	fillString(&dst.DeliveryCity, src.DeliveryCity)
	fillString(&dst.DeliveryState, src.DeliveryState)
	fillString(&dst.DeliveryZip, src.DeliveryZip)

	if dst.WeightLb == nil && src.WeightLb != nil {
		w := *src.WeightLb
		dst.WeightLb = &w
		mark(FieldWeight)
	}
	if dst.EquipmentType == "" && src.EquipmentType != "" {
		dst.EquipmentType = src.EquipmentType
		mark("equipment_type")
	}
	if dst.Commodity == "" && src.Commodity != "" {
		dst.Commodity = src.Commodity
		mark(FieldCommodity)
	}
	if dst.PickupDate == "" && src.PickupDate != "" {
		dst.PickupDate = src.PickupDate
		mark(FieldPickupDate)
	}
	fillString(&dst.DeliveryDate, src.DeliveryDate)

	if dst.Dimensions == nil && src.Dimensions != nil {
		d := *src.Dimensions
		dst.Dimensions = &d
		mark(FieldDimensions)
	}
	if dst.Temperature == nil && src.Temperature != nil {
		t := *src.Temperature
		dst.Temperature = &t
		mark(FieldTemperature)
	}

	if dst.HazmatClass == "" && src.HazmatClass != "" {
		dst.HazmatClass = src.HazmatClass
		mark(FieldHazmatClass)
	}
	if dst.UNNumber == "" && src.UNNumber != "" {
		dst.UNNumber = src.UNNumber
		mark(FieldUNNumber)
	}
	if dst.ProperShippingName == "" && src.ProperShippingName != "" {
		dst.ProperShippingName = src.ProperShippingName
		mark(FieldProperShippingName)
	}
	if dst.PackingGroup == "" && src.PackingGroup != "" {
		dst.PackingGroup = src.PackingGroup
		mark(FieldPackingGroup)
	}
	if dst.EmergencyContact == "" && src.EmergencyContact != "" {
		dst.EmergencyContact = src.EmergencyContact
		mark(FieldEmergencyContact)
	}

	if dst.FreightClass == "" && src.FreightClass != "" {
		dst.FreightClass = src.FreightClass
		mark(FieldFreightClass)
	}
	if dst.PieceCount == nil && src.PieceCount != nil {
		n := *src.PieceCount
		dst.PieceCount = &n
		mark(FieldPieceCount)
	}

	return filled
}

func fillString(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
