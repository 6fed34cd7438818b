package freight

import "testing"

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestIdentifyFreightType_Priority(t *testing.T) {
	tests := []struct {
		name string
		data LoadData
		want FreightType
	}{
		{
			name: "hazmat class alone forces hazmat",
			data: LoadData{HazmatClass: "3"},
			want: FTLHazmat,
		},
		{
			name: "un number alone forces hazmat",
			data: LoadData{UNNumber: "UN1203"},
			want: FTLHazmat,
		},
		{
			name: "proper shipping name alone forces hazmat",
			data: LoadData{ProperShippingName: "Gasoline"},
			want: FTLHazmat,
		},
		{
			name: "hazmat beats temperature and weight",
			data: LoadData{
				HazmatClass: "8",
				Temperature: &TemperatureRange{Min: floatPtr(-10), Max: floatPtr(0)},
				WeightLb:    floatPtr(5_000),
				PieceCount:  intPtr(4),
			},
			want: FTLHazmat,
		},
		{
			name: "temperature range means reefer",
			data: LoadData{
				WeightLb:    floatPtr(40_000),
				Commodity:   "frozen seafood",
				Temperature: &TemperatureRange{Min: floatPtr(-10), Max: floatPtr(0), Unit: "F"},
			},
			want: FTLReefer,
		},
		{
			name: "commodity keyword means reefer without explicit temperature",
			data: LoadData{Commodity: "perishable produce", WeightLb: floatPtr(42_000)},
			want: FTLReefer,
		},
		{
			name: "reefer beats flatbed equipment",
			data: LoadData{EquipmentType: "flatbed", Commodity: "refrigerated meat"},
			want: FTLReefer,
		},
		{
			name: "flatbed equipment",
			data: LoadData{EquipmentType: "48' Flatbed", WeightLb: floatPtr(44_000)},
			want: FTLFlatbed,
		},
		{
			name: "stepdeck counts as flatbed",
			data: LoadData{EquipmentType: "step deck"},
			want: FTLFlatbed,
		},
		{
			name: "oversize dimensions imply flatbed",
			data: LoadData{
				WeightLb:   floatPtr(30_000),
				Dimensions: &Dimensions{LengthIn: 700, WidthIn: 96, HeightIn: 100},
			},
			want: FTLFlatbed,
		},
		{
			name: "light load with piece count is LTL",
			data: LoadData{WeightLb: floatPtr(4_500), PieceCount: intPtr(6)},
			want: LTL,
		},
		{
			name: "light load without piece count falls through",
			data: LoadData{WeightLb: floatPtr(4_500)},
			want: Unknown,
		},
		{
			name: "mid-band weight is partial",
			data: LoadData{WeightLb: floatPtr(15_000)},
			want: Partial,
		},
		{
			name: "partial equipment keyword",
			data: LoadData{EquipmentType: "partial"},
			want: Partial,
		},
		{
			name: "dry van equipment",
			data: LoadData{
				PickupLocation:   "Chicago, IL",
				DeliveryLocation: "New York, NY",
				WeightLb:         floatPtr(35_000),
				EquipmentType:    "dry van",
			},
			want: FTLDryVan,
		},
		{
			name: "full truckload weight defaults to dry van",
			data: LoadData{WeightLb: floatPtr(25_000)},
			want: FTLDryVan,
		},
		{
			name: "empty payload is unknown",
			data: LoadData{},
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdentifyFreightType(tt.data); got != tt.want {
				t.Errorf("IdentifyFreightType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIdentifyFreightType_Deterministic(t *testing.T) {
	data := LoadData{
		WeightLb:      floatPtr(15_000),
		EquipmentType: "dry van",
		Commodity:     "paper goods",
	}
	first := IdentifyFreightType(data)
	for i := 0; i < 10; i++ {
		if got := IdentifyFreightType(data); got != first {
			t.Fatalf("classification not deterministic: %s then %s", first, got)
		}
	}
}

func TestClassifier_CustomThresholds(t *testing.T) {
	cfg := DefaultThresholds()
	cfg.LTLMaxWeightLb = 5_000
	cfg.FTLMinWeightLb = 30_000
	c := NewClassifier(cfg)

	// 8,000 lb with pieces would be LTL under defaults; with the lowered
	// ceiling it lands in the partial band instead.
	got := c.Identify(LoadData{WeightLb: floatPtr(8_000), PieceCount: intPtr(3)})
	if got != Partial {
		t.Errorf("Identify() = %s, want %s", got, Partial)
	}

	if got := c.Identify(LoadData{WeightLb: floatPtr(25_000)}); got != Partial {
		t.Errorf("Identify() = %s, want %s with raised FTL floor", got, Partial)
	}
}

func TestFreightType_Description(t *testing.T) {
	for _, ft := range []FreightType{FTLDryVan, FTLReefer, FTLFlatbed, FTLHazmat, LTL, Partial, Unknown} {
		if ft.Description() == "" {
			t.Errorf("no description for %s", ft)
		}
	}
	if FreightType("bogus").Description() != Unknown.Description() {
		t.Error("unrecognised type should fall back to the UNKNOWN description")
	}
}
