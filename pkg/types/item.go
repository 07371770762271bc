package types

// Dimensions are per-piece package dimensions in centimeters.
type Dimensions struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

// ItemSummary snapshots what is being shipped, frozen at booking time.
type ItemSummary struct {
	Description string     `json:"description,omitempty"`
	Quantity    int        `json:"quantity"`
	WeightKg    float64    `json:"weight_kg"`
	Dimensions  Dimensions `json:"dimensions"`
}
