package quotes

import (
	"time"

	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// QuoteRequest is the pricing input. Weight and dimensions accept alternate
// units and are normalized to kilograms and centimeters before rating.
type QuoteRequest struct {
	Origin       types.Address   `json:"origin" validate:"required"`
	Destination  types.Address   `json:"destination" validate:"required"`
	Weight       WeightInput     `json:"weight" validate:"required"`
	Dimensions   DimensionsInput `json:"dimensions"`
	Quantity     int             `json:"quantity" validate:"omitempty,min=1"`
	ServiceLevel *string         `json:"service_level,omitempty" validate:"omitempty,oneof=economy standard express"`
	ShipDate     *time.Time      `json:"ship_date,omitempty"`
}

// WeightInput is a per-piece weight with an optional unit (kg default).
type WeightInput struct {
	Value float64 `json:"value" validate:"required,gt=0"`
	Unit  string  `json:"unit,omitempty" validate:"omitempty,oneof=kg g lb lbs"`
}

// DimensionsInput is the per-piece package size with an optional unit
// (cm default).
type DimensionsInput struct {
	Length float64 `json:"length" validate:"omitempty,gte=0"`
	Width  float64 `json:"width" validate:"omitempty,gte=0"`
	Height float64 `json:"height" validate:"omitempty,gte=0"`
	Unit   string  `json:"unit,omitempty" validate:"omitempty,oneof=cm mm m in"`
}
