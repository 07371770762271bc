package rating

import (
	"math"

	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// BillableWeight is the result of dimensional-weight calculation.
type BillableWeight struct {
	ActualKg     float64 `json:"actual_kg"`
	VolumetricKg float64 `json:"volumetric_kg"`
	BillableKg   float64 `json:"billable_kg"`
}

// ComputeBillableWeight derives the chargeable weight from actual weight,
// dimensions and quantity. Quantity is clamped to a minimum of 1 and negative
// or missing dimensions count as 0. The billable weight is the greater of
// actual and volumetric, rounded up to the next multiple of roundStepKg when
// roundStepKg > 0.
func ComputeBillableWeight(actualKgPerPiece float64, dims types.Dimensions, quantity int, volumetricDivisor, roundStepKg float64) BillableWeight {
	if quantity < 1 {
		quantity = 1
	}
	if actualKgPerPiece < 0 {
		actualKgPerPiece = 0
	}

	length := clampDim(dims.LengthCm)
	width := clampDim(dims.WidthCm)
	height := clampDim(dims.HeightCm)

	actual := actualKgPerPiece * float64(quantity)

	var volumetric float64
	if volumetricDivisor > 0 {
		volumetric = length * width * height * float64(quantity) / volumetricDivisor
	}

	billable := math.Max(actual, volumetric)
	if roundStepKg > 0 {
		billable = roundUpToStep(billable, roundStepKg)
	}

	return BillableWeight{
		ActualKg:     actual,
		VolumetricKg: volumetric,
		BillableKg:   billable,
	}
}

func clampDim(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// roundUpToStep rounds value up to the next multiple of step. The epsilon
// keeps exact multiples from being bumped a full step by float noise.
func roundUpToStep(value, step float64) float64 {
	steps := math.Ceil(value/step - 1e-9)
	if steps < 0 {
		steps = 0
	}
	return steps * step
}
