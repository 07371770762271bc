package quotes

import (
	"strings"

	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

const (
	kgPerPound      = 0.45359237
	cmPerInch       = 2.54
	cmPerMeter      = 100
	cmPerMillimeter = 0.1
)

// normalizeWeightKg converts a weight value to kilograms. An empty unit means
// the value is already in kilograms.
func normalizeWeightKg(value float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "kg":
		return value, nil
	case "g":
		return value / 1000, nil
	case "lb", "lbs":
		return value * kgPerPound, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unsupported weight unit").
			WithDetails(map[string]any{"unit": unit})
	}
}

// Centimeters converts the input to centimeter dimensions. An empty unit
// means the values are already in centimeters.
func (input DimensionsInput) Centimeters() (types.Dimensions, error) {
	var factor float64
	switch strings.ToLower(strings.TrimSpace(input.Unit)) {
	case "", "cm":
		factor = 1
	case "mm":
		factor = cmPerMillimeter
	case "m":
		factor = cmPerMeter
	case "in":
		factor = cmPerInch
	default:
		return types.Dimensions{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported dimension unit").
			WithDetails(map[string]any{"unit": input.Unit})
	}
	return types.Dimensions{
		LengthCm: input.Length * factor,
		WidthCm:  input.Width * factor,
		HeightCm: input.Height * factor,
	}, nil
}
