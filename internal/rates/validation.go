package rates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
)

// ValidateTiers enforces the tier invariant: sorted ascending by MinKg, each
// tier's max above its min and not past the next tier's min, and only the
// last tier open-ended. Violating data would silently misprice shipments, so
// it is rejected before it ever reaches the pricing engine.
func ValidateTiers(tiers []models.RateTier) error {
	if len(tiers) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "tariff requires at least one weight tier")
	}

	sorted := sort.SliceIsSorted(tiers, func(i, j int) bool {
		return tiers[i].MinKg < tiers[j].MinKg
	})
	if !sorted {
		return pkgerrors.New(pkgerrors.CodeValidation, "weight tiers must be sorted ascending by min_kg")
	}

	for i := range tiers {
		tier := tiers[i]
		if tier.MinKg < 0 {
			return tierError(i, "min_kg must be non-negative")
		}
		if tier.PricePerKg.IsNegative() {
			return tierError(i, "price_per_kg must be non-negative")
		}

		last := i == len(tiers)-1
		if tier.MaxKg == nil {
			if !last {
				return tierError(i, "only the last tier may be open-ended")
			}
			continue
		}
		if *tier.MaxKg <= tier.MinKg {
			return tierError(i, "max_kg must exceed min_kg")
		}
		if !last && *tier.MaxKg > tiers[i+1].MinKg {
			return tierError(i, fmt.Sprintf("max_kg %.3f overlaps the next tier's min_kg %.3f", *tier.MaxKg, tiers[i+1].MinKg))
		}
	}
	return nil
}

func tierError(index int, reason string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid weight tier").
		WithDetails(map[string]any{"tier": index, "reason": reason})
}

func buildTariff(input TariffInput) (*models.Tariff, error) {
	level, err := enums.ParseServiceLevel(strings.TrimSpace(input.ServiceLevel))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service level")
	}
	currency, err := enums.ParseCurrency(strings.TrimSpace(input.Currency))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
	}

	origin := strings.ToUpper(strings.TrimSpace(input.OriginZone))
	dest := strings.ToUpper(strings.TrimSpace(input.DestinationZone))
	if origin == "" || dest == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin and destination zones are required")
	}

	baseFee, err := decimal.NewFromString(strings.TrimSpace(input.BaseFee))
	if err != nil || baseFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_fee must be a non-negative amount")
	}
	minCharge, err := decimal.NewFromString(strings.TrimSpace(input.MinCharge))
	if err != nil || minCharge.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_charge must be a non-negative amount")
	}

	if err := ValidateTiers(input.Tiers); err != nil {
		return nil, err
	}

	if input.FuelSurchargePct < 0 || input.RemoteAreaSurchargePct < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "surcharge percentages must be non-negative")
	}
	if input.TransitDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transit_days must be non-negative")
	}
	if input.EffectiveFrom.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "effective_from is required")
	}
	if input.EffectiveTo != nil && input.EffectiveTo.Before(input.EffectiveFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "effective_to must not precede effective_from")
	}

	return &models.Tariff{
		ServiceLevel:           level,
		OriginZone:             origin,
		DestinationZone:        dest,
		Currency:               currency,
		BaseFee:                baseFee,
		MinCharge:              minCharge,
		Tiers:                  input.Tiers,
		FuelSurchargePct:       input.FuelSurchargePct,
		RemoteAreaSurchargePct: input.RemoteAreaSurchargePct,
		TransitDays:            input.TransitDays,
		IsActive:               input.IsActive,
		EffectiveFrom:          input.EffectiveFrom,
		EffectiveTo:            input.EffectiveTo,
	}, nil
}
