package rating

import (
	"github.com/shopspring/decimal"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// DefaultMoneyDecimals is the rounding precision applied when Options does
// not override it.
const DefaultMoneyDecimals int32 = 2

// Options carries the per-request pricing knobs.
type Options struct {
	ApplyVAT      bool
	VATPercent    float64
	IsRemote      bool
	MoneyDecimals int32
}

func (o Options) decimals() int32 {
	if o.MoneyDecimals <= 0 {
		return DefaultMoneyDecimals
	}
	return o.MoneyDecimals
}

// PricedQuote is the outcome of pricing one tariff against a billable weight.
type PricedQuote struct {
	Tariff               *models.Tariff
	Currency             enums.Currency
	ServiceLevel         enums.ServiceLevel
	BillableWeightKg     float64
	Breakdown            types.CostBreakdown
	MinimumChargeApplied bool
}

// FindTier returns the tier covering the billable weight. Tiers are assumed
// pre-sorted ascending by MinKg; a weight past every bounded tier falls into
// the last tier as an open-ended safety net. Only an empty tier list fails.
func FindTier(tiers []models.RateTier, billableKg float64) (*models.RateTier, error) {
	if len(tiers) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoTierFound, "tariff has no weight tiers")
	}
	for i := range tiers {
		tier := &tiers[i]
		if billableKg < tier.MinKg {
			continue
		}
		if tier.MaxKg == nil || billableKg < *tier.MaxKg {
			return tier, nil
		}
	}
	return &tiers[len(tiers)-1], nil
}

// PriceWithTariff computes the full cost breakdown for one tariff.
//
// The minimum charge is compared against the subtotal after surcharges, and
// VAT applies to the possibly-clamped subtotal. Every money field is rounded
// half-away-from-zero to the configured precision.
func PriceWithTariff(tariff *models.Tariff, billableKg float64, opts Options) (*PricedQuote, error) {
	tier, err := FindTier(tariff.Tiers, billableKg)
	if err != nil {
		return nil, err
	}

	decimals := opts.decimals()
	hundred := decimal.NewFromInt(100)

	weightCharge := decimal.NewFromFloat(billableKg).Mul(tier.PricePerKg)
	percentageBase := tariff.BaseFee.Add(weightCharge)
	fuelCharge := percentageBase.Mul(decimal.NewFromFloat(tariff.FuelSurchargePct)).Div(hundred)

	remoteCharge := decimal.Zero
	if opts.IsRemote {
		remoteCharge = percentageBase.Mul(decimal.NewFromFloat(tariff.RemoteAreaSurchargePct)).Div(hundred)
	}

	subtotal := tariff.BaseFee.Add(weightCharge).Add(fuelCharge).Add(remoteCharge)

	minimumApplied := false
	if subtotal.LessThan(tariff.MinCharge) {
		subtotal = tariff.MinCharge
		minimumApplied = true
	}

	vat := decimal.Zero
	if opts.ApplyVAT {
		vat = subtotal.Mul(decimal.NewFromFloat(opts.VATPercent)).Div(hundred)
	}
	total := subtotal.Add(vat)

	return &PricedQuote{
		Tariff:           tariff,
		Currency:         tariff.Currency,
		ServiceLevel:     tariff.ServiceLevel,
		BillableWeightKg: billableKg,
		Breakdown: types.CostBreakdown{
			BaseFee:         tariff.BaseFee.Round(decimals),
			WeightCharge:    weightCharge.Round(decimals),
			FuelSurcharge:   fuelCharge.Round(decimals),
			RemoteSurcharge: remoteCharge.Round(decimals),
			SubtotalExclVAT: subtotal.Round(decimals),
			VAT:             vat.Round(decimals),
			Total:           total.Round(decimals),
		},
		MinimumChargeApplied: minimumApplied,
	}, nil
}

// SelectCheapest prices every candidate and returns the one with the lowest
// rounded total; ties resolve to the first minimal candidate in input order.
// A service level filter restricts candidates before pricing.
func SelectCheapest(candidates []models.Tariff, billableKg float64, opts Options, serviceLevel *enums.ServiceLevel) (*PricedQuote, error) {
	if len(candidates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoRatesForLane, "no rate cards available")
	}

	pool := candidates
	if serviceLevel != nil {
		pool = make([]models.Tariff, 0, len(candidates))
		for _, candidate := range candidates {
			if candidate.ServiceLevel == *serviceLevel {
				pool = append(pool, candidate)
			}
		}
		if len(pool) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNoMatchingServiceLevel, "no tariff matches the requested service level").
				WithDetails(map[string]any{"service_level": serviceLevel.String()})
		}
	}

	var best *PricedQuote
	for i := range pool {
		priced, err := PriceWithTariff(&pool[i], billableKg, opts)
		if err != nil {
			return nil, err
		}
		if best == nil || priced.Breakdown.Total.LessThan(best.Breakdown.Total) {
			best = priced
		}
	}
	return best, nil
}
