package rating

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }

func standardTariff() *models.Tariff {
	return &models.Tariff{
		ServiceLevel:    enums.ServiceLevelStandard,
		OriginZone:      "DOM",
		DestinationZone: "DOM",
		Currency:        enums.CurrencyEUR,
		BaseFee:         decimal.NewFromFloat(3.0),
		MinCharge:       decimal.NewFromFloat(10.0),
		Tiers: []models.RateTier{
			{MinKg: 0, MaxKg: floatPtr(5), PricePerKg: decimal.NewFromFloat(4.2)},
			{MinKg: 5, MaxKg: floatPtr(20), PricePerKg: decimal.NewFromFloat(3.1)},
		},
		FuelSurchargePct:       12,
		RemoteAreaSurchargePct: 8,
		TransitDays:            2,
	}
}

func TestFindTier(t *testing.T) {
	t.Parallel()

	tiers := standardTariff().Tiers

	tier, err := FindTier(tiers, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier.MinKg != 0 {
		t.Fatalf("4kg should land in the first tier, got min %v", tier.MinKg)
	}

	// Band bounds are half-open: the shared boundary belongs to the upper tier.
	tier, err = FindTier(tiers, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier.MinKg != 5 {
		t.Fatalf("5kg should land in the second tier, got min %v", tier.MinKg)
	}

	// Past every bounded tier the last tier answers as a safety net.
	tier, err = FindTier(tiers, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier.MinKg != 5 {
		t.Fatalf("50kg should fall back to the last tier, got min %v", tier.MinKg)
	}

	if _, err := FindTier(nil, 1); err == nil {
		t.Fatal("expected error for empty tier list")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNoTierFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestPriceWithTariffBreakdown(t *testing.T) {
	t.Parallel()

	priced, err := PriceWithTariff(standardTariff(), 4, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMoney(t, "weight charge", priced.Breakdown.WeightCharge, "16.80")
	assertMoney(t, "fuel surcharge", priced.Breakdown.FuelSurcharge, "2.38")
	assertMoney(t, "remote surcharge", priced.Breakdown.RemoteSurcharge, "0.00")
	assertMoney(t, "subtotal", priced.Breakdown.SubtotalExclVAT, "22.18")
	assertMoney(t, "total", priced.Breakdown.Total, "22.18")
	if priced.MinimumChargeApplied {
		t.Fatal("minimum charge should not apply at 4kg")
	}
}

func TestPriceWithTariffMinimumCharge(t *testing.T) {
	t.Parallel()

	priced, err := PriceWithTariff(standardTariff(), 0.5, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0.5kg: 2.1 weight + 3 base + 0.612 fuel = 5.712, clamped to 10.00.
	assertMoney(t, "subtotal", priced.Breakdown.SubtotalExclVAT, "10.00")
	assertMoney(t, "total", priced.Breakdown.Total, "10.00")
	if !priced.MinimumChargeApplied {
		t.Fatal("minimum charge flag should be set")
	}
}

func TestPriceWithTariffRemoteSurcharge(t *testing.T) {
	t.Parallel()

	priced, err := PriceWithTariff(standardTariff(), 4, Options{IsRemote: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Remote adds 8% of (base + weight) = 1.584 on top of 22.176.
	assertMoney(t, "remote surcharge", priced.Breakdown.RemoteSurcharge, "1.58")
	assertMoney(t, "total", priced.Breakdown.Total, "23.76")
}

func TestPriceWithTariffVATOnClampedSubtotal(t *testing.T) {
	t.Parallel()

	priced, err := PriceWithTariff(standardTariff(), 0.5, Options{ApplyVAT: true, VATPercent: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// VAT applies after the minimum-charge clamp: 20% of 10.00.
	assertMoney(t, "vat", priced.Breakdown.VAT, "2.00")
	assertMoney(t, "total", priced.Breakdown.Total, "12.00")
	if !priced.MinimumChargeApplied {
		t.Fatal("minimum charge flag should be set")
	}
}

func TestPricingMonotonicWithinTier(t *testing.T) {
	t.Parallel()

	tariff := standardTariff()
	prev := decimal.Zero
	for _, kg := range []float64{5, 7.5, 10, 15, 19.5} {
		priced, err := PriceWithTariff(tariff, kg, Options{})
		if err != nil {
			t.Fatalf("unexpected error at %vkg: %v", kg, err)
		}
		if priced.Breakdown.Total.LessThan(prev) {
			t.Fatalf("total decreased at %vkg: %s < %s", kg, priced.Breakdown.Total, prev)
		}
		prev = priced.Breakdown.Total
	}
}

func TestSelectCheapest(t *testing.T) {
	t.Parallel()

	cheap := standardTariff()
	expensive := standardTariff()
	expensive.ServiceLevel = enums.ServiceLevelExpress
	expensive.BaseFee = decimal.NewFromFloat(9.0)

	priced, err := SelectCheapest([]models.Tariff{*expensive, *cheap}, 4, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced.ServiceLevel != enums.ServiceLevelStandard {
		t.Fatalf("expected the cheaper standard tariff, got %s", priced.ServiceLevel)
	}
}

func TestSelectCheapestTieKeepsFirst(t *testing.T) {
	t.Parallel()

	first := standardTariff()
	second := standardTariff()
	second.ServiceLevel = enums.ServiceLevelEconomy

	priced, err := SelectCheapest([]models.Tariff{*first, *second}, 4, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced.ServiceLevel != enums.ServiceLevelStandard {
		t.Fatalf("tie should keep the first candidate, got %s", priced.ServiceLevel)
	}
}

func TestSelectCheapestServiceLevelFilter(t *testing.T) {
	t.Parallel()

	tariff := standardTariff()
	express := enums.ServiceLevelExpress

	_, err := SelectCheapest([]models.Tariff{*tariff}, 4, Options{}, &express)
	if err == nil {
		t.Fatal("expected error for missing service level")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNoMatchingServiceLevel {
		t.Fatalf("unexpected error code: %v", err)
	}

	standard := enums.ServiceLevelStandard
	priced, err := SelectCheapest([]models.Tariff{*tariff}, 4, Options{}, &standard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced.ServiceLevel != enums.ServiceLevelStandard {
		t.Fatalf("unexpected level %s", priced.ServiceLevel)
	}
}

func TestSelectCheapestNoCandidates(t *testing.T) {
	t.Parallel()

	_, err := SelectCheapest(nil, 4, Options{}, nil)
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNoRatesForLane {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func assertMoney(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("bad expectation %q: %v", want, err)
	}
	if !got.Equal(expected) {
		t.Fatalf("%s = %s, want %s", field, got, want)
	}
}
