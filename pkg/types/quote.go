package types

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
)

// CostBreakdown itemizes the charges composing a quote total.
type CostBreakdown struct {
	BaseFee          decimal.Decimal `json:"base_fee"`
	WeightCharge     decimal.Decimal `json:"weight_charge"`
	FuelSurcharge    decimal.Decimal `json:"fuel_surcharge"`
	RemoteSurcharge  decimal.Decimal `json:"remote_surcharge"`
	SubtotalExclVAT  decimal.Decimal `json:"subtotal_excl_vat"`
	VAT              decimal.Decimal `json:"vat"`
	Total            decimal.Decimal `json:"total"`
}

// RouteEndpoint snapshots the resolved geography of one side of a lane.
type RouteEndpoint struct {
	Zone    string `json:"zone"`
	City    string `json:"city,omitempty"`
	Country string `json:"country"`
}

// QuoteSnapshot is the computed quote value. It is produced fresh on every
// pricing request; when a shipment is booked a copy is frozen onto the
// shipment row and never recomputed.
type QuoteSnapshot struct {
	Currency             enums.Currency     `json:"currency"`
	ServiceLevel         enums.ServiceLevel `json:"service_level"`
	Origin               RouteEndpoint      `json:"origin"`
	Destination          RouteEndpoint      `json:"destination"`
	ActualWeightKg       float64            `json:"actual_weight_kg"`
	VolumetricWeightKg   float64            `json:"volumetric_weight_kg"`
	BillableWeightKg     float64            `json:"billable_weight_kg"`
	Breakdown            CostBreakdown      `json:"breakdown"`
	TransitDays          int                `json:"transit_days"`
	ETA                  time.Time          `json:"eta"`
	MinimumChargeApplied bool               `json:"minimum_charge_applied"`
	RemoteArea           bool               `json:"remote_area"`
	Notes                string             `json:"notes,omitempty"`
}
