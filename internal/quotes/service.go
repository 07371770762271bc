package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/swiftcargo/swiftcargo-backend/internal/eta"
	"github.com/swiftcargo/swiftcargo-backend/internal/geo"
	"github.com/swiftcargo/swiftcargo-backend/internal/rates"
	"github.com/swiftcargo/swiftcargo-backend/internal/rating"
	"github.com/swiftcargo/swiftcargo-backend/pkg/config"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
	"github.com/swiftcargo/swiftcargo-backend/pkg/metrics"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// Service prices shipments. A quote is computed fresh on every call; callers
// that book a shipment freeze the returned snapshot themselves.
type Service interface {
	Quote(ctx context.Context, request QuoteRequest) (*types.QuoteSnapshot, error)
}

type service struct {
	finder   rates.ActiveFinder
	zones    *geo.Table
	lanes    eta.LaneTable
	pricing  config.PricingConfig
	metrics  *metrics.Metrics
	logg     *logger.Logger
	holidays []time.Time
	now      func() time.Time
}

// NewService builds the quote orchestrator. The lane table supplies transit
// days for tariffs that do not carry their own; holidays feed business-day
// ETA math and may be nil.
func NewService(finder rates.ActiveFinder, zones *geo.Table, lanes eta.LaneTable, pricing config.PricingConfig, m *metrics.Metrics, logg *logger.Logger, holidays []time.Time) (Service, error) {
	if finder == nil {
		return nil, fmt.Errorf("rate finder required")
	}
	if zones == nil {
		return nil, fmt.Errorf("zone table required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		finder:   finder,
		zones:    zones,
		lanes:    lanes,
		pricing:  pricing,
		metrics:  m,
		logg:     logg,
		holidays: holidays,
		now:      time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, request QuoteRequest) (*types.QuoteSnapshot, error) {
	started := s.now()

	weightKg, err := normalizeWeightKg(request.Weight.Value, request.Weight.Unit)
	if err != nil {
		return nil, err
	}
	dims, err := request.Dimensions.Centimeters()
	if err != nil {
		return nil, err
	}
	var level *enums.ServiceLevel
	if request.ServiceLevel != nil {
		parsed, err := enums.ParseServiceLevel(*request.ServiceLevel)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service level")
		}
		level = &parsed
	}

	origin := request.Origin.Normalized()
	destination := request.Destination.Normalized()
	originZone := s.zones.ResolveZone(origin)
	destZone := s.zones.ResolveZone(destination)
	remote := s.zones.IsRemoteArea(destination)
	ctx = s.logg.WithLane(ctx, originZone, destZone)

	weight := rating.ComputeBillableWeight(weightKg, dims, request.Quantity, s.pricing.VolumetricDivisor, s.pricing.WeightRoundStepKg)

	shipAt := started
	if request.ShipDate != nil && request.ShipDate.After(started) {
		shipAt = *request.ShipDate
	}

	candidates, err := s.finder.FindActive(ctx, originZone, destZone, nil, shipAt)
	if err != nil {
		return nil, err
	}

	priced, err := rating.SelectCheapest(candidates, weight.BillableKg, rating.Options{
		ApplyVAT:      s.pricing.ApplyVAT,
		VATPercent:    s.pricing.VATPercent,
		IsRemote:      remote,
		MoneyDecimals: s.pricing.MoneyDecimals,
	}, level)
	if err != nil {
		s.metrics.IncQuoteMissed(missReason(err))
		s.logg.Warn(ctx, "quote not priced")
		return nil, err
	}

	transitDays, note := s.transitDays(priced.Tariff, originZone, destZone, priced.ServiceLevel)
	deliveryETA, err := eta.Calculate(shipAt, transitDays, s.pricing.BusinessDaysOnly, s.holidays, s.pricing.CutoffHourLocal, nil)
	if err != nil {
		return nil, err
	}

	snapshot := &types.QuoteSnapshot{
		Currency:     priced.Currency,
		ServiceLevel: priced.ServiceLevel,
		Origin: types.RouteEndpoint{
			Zone:    originZone,
			City:    origin.City,
			Country: s.zones.NormalizeCountry(origin.Country),
		},
		Destination: types.RouteEndpoint{
			Zone:    destZone,
			City:    destination.City,
			Country: s.zones.NormalizeCountry(destination.Country),
		},
		ActualWeightKg:       weight.ActualKg,
		VolumetricWeightKg:   weight.VolumetricKg,
		BillableWeightKg:     weight.BillableKg,
		Breakdown:            priced.Breakdown,
		TransitDays:          transitDays,
		ETA:                  deliveryETA,
		MinimumChargeApplied: priced.MinimumChargeApplied,
		RemoteArea:           remote,
		Notes:                note,
	}

	s.metrics.IncQuotePriced(priced.ServiceLevel.String())
	s.metrics.ObserveQuoteDuration(priced.ServiceLevel.String(), s.now().Sub(started))
	s.logg.Info(ctx, "quote priced")
	return snapshot, nil
}

// transitDays prefers the tariff's own transit time. Lanes answer for tariffs
// without one; a lane miss still prices the quote but flags the unknown ETA
// in the snapshot notes.
func (s *service) transitDays(tariff *models.Tariff, originZone, destZone string, level enums.ServiceLevel) (int, string) {
	if tariff.TransitDays > 0 {
		return tariff.TransitDays, ""
	}
	if days, ok := s.lanes.TransitDays(originZone, destZone, level); ok {
		return days, ""
	}
	return 0, "transit time unavailable for lane"
}

func missReason(err error) string {
	if coded := pkgerrors.As(err); coded != nil {
		return string(coded.Code())
	}
	return "unknown"
}
