package shipments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcargo/swiftcargo-backend/internal/quotes"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
	"github.com/swiftcargo/swiftcargo-backend/pkg/metrics"
	"github.com/swiftcargo/swiftcargo-backend/pkg/pagination"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

const bookingReferenceAttempts = 3

// Service owns the shipment lifecycle: booking, scan submission, public
// tracking, and administrative scan corrections.
type Service interface {
	Book(ctx context.Context, request BookingRequest, role enums.ActorRole) (*BookingResponse, error)
	SubmitScan(ctx context.Context, reference string, request ScanRequest, role enums.ActorRole) (*TrackingResponse, error)
	Track(ctx context.Context, reference string) (*TrackingResponse, error)
	EditScan(ctx context.Context, reference string, scanID uuid.UUID, request ScanEditRequest) (*TrackingResponse, error)
	DeleteScan(ctx context.Context, reference string, scanID uuid.UUID) (*TrackingResponse, error)
	RecordPayment(ctx context.Context, reference, paymentRef, paymentStatus string) error
	List(ctx context.Context, params pagination.Params) (*ShipmentList, error)
}

type service struct {
	repo    Repository
	tx      TxRunner
	quoter  quotes.Service
	metrics *metrics.Metrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the shipment lifecycle service.
func NewService(repo Repository, tx TxRunner, quoter quotes.Service, m *metrics.Metrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if quoter == nil {
		return nil, fmt.Errorf("quote service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		quoter:  quoter,
		metrics: m,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Book prices the request, freezes the quote onto a new shipment row and
// records the opening scan. The reference is retried on the rare collision.
func (s *service) Book(ctx context.Context, request BookingRequest, role enums.ActorRole) (*BookingResponse, error) {
	quote, err := s.quoter.Quote(ctx, request.QuoteRequest)
	if err != nil {
		return nil, err
	}

	quantity := request.Quantity
	if quantity < 1 {
		quantity = 1
	}
	dims, err := request.Dimensions.Centimeters()
	if err != nil {
		return nil, err
	}
	item := types.ItemSummary{
		Description: request.Description,
		Quantity:    quantity,
		WeightKg:    quote.ActualWeightKg / float64(quantity),
		Dimensions:  dims,
	}

	var shipment *models.Shipment
	for attempt := 0; attempt < bookingReferenceAttempts; attempt++ {
		reference, err := NewReference()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocating shipment reference")
		}

		now := s.now()
		candidate := &models.Shipment{
			Reference:     reference,
			Status:        enums.ShipmentStatusBooked,
			Origin:        request.Origin.Normalized(),
			Destination:   request.Destination.Normalized(),
			Item:          item,
			Quote:         *quote,
			PriceCurrency: quote.Currency,
			PriceAmount:   quote.Breakdown.Total,
			LastScanAt:    &now,
		}

		txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			created, err := repo.Create(ctx, candidate)
			if err != nil {
				return err
			}
			actor := role
			_, err = repo.CreateScan(ctx, &models.ScanEvent{
				ShipmentID: created.ID,
				Status:     enums.ShipmentStatusBooked,
				ActorRole:  &actor,
				ScannedAt:  now,
			})
			return err
		})
		if txErr == nil {
			shipment = candidate
			break
		}
		if db.IsUniqueViolation(txErr, "shipments_reference_key") {
			continue
		}
		return nil, txErr
	}
	if shipment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not allocate a unique shipment reference")
	}

	ctx = s.logg.WithShipmentRef(ctx, shipment.Reference)
	s.logg.Info(ctx, "shipment booked")
	return &BookingResponse{
		Reference: shipment.Reference,
		Status:    shipment.Status,
		Quote:     shipment.Quote,
	}, nil
}

// SubmitScan runs the full checkpoint pipeline: idempotency guard, transition
// and staleness gates, then a version-guarded persist so concurrent scans for
// the same shipment serialize.
func (s *service) SubmitScan(ctx context.Context, reference string, request ScanRequest, role enums.ActorRole) (*TrackingResponse, error) {
	status, err := enums.ParseShipmentStatus(request.Status)
	if err != nil {
		s.metrics.IncScanRejected("invalid_status")
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scan status")
	}

	shipment, err := s.loadByReference(ctx, reference, true)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithShipmentRef(s.logg.WithActorRole(ctx, role.String()), reference)

	actor := role
	input := ScanInput{
		Status:    status,
		Location:  request.Location,
		Note:      request.Note,
		ActorRole: &actor,
		PhotoRef:  request.PhotoRef,
	}
	adminOverride := request.AdminOverride && role == enums.ActorRoleAdmin

	now := s.now()
	if ShouldDropDuplicate(shipment, input, now) {
		s.metrics.IncScanDropped()
		s.logg.Info(ctx, "duplicate scan dropped")
		return NewTrackingResponse(shipment), nil
	}

	expectedVersion := shipment.Version
	event, err := ApplyScan(shipment, input, adminOverride, now)
	if err != nil {
		s.metrics.IncScanRejected(rejectReason(err))
		return nil, err
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateScan(ctx, event); err != nil {
			return err
		}
		return repo.UpdateState(ctx, shipment, expectedVersion)
	})
	if txErr != nil {
		if errors.Is(txErr, ErrVersionConflict) {
			s.metrics.IncScanRejected("version_conflict")
			return nil, pkgerrors.Wrap(pkgerrors.CodeStaleScan, txErr, "shipment was updated concurrently")
		}
		return nil, txErr
	}

	s.metrics.IncScanApplied(status.String())
	s.logg.Info(ctx, "scan applied")
	return NewTrackingResponse(shipment), nil
}

// Track returns the public view of a shipment.
func (s *service) Track(ctx context.Context, reference string) (*TrackingResponse, error) {
	shipment, err := s.loadByReference(ctx, reference, true)
	if err != nil {
		return nil, err
	}
	return NewTrackingResponse(shipment), nil
}

// EditScan applies an operator correction to one historical scan and rebuilds
// the shipment's derived state from the edited history.
func (s *service) EditScan(ctx context.Context, reference string, scanID uuid.UUID, request ScanEditRequest) (*TrackingResponse, error) {
	var response *TrackingResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		shipment, err := repo.FindByReference(ctx, reference, false)
		if err != nil {
			return err
		}
		event, err := repo.FindScan(ctx, shipment.ID, scanID)
		if err != nil {
			return err
		}

		if request.Status != nil {
			status, err := enums.ParseShipmentStatus(*request.Status)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scan status")
			}
			event.Status = status
		}
		if request.Location != nil {
			event.Location = request.Location
		}
		if request.Note != nil {
			event.Note = request.Note
		}
		if request.ScannedAt != nil {
			event.ScannedAt = *request.ScannedAt
		}
		if _, err := repo.UpdateScan(ctx, event); err != nil {
			return err
		}

		response, err = s.recompute(ctx, repo, reference)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, "shipment or scan not found")
	}

	s.logg.Info(s.logg.WithShipmentRef(ctx, reference), "scan edited")
	return response, nil
}

// DeleteScan removes one scan and rebuilds the shipment's derived state.
func (s *service) DeleteScan(ctx context.Context, reference string, scanID uuid.UUID) (*TrackingResponse, error) {
	var response *TrackingResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		shipment, err := repo.FindByReference(ctx, reference, false)
		if err != nil {
			return err
		}
		if err := repo.DeleteScan(ctx, shipment.ID, scanID); err != nil {
			return err
		}

		response, err = s.recompute(ctx, repo, reference)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, "shipment or scan not found")
	}

	s.logg.Info(s.logg.WithShipmentRef(ctx, reference), "scan deleted")
	return response, nil
}

// RecordPayment attaches an external payment reference to the shipment.
func (s *service) RecordPayment(ctx context.Context, reference, paymentRef, paymentStatus string) error {
	shipment, err := s.loadByReference(ctx, reference, false)
	if err != nil {
		return err
	}
	return s.repo.UpdatePayment(ctx, shipment.ID, paymentRef, paymentStatus)
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ShipmentList, error) {
	return s.repo.List(ctx, params)
}

// recompute reloads the edited history inside the transaction and persists
// the rebuilt lifecycle columns. The edited history is ground truth, so the
// transition rule is deliberately not re-run here.
func (s *service) recompute(ctx context.Context, repo Repository, reference string) (*TrackingResponse, error) {
	shipment, err := repo.FindByReference(ctx, reference, true)
	if err != nil {
		return nil, err
	}
	RecomputeFromHistory(shipment)
	if err := repo.UpdateState(ctx, shipment, shipment.Version); err != nil {
		return nil, err
	}
	return NewTrackingResponse(shipment), nil
}

func (s *service) loadByReference(ctx context.Context, reference string, withScans bool) (*models.Shipment, error) {
	shipment, err := s.repo.FindByReference(ctx, reference, withScans)
	if err != nil {
		return nil, notFoundOr(err, "shipment not found")
	}
	return shipment, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	return err
}

func rejectReason(err error) string {
	if coded := pkgerrors.As(err); coded != nil {
		return string(coded.Code())
	}
	return "unknown"
}
