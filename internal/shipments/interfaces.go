package shipments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/pagination"
)

// Repository is the persistence surface for shipments and their scan events.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error)
	FindByReference(ctx context.Context, reference string, withScans bool) (*models.Shipment, error)
	// UpdateState persists the derived lifecycle columns guarded by the
	// optimistic version precondition; ErrVersionConflict signals a
	// concurrent writer won.
	UpdateState(ctx context.Context, shipment *models.Shipment, expectedVersion int64) error
	UpdatePayment(ctx context.Context, id uuid.UUID, paymentRef, paymentStatus string) error
	CreateScan(ctx context.Context, event *models.ScanEvent) (*models.ScanEvent, error)
	FindScan(ctx context.Context, shipmentID, scanID uuid.UUID) (*models.ScanEvent, error)
	UpdateScan(ctx context.Context, event *models.ScanEvent) (*models.ScanEvent, error)
	DeleteScan(ctx context.Context, shipmentID, scanID uuid.UUID) error
	List(ctx context.Context, params pagination.Params) (*ShipmentList, error)
}

// TxRunner runs a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
