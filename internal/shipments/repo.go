package shipments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/pagination"
)

// ErrVersionConflict reports that the optimistic version precondition failed
// because a concurrent scan landed first.
var ErrVersionConflict = errors.New("shipment modified concurrently")

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shipments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error) {
	if err := r.db.WithContext(ctx).Create(shipment).Error; err != nil {
		return nil, err
	}
	return shipment, nil
}

func (r *repository) FindByReference(ctx context.Context, reference string, withScans bool) (*models.Shipment, error) {
	query := r.db.WithContext(ctx).Where("reference = ?", reference)
	if withScans {
		query = query.Preload("Scans", func(db *gorm.DB) *gorm.DB {
			return db.Order("scanned_at ASC")
		})
	}

	var shipment models.Shipment
	if err := query.First(&shipment).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *repository) UpdateState(ctx context.Context, shipment *models.Shipment, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ? AND version = ?", shipment.ID, expectedVersion).
		Updates(map[string]any{
			"status":       shipment.Status,
			"last_scan_at": shipment.LastScanAt,
			"delivered_at": shipment.DeliveredAt,
			"version":      expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	shipment.Version = expectedVersion + 1
	return nil
}

func (r *repository) UpdatePayment(ctx context.Context, id uuid.UUID, paymentRef, paymentStatus string) error {
	return r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_ref":    paymentRef,
			"payment_status": paymentStatus,
		}).Error
}

func (r *repository) CreateScan(ctx context.Context, event *models.ScanEvent) (*models.ScanEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *repository) FindScan(ctx context.Context, shipmentID, scanID uuid.UUID) (*models.ScanEvent, error) {
	var event models.ScanEvent
	err := r.db.WithContext(ctx).
		Where("id = ? AND shipment_id = ?", scanID, shipmentID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) UpdateScan(ctx context.Context, event *models.ScanEvent) (*models.ScanEvent, error) {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *repository) DeleteScan(ctx context.Context, shipmentID, scanID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND shipment_id = ?", scanID, shipmentID).
		Delete(&models.ScanEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ShipmentList wraps the paginated shipments plus the next page cursor.
type ShipmentList struct {
	Shipments  []models.Shipment `json:"shipments"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func (r *repository) List(ctx context.Context, params pagination.Params) (*ShipmentList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	query := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Limit(limit)

	cursor, err := pagination.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at > ?) OR (created_at = ? AND id > ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var shipments []models.Shipment
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}

	list := &ShipmentList{}
	pageSize := pagination.NormalizeLimit(params.Limit)
	if len(shipments) > pageSize {
		shipments = shipments[:pageSize]
		last := shipments[len(shipments)-1]
		list.NextCursor = pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}.Encode()
	}
	list.Shipments = shipments
	return list, nil
}
