package rates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rates repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tariff *models.Tariff) (*models.Tariff, error) {
	if err := r.db.WithContext(ctx).Create(tariff).Error; err != nil {
		return nil, err
	}
	return tariff, nil
}

func (r *repository) Update(ctx context.Context, tariff *models.Tariff) (*models.Tariff, error) {
	if err := r.db.WithContext(ctx).Save(tariff).Error; err != nil {
		return nil, err
	}
	return tariff, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tariff, error) {
	var tariff models.Tariff
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tariff).Error
	if err != nil {
		return nil, err
	}
	return &tariff, nil
}

func (r *repository) FindActive(ctx context.Context, originZone, destZone string, serviceLevel *enums.ServiceLevel, asOf time.Time) ([]models.Tariff, error) {
	query := r.db.WithContext(ctx).
		Where("origin_zone = ?", originZone).
		Where("destination_zone = ?", destZone).
		Where("is_active = ?", true).
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf)

	if serviceLevel != nil {
		query = query.Where("service_level = ?", *serviceLevel)
	}

	var tariffs []models.Tariff
	if err := query.Order("created_at ASC").Find(&tariffs).Error; err != nil {
		return nil, err
	}
	return tariffs, nil
}

// TariffList wraps the paginated tariffs plus the next page cursor.
type TariffList struct {
	Tariffs    []models.Tariff `json:"tariffs"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func (r *repository) List(ctx context.Context, params pagination.Params) (*TariffList, error) {
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

	var tariffs []models.Tariff
	if err := query.Find(&tariffs).Error; err != nil {
		return nil, err
	}

	list := &TariffList{}
	pageSize := pagination.NormalizeLimit(params.Limit)
	if len(tariffs) > pageSize {
		tariffs = tariffs[:pageSize]
		last := tariffs[len(tariffs)-1]
		list.NextCursor = pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}.Encode()
	}
	list.Tariffs = tariffs
	return list, nil
}
