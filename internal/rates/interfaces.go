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

// Repository defines persistence operations for tariff rate cards.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tariff *models.Tariff) (*models.Tariff, error)
	Update(ctx context.Context, tariff *models.Tariff) (*models.Tariff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tariff, error)
	FindActive(ctx context.Context, originZone, destZone string, serviceLevel *enums.ServiceLevel, asOf time.Time) ([]models.Tariff, error)
	List(ctx context.Context, params pagination.Params) (*TariffList, error)
}

// ActiveFinder is the read surface the quote orchestrator depends on.
type ActiveFinder interface {
	FindActive(ctx context.Context, originZone, destZone string, serviceLevel *enums.ServiceLevel, asOf time.Time) ([]models.Tariff, error)
}
