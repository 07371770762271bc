package rates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/pagination"
)

func setupTariffsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	tariffs := `
CREATE TABLE IF NOT EXISTS tariffs (
  id TEXT PRIMARY KEY,
  service_level TEXT NOT NULL,
  origin_zone TEXT NOT NULL,
  destination_zone TEXT NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  base_fee NUMERIC NOT NULL,
  min_charge NUMERIC NOT NULL,
  tiers TEXT NOT NULL,
  fuel_surcharge_pct REAL NOT NULL DEFAULT 0,
  remote_area_surcharge_pct REAL NOT NULL DEFAULT 0,
  transit_days INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  effective_from DATETIME NOT NULL,
  effective_to DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(tariffs).Error)
	require.NoError(t, db.Exec("DELETE FROM tariffs").Error)
	return db
}

func createTariff(t *testing.T, db *gorm.DB, level enums.ServiceLevel, origin, dest string, active bool, from time.Time, to *time.Time, created time.Time) *models.Tariff {
	t.Helper()

	tariff := &models.Tariff{
		ID:              uuid.New(),
		ServiceLevel:    level,
		OriginZone:      origin,
		DestinationZone: dest,
		Currency:        enums.CurrencyEUR,
		BaseFee:         decimal.NewFromFloat(3),
		MinCharge:       decimal.NewFromFloat(10),
		Tiers: []models.RateTier{
			{MinKg: 0, PricePerKg: decimal.NewFromFloat(4.2)},
		},
		TransitDays:   3,
		IsActive:      active,
		EffectiveFrom: from,
		EffectiveTo:   to,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(tariff).Error)
	return tariff
}

func TestRepositoryFindActive_filters(t *testing.T) {
	db := setupTariffsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	asOf := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	past := asOf.AddDate(0, -1, 0)
	expired := asOf.AddDate(0, 0, -1)
	future := asOf.AddDate(0, 1, 0)
	created := asOf.AddDate(0, -2, 0)

	match := createTariff(t, db, enums.ServiceLevelStandard, "DOM", "EU1", true, past, nil, created)
	openEnded := createTariff(t, db, enums.ServiceLevelExpress, "DOM", "EU1", true, past, &future, created.Add(time.Hour))
	createTariff(t, db, enums.ServiceLevelStandard, "DOM", "EU1", false, past, nil, created)
	createTariff(t, db, enums.ServiceLevelStandard, "DOM", "EU1", true, future, nil, created)
	createTariff(t, db, enums.ServiceLevelStandard, "DOM", "EU1", true, past, &expired, created)
	createTariff(t, db, enums.ServiceLevelStandard, "DOM", "EU2", true, past, nil, created)

	found, err := repo.FindActive(ctx, "DOM", "EU1", nil, asOf)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, match.ID, found[0].ID)
	assert.Equal(t, openEnded.ID, found[1].ID)

	level := enums.ServiceLevelExpress
	found, err = repo.FindActive(ctx, "DOM", "EU1", &level, asOf)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, openEnded.ID, found[0].ID)

	found, err = repo.FindActive(ctx, "NA", "EU1", nil, asOf)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepositoryList_pagination(t *testing.T) {
	db := setupTariffsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createTariff(t, db, enums.ServiceLevelStandard, "DOM", "EU1", true, base, nil, base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.List(ctx, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Tariffs, 3)
	require.NotEmpty(t, page.NextCursor)

	rest, err := repo.List(ctx, pagination.Params{Limit: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, rest.Tariffs, 2)
	assert.Empty(t, rest.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, tariff := range append(page.Tariffs, rest.Tariffs...) {
		require.False(t, seen[tariff.ID], "tariff %s returned twice", tariff.ID)
		seen[tariff.ID] = true
	}
}

func TestRepositoryFindByID_missing(t *testing.T) {
	db := setupTariffsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
