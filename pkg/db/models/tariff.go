package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
)

// RateTier prices one contiguous weight band of a tariff. MaxKg nil means the
// band is open-ended. Tiers are stored sorted ascending by MinKg and must be
// contiguous and non-overlapping; rates admin validates this at write time.
type RateTier struct {
	MinKg      float64         `json:"min_kg"`
	MaxKg      *float64        `json:"max_kg,omitempty"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// Tariff is a rate card for one (service level, origin zone, destination
// zone) lane. Rows are written by the rates admin surface and are immutable
// inputs to pricing.
type Tariff struct {
	ID                     uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceLevel           enums.ServiceLevel `gorm:"column:service_level;type:text;not null"`
	OriginZone             string             `gorm:"column:origin_zone;type:text;not null"`
	DestinationZone        string             `gorm:"column:destination_zone;type:text;not null"`
	Currency               enums.Currency     `gorm:"column:currency;type:text;not null;default:'USD'"`
	BaseFee                decimal.Decimal    `gorm:"column:base_fee;type:numeric(12,4);not null"`
	MinCharge              decimal.Decimal    `gorm:"column:min_charge;type:numeric(12,4);not null"`
	Tiers                  []RateTier         `gorm:"column:tiers;type:jsonb;serializer:json;not null"`
	FuelSurchargePct       float64            `gorm:"column:fuel_surcharge_pct;not null;default:0"`
	RemoteAreaSurchargePct float64            `gorm:"column:remote_area_surcharge_pct;not null;default:0"`
	TransitDays            int                `gorm:"column:transit_days;not null;default:0"`
	IsActive               bool               `gorm:"column:is_active;not null;default:true"`
	EffectiveFrom          time.Time          `gorm:"column:effective_from;not null"`
	EffectiveTo            *time.Time         `gorm:"column:effective_to"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
