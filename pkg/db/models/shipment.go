package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// Shipment is the core lifecycle entity. It is created once at booking and
// then mutated only by appending scan events or by administrative scan
// corrections. Version backs the optimistic precondition that serializes
// concurrent scans per shipment.
type Shipment struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference     string               `gorm:"column:reference;type:text;not null;uniqueIndex"`
	Status        enums.ShipmentStatus `gorm:"column:status;type:text;not null;default:'BOOKED'"`
	Origin        types.Address        `gorm:"column:origin;type:jsonb;serializer:json;not null"`
	Destination   types.Address        `gorm:"column:destination;type:jsonb;serializer:json;not null"`
	Item          types.ItemSummary    `gorm:"column:item;type:jsonb;serializer:json;not null"`
	Quote         types.QuoteSnapshot  `gorm:"column:quote;type:jsonb;serializer:json;not null"`
	PriceCurrency enums.Currency       `gorm:"column:price_currency;type:text;not null;default:'USD'"`
	PriceAmount   decimal.Decimal      `gorm:"column:price_amount;type:numeric(12,2);not null"`
	PaymentRef    *string              `gorm:"column:payment_ref"`
	PaymentStatus *string              `gorm:"column:payment_status"`
	LastScanAt    *time.Time           `gorm:"column:last_scan_at"`
	DeliveredAt   *time.Time           `gorm:"column:delivered_at"`
	Version       int64                `gorm:"column:version;not null;default:0"`
	Scans         []ScanEvent          `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
