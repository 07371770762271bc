package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// ScanEvent is a checkpoint record owned exclusively by its shipment. Events
// are immutable through the append path; the ID only exists so operators can
// address individual events for administrative correction.
type ScanEvent struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShipmentID uuid.UUID            `gorm:"column:shipment_id;type:uuid;not null;index"`
	Status     enums.ShipmentStatus `gorm:"column:status;type:text;not null"`
	Location   *types.ScanLocation  `gorm:"column:location;type:jsonb;serializer:json"`
	Note       *string              `gorm:"column:note"`
	ActorRole  *enums.ActorRole     `gorm:"column:actor_role;type:text"`
	PhotoRef   *string              `gorm:"column:photo_ref"`
	// ScannedAt is server-assigned; client timestamps are never trusted.
	ScannedAt time.Time `gorm:"column:scanned_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
