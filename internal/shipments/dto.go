package shipments

import (
	"time"

	"github.com/swiftcargo/swiftcargo-backend/internal/quotes"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// BookingRequest creates a shipment. Pricing inputs match the quote request;
// the quote is computed and frozen at booking time.
type BookingRequest struct {
	quotes.QuoteRequest
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
}

// ScanRequest is one checkpoint submission. The actor role comes from the
// authenticated caller, never from the payload; AdminOverride is honored only
// for admin callers.
type ScanRequest struct {
	Status        string              `json:"status" validate:"required"`
	Location      *types.ScanLocation `json:"location,omitempty"`
	Note          *string             `json:"note,omitempty" validate:"omitempty,max=500"`
	PhotoRef      *string             `json:"photo_ref,omitempty"`
	AdminOverride bool                `json:"admin_override,omitempty"`
}

// ScanEditRequest is an operator correction to a single historical scan.
type ScanEditRequest struct {
	Status    *string             `json:"status,omitempty"`
	Location  *types.ScanLocation `json:"location,omitempty"`
	Note      *string             `json:"note,omitempty" validate:"omitempty,max=500"`
	ScannedAt *time.Time          `json:"scanned_at,omitempty"`
}

// TimelineEntry is one scan as exposed on tracking responses. The actor is
// surfaced as a role only; actor identifiers never leave the system.
type TimelineEntry struct {
	Status    enums.ShipmentStatus `json:"status"`
	ScannedAt time.Time            `json:"scanned_at"`
	Location  *types.ScanLocation  `json:"location,omitempty"`
	Note      *string              `json:"note,omitempty"`
	ActorRole *enums.ActorRole     `json:"actor_role,omitempty"`
}

// TrackingResponse is the public view of a shipment.
type TrackingResponse struct {
	Reference         string               `json:"reference"`
	Status            enums.ShipmentStatus `json:"status"`
	ProgressIndex     int                  `json:"progress_index"`
	Origin            types.RouteEndpoint  `json:"origin"`
	Destination       types.RouteEndpoint  `json:"destination"`
	Item              types.ItemSummary    `json:"item"`
	EstimatedDelivery time.Time            `json:"estimated_delivery"`
	DeliveredAt       *time.Time           `json:"delivered_at,omitempty"`
	Timeline          []TimelineEntry      `json:"timeline"`
}

// BookingResponse is returned on shipment creation: the public reference plus
// the frozen quote the price was taken from.
type BookingResponse struct {
	Reference string               `json:"reference"`
	Status    enums.ShipmentStatus `json:"status"`
	Quote     types.QuoteSnapshot  `json:"quote"`
}

// NewTrackingResponse projects a shipment row onto its public view. Scans are
// assumed sorted ascending by scan time.
func NewTrackingResponse(shipment *models.Shipment) *TrackingResponse {
	timeline := make([]TimelineEntry, 0, len(shipment.Scans))
	for _, scan := range shipment.Scans {
		timeline = append(timeline, TimelineEntry{
			Status:    scan.Status,
			ScannedAt: scan.ScannedAt,
			Location:  scan.Location,
			Note:      scan.Note,
			ActorRole: scan.ActorRole,
		})
	}
	return &TrackingResponse{
		Reference:         shipment.Reference,
		Status:            shipment.Status,
		ProgressIndex:     MilestoneOrdinal(shipment.Status),
		Origin:            shipment.Quote.Origin,
		Destination:       shipment.Quote.Destination,
		Item:              shipment.Item,
		EstimatedDelivery: shipment.Quote.ETA,
		DeliveredAt:       shipment.DeliveredAt,
		Timeline:          timeline,
	}
}
