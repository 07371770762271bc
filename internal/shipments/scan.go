package shipments

import (
	"sort"
	"time"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// IdempotencyWindow is how recently an identical scan must have landed for a
// new submission to be treated as a device or retry duplicate.
const IdempotencyWindow = 2 * time.Minute

// ScanInput carries one scan submission. The timestamp is always assigned by
// the server, never taken from the payload.
type ScanInput struct {
	Status    enums.ShipmentStatus
	Location  *types.ScanLocation
	Note      *string
	ActorRole *enums.ActorRole
	PhotoRef  *string
}

// ShouldDropDuplicate reports whether the submission repeats the shipment's
// most recent scan: same status, same actor role, within the idempotency
// window of now. Duplicates are dropped silently without re-validation.
func ShouldDropDuplicate(shipment *models.Shipment, input ScanInput, now time.Time) bool {
	last := latestScan(shipment.Scans)
	if last == nil {
		return false
	}
	if last.Status != input.Status {
		return false
	}
	if !sameRole(last.ActorRole, input.ActorRole) {
		return false
	}
	return now.Sub(last.ScannedAt) <= IdempotencyWindow
}

// ApplyScan validates and applies one scan against the shipment in memory.
// All gates run before any mutation, so a returned error leaves the shipment
// untouched. Admin override relaxes the transition rule only; timestamp
// monotonicity holds even for corrections.
func ApplyScan(shipment *models.Shipment, input ScanInput, adminOverride bool, now time.Time) (*models.ScanEvent, error) {
	if input.Status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scan status is required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown scan status").
			WithDetails(map[string]any{"status": input.Status.String()})
	}

	if err := CanTransition(shipment.Status, input.Status, adminOverride); err != nil {
		return nil, err
	}

	if shipment.LastScanAt != nil && !now.After(*shipment.LastScanAt) {
		return nil, pkgerrors.New(pkgerrors.CodeStaleScan, "scan timestamp is not after the shipment's last scan").
			WithDetails(map[string]any{
				"last_scan_at": shipment.LastScanAt.UTC(),
				"submitted_at": now.UTC(),
			})
	}

	event := models.ScanEvent{
		ShipmentID: shipment.ID,
		Status:     input.Status,
		Location:   input.Location,
		Note:       input.Note,
		ActorRole:  input.ActorRole,
		PhotoRef:   input.PhotoRef,
		ScannedAt:  now,
	}
	shipment.Scans = append(shipment.Scans, event)
	shipment.Status = input.Status
	scannedAt := now
	shipment.LastScanAt = &scannedAt

	if input.Status == enums.ShipmentStatusDelivered && shipment.DeliveredAt == nil {
		deliveredAt := now
		shipment.DeliveredAt = &deliveredAt
	}

	return &shipment.Scans[len(shipment.Scans)-1], nil
}

// RecomputeFromHistory rebuilds the shipment's derived state after an
// operator edits or deletes individual scans. The edited history is ground
// truth: the forward-only rule is not re-run. With no scans left the shipment
// resets to freshly booked; otherwise the last scan wins and deliveredAt
// follows the earliest delivered scan anywhere in the history.
func RecomputeFromHistory(shipment *models.Shipment) {
	sort.SliceStable(shipment.Scans, func(i, j int) bool {
		return shipment.Scans[i].ScannedAt.Before(shipment.Scans[j].ScannedAt)
	})

	if len(shipment.Scans) == 0 {
		shipment.Status = enums.ShipmentStatusBooked
		shipment.LastScanAt = nil
		shipment.DeliveredAt = nil
		return
	}

	last := shipment.Scans[len(shipment.Scans)-1]
	shipment.Status = last.Status
	lastScanAt := last.ScannedAt
	shipment.LastScanAt = &lastScanAt

	shipment.DeliveredAt = nil
	for _, scan := range shipment.Scans {
		if scan.Status == enums.ShipmentStatusDelivered {
			deliveredAt := scan.ScannedAt
			shipment.DeliveredAt = &deliveredAt
			break
		}
	}
}

func latestScan(scans []models.ScanEvent) *models.ScanEvent {
	var last *models.ScanEvent
	for i := range scans {
		if last == nil || scans[i].ScannedAt.After(last.ScannedAt) {
			last = &scans[i]
		}
	}
	return last
}

func sameRole(a, b *enums.ActorRole) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
