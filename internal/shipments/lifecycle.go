package shipments

import (
	"fmt"

	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
)

// milestoneOrder is the forward-only delivery progression. EXCEPTION and
// CANCELED sit outside the ordered list: EXCEPTION is reachable from any
// non-delivered state, CANCELED is never reachable through a scan.
var milestoneOrder = []enums.ShipmentStatus{
	enums.ShipmentStatusBooked,
	enums.ShipmentStatusPickedUp,
	enums.ShipmentStatusInTransit,
	enums.ShipmentStatusAtHub,
	enums.ShipmentStatusOutForDelivery,
	enums.ShipmentStatusDelivered,
}

var milestoneOrdinals = buildOrdinals()

func buildOrdinals() map[enums.ShipmentStatus]int {
	ordinals := make(map[enums.ShipmentStatus]int, len(milestoneOrder))
	for i, status := range milestoneOrder {
		ordinals[status] = i
	}
	return ordinals
}

// MilestoneOrdinal returns the position of a status in the delivery
// progression, or -1 for statuses outside it (EXCEPTION, CANCELED).
func MilestoneOrdinal(status enums.ShipmentStatus) int {
	ordinal, ok := milestoneOrdinals[status]
	if !ok {
		return -1
	}
	return ordinal
}

// CanTransition decides whether a scan may move a shipment from current to
// proposed. Admin override permits anything; otherwise EXCEPTION is open from
// every state except DELIVERED, CANCELED is always rejected, and milestones
// only move strictly forward (skipping ahead is fine, going back is not).
func CanTransition(current, proposed enums.ShipmentStatus, adminOverride bool) error {
	if adminOverride {
		return nil
	}

	if proposed == enums.ShipmentStatusException {
		if current == enums.ShipmentStatusDelivered {
			return invalidTransition(current, proposed, "delivered shipments cannot enter exception")
		}
		return nil
	}
	if proposed == enums.ShipmentStatusCanceled {
		return invalidTransition(current, proposed, "cancellation is not a scan transition")
	}

	currentOrdinal := MilestoneOrdinal(current)
	proposedOrdinal := MilestoneOrdinal(proposed)
	switch {
	case proposedOrdinal < 0:
		return invalidTransition(current, proposed, "unknown milestone")
	case currentOrdinal < 0:
		return invalidTransition(current, proposed, fmt.Sprintf("no milestone progression from %s", current))
	case current == enums.ShipmentStatusDelivered:
		return invalidTransition(current, proposed, "shipment already delivered")
	case proposedOrdinal <= currentOrdinal:
		return invalidTransition(current, proposed, "milestones only move forward")
	}
	return nil
}

func invalidTransition(current, proposed enums.ShipmentStatus, reason string) error {
	return pkgerrors.New(pkgerrors.CodeInvalidTransition,
		fmt.Sprintf("cannot transition from %s to %s: %s", current, proposed, reason)).
		WithDetails(map[string]any{
			"current":  current.String(),
			"proposed": proposed.String(),
		})
}
