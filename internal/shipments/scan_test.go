package shipments

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
)

func rolePtr(role enums.ActorRole) *enums.ActorRole { return &role }

func timePtr(v time.Time) *time.Time { return &v }

func bookedShipment(lastScanAt time.Time) *models.Shipment {
	return &models.Shipment{
		ID:         uuid.New(),
		Reference:  "SC-TESTREF001",
		Status:     enums.ShipmentStatusBooked,
		LastScanAt: timePtr(lastScanAt),
		Scans: []models.ScanEvent{
			{Status: enums.ShipmentStatusBooked, ScannedAt: lastScanAt},
		},
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("error code = %v, want %s", err, code)
	}
}

func TestApplyScanHappyPath(t *testing.T) {
	t.Parallel()

	booked := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	shipment := bookedShipment(booked)
	now := booked.Add(time.Hour)
	role := rolePtr(enums.ActorRoleCourier)

	event, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusPickedUp, ActorRole: role}, false, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Status != enums.ShipmentStatusPickedUp {
		t.Fatalf("event status = %s", event.Status)
	}
	if !event.ScannedAt.Equal(now) {
		t.Fatalf("scanned at = %v, want %v", event.ScannedAt, now)
	}
	if shipment.Status != enums.ShipmentStatusPickedUp {
		t.Fatalf("shipment status = %s", shipment.Status)
	}
	if shipment.LastScanAt == nil || !shipment.LastScanAt.Equal(now) {
		t.Fatalf("last scan at = %v", shipment.LastScanAt)
	}
	if len(shipment.Scans) != 2 {
		t.Fatalf("scan count = %d, want 2", len(shipment.Scans))
	}
	if shipment.DeliveredAt != nil {
		t.Fatal("delivered at set for non-delivery scan")
	}
}

func TestApplyScanRejections(t *testing.T) {
	t.Parallel()

	booked := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)

	t.Run("missing status", func(t *testing.T) {
		t.Parallel()
		shipment := bookedShipment(booked)
		_, err := ApplyScan(shipment, ScanInput{}, false, booked.Add(time.Hour))
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()
		shipment := bookedShipment(booked)
		_, err := ApplyScan(shipment, ScanInput{Status: "TELEPORTED"}, false, booked.Add(time.Hour))
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("backward transition", func(t *testing.T) {
		t.Parallel()
		shipment := bookedShipment(booked)
		shipment.Status = enums.ShipmentStatusAtHub
		_, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusPickedUp}, false, booked.Add(time.Hour))
		assertCode(t, err, pkgerrors.CodeInvalidTransition)
	})

	t.Run("exception after delivery", func(t *testing.T) {
		t.Parallel()
		shipment := bookedShipment(booked)
		shipment.Status = enums.ShipmentStatusDelivered
		_, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusException}, false, booked.Add(time.Hour))
		assertCode(t, err, pkgerrors.CodeInvalidTransition)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		t.Parallel()
		shipment := bookedShipment(booked)
		_, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusPickedUp}, false, booked)
		assertCode(t, err, pkgerrors.CodeStaleScan)
		if shipment.Status != enums.ShipmentStatusBooked || len(shipment.Scans) != 1 {
			t.Fatal("rejected scan mutated the shipment")
		}
	})

	t.Run("override does not bypass staleness", func(t *testing.T) {
		t.Parallel()
		shipment := bookedShipment(booked)
		_, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusPickedUp}, true, booked.Add(-time.Minute))
		assertCode(t, err, pkgerrors.CodeStaleScan)
	})
}

func TestApplyScanDelivered(t *testing.T) {
	t.Parallel()

	booked := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	shipment := bookedShipment(booked)
	deliveredAt := booked.Add(2 * time.Hour)

	// Skipping intermediate milestones straight to delivery is legal.
	if _, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusDelivered}, false, deliveredAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipment.DeliveredAt == nil || !shipment.DeliveredAt.Equal(deliveredAt) {
		t.Fatalf("delivered at = %v, want %v", shipment.DeliveredAt, deliveredAt)
	}

	// An override re-delivery must not move the original delivery time.
	if _, err := ApplyScan(shipment, ScanInput{Status: enums.ShipmentStatusDelivered}, true, deliveredAt.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shipment.DeliveredAt.Equal(deliveredAt) {
		t.Fatalf("delivered at moved to %v", shipment.DeliveredAt)
	}
}

func TestShouldDropDuplicate(t *testing.T) {
	t.Parallel()

	booked := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	courier := rolePtr(enums.ActorRoleCourier)
	ops := rolePtr(enums.ActorRoleOps)

	newShipment := func() *models.Shipment {
		shipment := bookedShipment(booked)
		shipment.Scans[0].ActorRole = courier
		return shipment
	}

	cases := []struct {
		name  string
		input ScanInput
		now   time.Time
		drop  bool
	}{
		{"same scan within window", ScanInput{Status: enums.ShipmentStatusBooked, ActorRole: courier}, booked.Add(30 * time.Second), true},
		{"window boundary", ScanInput{Status: enums.ShipmentStatusBooked, ActorRole: courier}, booked.Add(IdempotencyWindow), true},
		{"past the window", ScanInput{Status: enums.ShipmentStatusBooked, ActorRole: courier}, booked.Add(IdempotencyWindow + time.Second), false},
		{"different status", ScanInput{Status: enums.ShipmentStatusPickedUp, ActorRole: courier}, booked.Add(30 * time.Second), false},
		{"different role", ScanInput{Status: enums.ShipmentStatusBooked, ActorRole: ops}, booked.Add(30 * time.Second), false},
		{"missing role", ScanInput{Status: enums.ShipmentStatusBooked}, booked.Add(30 * time.Second), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ShouldDropDuplicate(newShipment(), tc.input, tc.now); got != tc.drop {
				t.Fatalf("drop = %v, want %v", got, tc.drop)
			}
		})
	}

	t.Run("no history", func(t *testing.T) {
		t.Parallel()
		shipment := &models.Shipment{Status: enums.ShipmentStatusBooked}
		if ShouldDropDuplicate(shipment, ScanInput{Status: enums.ShipmentStatusBooked, ActorRole: courier}, booked) {
			t.Fatal("dropped a scan with no history")
		}
	})
}

func TestRecomputeFromHistory(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.May, 2, 8, 0, 0, 0, time.UTC)

	t.Run("empty history resets", func(t *testing.T) {
		t.Parallel()
		shipment := &models.Shipment{
			Status:      enums.ShipmentStatusDelivered,
			LastScanAt:  timePtr(base),
			DeliveredAt: timePtr(base),
		}
		RecomputeFromHistory(shipment)
		if shipment.Status != enums.ShipmentStatusBooked {
			t.Fatalf("status = %s, want BOOKED", shipment.Status)
		}
		if shipment.LastScanAt != nil || shipment.DeliveredAt != nil {
			t.Fatal("timestamps not cleared")
		}
	})

	t.Run("last scan wins without revalidation", func(t *testing.T) {
		t.Parallel()
		// Unsorted input with a backward final state; the edited history
		// is ground truth, so PICKED_UP stands.
		shipment := &models.Shipment{
			Scans: []models.ScanEvent{
				{Status: enums.ShipmentStatusPickedUp, ScannedAt: base.Add(3 * time.Hour)},
				{Status: enums.ShipmentStatusBooked, ScannedAt: base},
				{Status: enums.ShipmentStatusAtHub, ScannedAt: base.Add(time.Hour)},
			},
		}
		RecomputeFromHistory(shipment)
		if shipment.Status != enums.ShipmentStatusPickedUp {
			t.Fatalf("status = %s, want PICKED_UP", shipment.Status)
		}
		if shipment.LastScanAt == nil || !shipment.LastScanAt.Equal(base.Add(3*time.Hour)) {
			t.Fatalf("last scan at = %v", shipment.LastScanAt)
		}
		if shipment.Scans[0].Status != enums.ShipmentStatusBooked {
			t.Fatal("scans not re-sorted ascending")
		}
		if shipment.DeliveredAt != nil {
			t.Fatal("delivered at set without a delivered scan")
		}
	})

	t.Run("earliest delivered scan sets delivered at", func(t *testing.T) {
		t.Parallel()
		shipment := &models.Shipment{
			Scans: []models.ScanEvent{
				{Status: enums.ShipmentStatusDelivered, ScannedAt: base.Add(2 * time.Hour)},
				{Status: enums.ShipmentStatusDelivered, ScannedAt: base.Add(4 * time.Hour)},
				{Status: enums.ShipmentStatusException, ScannedAt: base.Add(5 * time.Hour)},
			},
		}
		RecomputeFromHistory(shipment)
		if shipment.Status != enums.ShipmentStatusException {
			t.Fatalf("status = %s, want EXCEPTION", shipment.Status)
		}
		if shipment.DeliveredAt == nil || !shipment.DeliveredAt.Equal(base.Add(2*time.Hour)) {
			t.Fatalf("delivered at = %v, want earliest delivery", shipment.DeliveredAt)
		}
	})
}
