package enums

import "fmt"

// ShipmentStatus tracks the delivery lifecycle of a shipment.
type ShipmentStatus string

const (
	ShipmentStatusBooked         ShipmentStatus = "BOOKED"
	ShipmentStatusPickedUp       ShipmentStatus = "PICKED_UP"
	ShipmentStatusInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusAtHub          ShipmentStatus = "AT_HUB"
	ShipmentStatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentStatusDelivered      ShipmentStatus = "DELIVERED"
	ShipmentStatusException      ShipmentStatus = "EXCEPTION"

	// ShipmentStatusCanceled is kept for historical rows; it is not reachable
	// through the scan path.
	ShipmentStatusCanceled ShipmentStatus = "CANCELED"
)

var validShipmentStatuses = []ShipmentStatus{
	ShipmentStatusBooked,
	ShipmentStatusPickedUp,
	ShipmentStatusInTransit,
	ShipmentStatusAtHub,
	ShipmentStatusOutForDelivery,
	ShipmentStatusDelivered,
	ShipmentStatusException,
	ShipmentStatusCanceled,
}

// String implements fmt.Stringer.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShipmentStatus.
func (s ShipmentStatus) IsValid() bool {
	for _, candidate := range validShipmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShipmentStatus converts raw input into a ShipmentStatus.
func ParseShipmentStatus(value string) (ShipmentStatus, error) {
	for _, candidate := range validShipmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipment status %q", value)
}
