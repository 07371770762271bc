package shipments

import (
	"crypto/rand"
	"fmt"
)

// referenceAlphabet avoids 0/O and 1/I so references survive being read
// aloud or retyped from a label.
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const referenceLength = 10

// NewReference generates a public shipment reference like SC-7F3KQ9D2XM.
// Uniqueness is enforced by the database; collisions surface as a retry at
// the booking layer.
func NewReference() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating shipment reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return "SC-" + string(buf), nil
}
