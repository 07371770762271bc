// Package pagination implements the keyset paging used by the shipment and
// tariff listings. Pages are keyed on (created_at, id) so rows inserted while
// an operator walks the list never shift earlier pages.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit applies when a listing request omits the limit parameter.
	DefaultLimit = 20
	// MaxLimit bounds a single listing page regardless of the requested limit.
	MaxLimit = 100

	cursorSeparator = ","
)

// Params carries the paging inputs parsed from a listing request.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the resume point of a listing: the sort key of the last row on
// the previous page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps a requested limit into the [1, MaxLimit] range,
// substituting DefaultLimit for missing or non-positive values.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer returns the normalized limit plus one sentinel row. Repos
// fetch the extra row to learn whether another page exists without a count
// query.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Encode serializes the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	payload := c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// DecodeCursor parses a cursor token previously produced by Encode. An empty
// token means the first page and yields a nil cursor.
func DecodeCursor(token string) (*Cursor, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	createdAtPart, idPart, found := strings.Cut(string(raw), cursorSeparator)
	if !found {
		return nil, fmt.Errorf("malformed cursor: missing separator")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, createdAtPart)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor id: %w", err)
	}
	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
