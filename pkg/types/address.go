package types

import "strings"

// Address is the postal address shape carried on quote requests and frozen
// onto shipments. Persisted as jsonb.
type Address struct {
	Line1      string  `json:"line1,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty"`
}

// Normalized returns a copy with trimmed fields.
func (a Address) Normalized() Address {
	a.Line1 = strings.TrimSpace(a.Line1)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	return a
}
