package types

// ScanLocation is the optional checkpoint location attached to a scan event.
type ScanLocation struct {
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}
