package geo

import (
	"strings"

	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

// NormalizeCountry reduces a country input to an upper-case 2-letter code,
// accepting common full names as aliases. Unknown inputs pass through
// upper-cased so zone resolution can still fall back safely.
func (t *Table) NormalizeCountry(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 2 {
		return strings.ToUpper(trimmed)
	}
	if code, ok := t.CountryAliases[strings.ToLower(trimmed)]; ok {
		return code
	}
	return strings.ToUpper(trimmed)
}

// ResolveZone maps an address to a tariff zone code. Postal-pattern overrides
// beat the country default; unknown countries resolve to the generic
// international zone. Resolution never fails.
func (t *Table) ResolveZone(addr types.Address) string {
	country := t.NormalizeCountry(addr.Country)
	postal := normalizePostal(addr.PostalCode)

	if postal != "" {
		for _, override := range t.PostalOverrides[country] {
			if override.Pattern.MatchString(postal) {
				return override.Zone
			}
		}
	}

	if zone, ok := t.CountryZones[country]; ok {
		return zone
	}
	return t.DefaultZone
}

// IsRemoteArea reports whether the address is a surcharge-eligible remote
// delivery point. Independent of zone resolution: a zone-overridden address
// can still be flagged remote.
func (t *Table) IsRemoteArea(addr types.Address) bool {
	country := t.NormalizeCountry(addr.Country)
	postal := normalizePostal(addr.PostalCode)
	city := strings.TrimSpace(addr.City)

	for _, rule := range t.RemoteRules[country] {
		postalMatch := rule.PostalPattern != nil && postal != "" && rule.PostalPattern.MatchString(postal)
		cityMatch := rule.CityPattern != nil && city != "" && rule.CityPattern.MatchString(city)

		switch {
		case rule.PostalPattern != nil && rule.CityPattern != nil:
			if postalMatch && cityMatch {
				return true
			}
		case postalMatch || cityMatch:
			return true
		}
	}
	return false
}

func normalizePostal(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
}
