package geo

import "regexp"

// Zone codes used by the default tariff geography.
const (
	ZoneDomestic      = "DOM"
	ZoneEuropeWest    = "EU1"
	ZoneEuropeEast    = "EU2"
	ZoneUK            = "UK"
	ZoneNorthAmerica  = "NA"
	ZoneInternational = "INTL"
)

// PostalOverride redirects a postal range to a zone other than the country
// default (overseas territories, exclaves).
type PostalOverride struct {
	Pattern *regexp.Regexp
	Zone    string
}

// RemoteRule marks surcharge-eligible remote delivery points by postal code
// or city name.
type RemoteRule struct {
	PostalPattern *regexp.Regexp
	CityPattern   *regexp.Regexp
}

// Table is the immutable zone/remote lookup structure. It is built once at
// startup and injected wherever resolution happens, so tests can substitute
// alternate geographies.
type Table struct {
	DefaultZone     string
	CountryZones    map[string]string
	CountryAliases  map[string]string
	PostalOverrides map[string][]PostalOverride
	RemoteRules     map[string][]RemoteRule
}

// DefaultTable returns the production tariff geography.
func DefaultTable() *Table {
	return &Table{
		DefaultZone: ZoneInternational,
		CountryZones: map[string]string{
			"DE": ZoneDomestic,
			"AT": ZoneEuropeWest,
			"BE": ZoneEuropeWest,
			"NL": ZoneEuropeWest,
			"LU": ZoneEuropeWest,
			"FR": ZoneEuropeWest,
			"IT": ZoneEuropeWest,
			"ES": ZoneEuropeWest,
			"PT": ZoneEuropeWest,
			"DK": ZoneEuropeWest,
			"PL": ZoneEuropeEast,
			"CZ": ZoneEuropeEast,
			"SK": ZoneEuropeEast,
			"HU": ZoneEuropeEast,
			"RO": ZoneEuropeEast,
			"BG": ZoneEuropeEast,
			"GB": ZoneUK,
			"IE": ZoneUK,
			"US": ZoneNorthAmerica,
			"CA": ZoneNorthAmerica,
			"MX": ZoneNorthAmerica,
		},
		CountryAliases: map[string]string{
			"germany":        "DE",
			"deutschland":    "DE",
			"austria":        "AT",
			"belgium":        "BE",
			"netherlands":    "NL",
			"holland":        "NL",
			"luxembourg":     "LU",
			"france":         "FR",
			"italy":          "IT",
			"spain":          "ES",
			"portugal":       "PT",
			"denmark":        "DK",
			"poland":         "PL",
			"czech republic": "CZ",
			"czechia":        "CZ",
			"slovakia":       "SK",
			"hungary":        "HU",
			"romania":        "RO",
			"bulgaria":       "BG",
			"united kingdom": "GB",
			"great britain":  "GB",
			"uk":             "GB",
			"ireland":        "IE",
			"united states":  "US",
			"usa":            "US",
			"canada":         "CA",
			"mexico":         "MX",
		},
		PostalOverrides: map[string][]PostalOverride{
			// Canary Islands price as international despite the ES default.
			"ES": {
				{Pattern: regexp.MustCompile(`^(35|38)\d{3}$`), Zone: ZoneInternational},
				{Pattern: regexp.MustCompile(`^(51|52)\d{3}$`), Zone: ZoneInternational}, // Ceuta, Melilla
			},
			// French overseas departments and territories.
			"FR": {
				{Pattern: regexp.MustCompile(`^9[78]\d{3}$`), Zone: ZoneInternational},
			},
			// Channel Islands and Isle of Man route internationally.
			"GB": {
				{Pattern: regexp.MustCompile(`^(GY|JE|IM)`), Zone: ZoneInternational},
			},
			// Alaska, Hawaii and US territories leave the continental lane.
			"US": {
				{Pattern: regexp.MustCompile(`^(99[5-9]|967|968|006|007|009)\d{2}`), Zone: ZoneInternational},
			},
		},
		RemoteRules: map[string][]RemoteRule{
			"DE": {
				{PostalPattern: regexp.MustCompile(`^25849$`)},     // Pellworm
				{PostalPattern: regexp.MustCompile(`^2594[6-9]$`)}, // Sylt, Amrum, Föhr
				{PostalPattern: regexp.MustCompile(`^27498$`)},     // Helgoland
				{PostalPattern: regexp.MustCompile(`^1849[4-6]$`)}, // Hiddensee
			},
			"ES": {
				{PostalPattern: regexp.MustCompile(`^07\d{3}$`)}, // Balearics
				{PostalPattern: regexp.MustCompile(`^(35|38)\d{3}$`)},
			},
			"PT": {
				{PostalPattern: regexp.MustCompile(`^9\d{3}`)}, // Madeira, Azores
			},
			"GB": {
				{PostalPattern: regexp.MustCompile(`^(HS|ZE|KW1[5-7]|IV4[1-9]|IV5[0-6]|PA6[0-9]|PA7[0-8])`)},
				{CityPattern: regexp.MustCompile(`(?i)isle of|orkney|shetland|outer hebrides`)},
			},
			"IT": {
				{CityPattern: regexp.MustCompile(`(?i)venezia|venice|lampedusa|pantelleria`)},
			},
			"US": {
				{CityPattern: regexp.MustCompile(`(?i)^barrow$|^utqiagvik$|^nome$|^kotzebue$`)},
			},
		},
	}
}
