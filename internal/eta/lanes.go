package eta

import (
	"github.com/swiftcargo/swiftcargo-backend/internal/geo"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
)

// LaneTable supplies fallback transit-day counts for lanes whose tariff does
// not carry its own value. Keyed origin zone -> destination zone -> service
// level, with the standard level acting as the per-lane default.
type LaneTable map[string]map[string]map[enums.ServiceLevel]int

// TransitDays looks up the fallback transit days for a lane. When the exact
// service level is missing, the lane's standard entry answers instead.
func (t LaneTable) TransitDays(originZone, destZone string, level enums.ServiceLevel) (int, bool) {
	byDest, ok := t[originZone]
	if !ok {
		return 0, false
	}
	byLevel, ok := byDest[destZone]
	if !ok {
		return 0, false
	}
	if days, ok := byLevel[level]; ok {
		return days, true
	}
	days, ok := byLevel[enums.ServiceLevelStandard]
	return days, ok
}

// DefaultLaneTable returns the production transit-day fallbacks.
func DefaultLaneTable() LaneTable {
	return LaneTable{
		geo.ZoneDomestic: {
			geo.ZoneDomestic: {
				enums.ServiceLevelExpress:  1,
				enums.ServiceLevelStandard: 2,
				enums.ServiceLevelEconomy:  4,
			},
			geo.ZoneEuropeWest: {
				enums.ServiceLevelExpress:  2,
				enums.ServiceLevelStandard: 3,
				enums.ServiceLevelEconomy:  6,
			},
			geo.ZoneEuropeEast: {
				enums.ServiceLevelExpress:  2,
				enums.ServiceLevelStandard: 4,
				enums.ServiceLevelEconomy:  7,
			},
			geo.ZoneUK: {
				enums.ServiceLevelExpress:  2,
				enums.ServiceLevelStandard: 4,
			},
			geo.ZoneNorthAmerica: {
				enums.ServiceLevelExpress:  3,
				enums.ServiceLevelStandard: 6,
			},
			geo.ZoneInternational: {
				enums.ServiceLevelStandard: 10,
			},
		},
		geo.ZoneEuropeWest: {
			geo.ZoneDomestic: {
				enums.ServiceLevelExpress:  2,
				enums.ServiceLevelStandard: 3,
			},
			geo.ZoneEuropeWest: {
				enums.ServiceLevelExpress:  2,
				enums.ServiceLevelStandard: 3,
				enums.ServiceLevelEconomy:  6,
			},
			geo.ZoneNorthAmerica: {
				enums.ServiceLevelStandard: 7,
			},
			geo.ZoneInternational: {
				enums.ServiceLevelStandard: 12,
			},
		},
		geo.ZoneUK: {
			geo.ZoneDomestic: {
				enums.ServiceLevelStandard: 4,
			},
			geo.ZoneEuropeWest: {
				enums.ServiceLevelStandard: 4,
			},
		},
		geo.ZoneNorthAmerica: {
			geo.ZoneDomestic: {
				enums.ServiceLevelStandard: 6,
			},
			geo.ZoneNorthAmerica: {
				enums.ServiceLevelExpress:  2,
				enums.ServiceLevelStandard: 4,
			},
		},
	}
}
