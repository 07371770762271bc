package eta

import (
	"time"

	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
)

// DefaultWeekendDays is used when the caller does not override the weekend.
var DefaultWeekendDays = []time.Weekday{time.Saturday, time.Sunday}

// Calculate converts a transit-day count into a concrete delivery date.
//
// When the local hour of start has reached the ship cutoff, the effective
// start moves forward one calendar day before counting. A cutoffHourLocal of
// 0 disables the cutoff entirely rather than meaning midnight, matching the
// zero value of an unset config. In business-day mode the walk advances one
// calendar day at a time, counting only days that are neither weekend days
// nor listed holidays (compared by local calendar date); otherwise transit
// days are added directly. A weekend set naming all seven weekdays leaves no
// countable days and is rejected.
func Calculate(start time.Time, transitDays int, businessDaysOnly bool, holidays []time.Time, cutoffHourLocal int, weekendDays []time.Weekday) (time.Time, error) {
	if transitDays < 0 {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeTariffData, "transit days must be non-negative").
			WithDetails(map[string]any{"transit_days": transitDays})
	}

	if len(weekendDays) == 0 {
		weekendDays = DefaultWeekendDays
	}

	effective := start
	if cutoffHourLocal > 0 && start.Hour() >= cutoffHourLocal {
		effective = effective.AddDate(0, 0, 1)
	}

	if !businessDaysOnly {
		return effective.AddDate(0, 0, transitDays), nil
	}

	weekend := make(map[time.Weekday]struct{}, len(weekendDays))
	for _, day := range weekendDays {
		weekend[day] = struct{}{}
	}
	if len(weekend) >= 7 {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeTariffData, "weekend days cover the whole week").
			WithDetails(map[string]any{"weekend_days": weekendDays})
	}
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[dateKey(h.In(start.Location()))] = struct{}{}
	}

	current := effective
	counted := 0
	for counted < transitDays {
		current = current.AddDate(0, 0, 1)
		if _, off := weekend[current.Weekday()]; off {
			continue
		}
		if _, off := holidaySet[dateKey(current)]; off {
			continue
		}
		counted++
	}
	return current, nil
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
