package eta

import (
	"testing"
	"time"

	"github.com/swiftcargo/swiftcargo-backend/internal/geo"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
)

// Jan 5 2026 is a Monday.
func monday(hour int) time.Time {
	return time.Date(2026, time.January, 5, hour, 0, 0, 0, time.UTC)
}

func date(day int) time.Time {
	return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateBusinessDays(t *testing.T) {
	t.Parallel()

	got, err := Calculate(monday(10), 3, true, nil, 16, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 8; got.Day() != want {
		t.Fatalf("3 business days from Monday = day %d, want %d", got.Day(), want)
	}
}

func TestCalculateSkipsWeekend(t *testing.T) {
	t.Parallel()

	friday := time.Date(2026, time.January, 9, 9, 0, 0, 0, time.UTC)
	got, err := Calculate(friday, 1, true, nil, 16, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Weekday() != time.Monday || got.Day() != 12 {
		t.Fatalf("1 business day from Friday = %s, want Monday the 12th", got.Format("Mon 2006-01-02"))
	}
}

func TestCalculateCutoffPushesStart(t *testing.T) {
	t.Parallel()

	beforeCutoff, err := Calculate(monday(15), 1, true, nil, 16, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	afterCutoff, err := Calculate(monday(17), 1, true, nil, 16, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if beforeCutoff.Day() != 6 {
		t.Fatalf("before cutoff = day %d, want 6", beforeCutoff.Day())
	}
	if afterCutoff.Day() != 7 {
		t.Fatalf("after cutoff = day %d, want 7", afterCutoff.Day())
	}

	// Cutoff 0 disables the push entirely.
	noCutoff, err := Calculate(monday(23), 1, true, nil, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if noCutoff.Day() != 6 {
		t.Fatalf("no cutoff = day %d, want 6", noCutoff.Day())
	}
}

func TestCalculateSkipsHolidays(t *testing.T) {
	t.Parallel()

	holidays := []time.Time{date(6)}
	got, err := Calculate(monday(10), 2, true, holidays, 16, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Tuesday the 6th is a holiday, so two business days land on Thursday.
	if got.Day() != 8 {
		t.Fatalf("2 business days over a holiday = day %d, want 8", got.Day())
	}
}

func TestCalculateCalendarMode(t *testing.T) {
	t.Parallel()

	friday := time.Date(2026, time.January, 9, 9, 0, 0, 0, time.UTC)
	got, err := Calculate(friday, 2, false, nil, 16, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Weekday() != time.Sunday || got.Day() != 11 {
		t.Fatalf("2 calendar days from Friday = %s, want Sunday the 11th", got.Format("Mon 2006-01-02"))
	}
}

func TestCalculateRejectsNegativeTransitDays(t *testing.T) {
	t.Parallel()

	_, err := Calculate(monday(10), -1, true, nil, 16, nil)
	if err == nil {
		t.Fatal("expected error for negative transit days")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeTariffData {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCalculateRejectsFullWeekWeekend(t *testing.T) {
	t.Parallel()

	allWeek := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	_, err := Calculate(monday(10), 2, true, nil, 16, allWeek)
	if err == nil {
		t.Fatal("expected error when every weekday is a weekend day")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeTariffData {
		t.Fatalf("unexpected error code: %v", err)
	}

	// Duplicates of a partial set are harmless.
	got, err := Calculate(monday(10), 1, true, nil, 16, []time.Weekday{time.Saturday, time.Saturday, time.Sunday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 6 {
		t.Fatalf("1 business day = day %d, want 6", got.Day())
	}
}

func TestCalculateNeverLandsOnWeekendOrHoliday(t *testing.T) {
	t.Parallel()

	holidays := []time.Time{date(7), date(13)}
	for transit := 1; transit <= 12; transit++ {
		got, err := Calculate(monday(10), transit, true, holidays, 16, nil)
		if err != nil {
			t.Fatalf("unexpected error at %d days: %v", transit, err)
		}
		if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
			t.Fatalf("%d business days landed on %s", transit, got.Weekday())
		}
		for _, h := range holidays {
			if got.Format("2006-01-02") == h.Format("2006-01-02") {
				t.Fatalf("%d business days landed on holiday %s", transit, h.Format("2006-01-02"))
			}
		}
	}
}

func TestLaneTableTransitDays(t *testing.T) {
	t.Parallel()

	lanes := DefaultLaneTable()

	days, ok := lanes.TransitDays(geo.ZoneDomestic, geo.ZoneDomestic, enums.ServiceLevelExpress)
	if !ok || days != 1 {
		t.Fatalf("domestic express = (%d, %v), want (1, true)", days, ok)
	}

	// A level without its own entry falls back to standard for the lane.
	days, ok = lanes.TransitDays(geo.ZoneUK, geo.ZoneDomestic, enums.ServiceLevelEconomy)
	if !ok || days != 4 {
		t.Fatalf("uk->dom economy fallback = (%d, %v), want (4, true)", days, ok)
	}

	if _, ok := lanes.TransitDays(geo.ZoneEuropeEast, geo.ZoneNorthAmerica, enums.ServiceLevelStandard); ok {
		t.Fatal("unknown lane should report no fallback")
	}
}
