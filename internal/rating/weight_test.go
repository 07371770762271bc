package rating

import (
	"math"
	"testing"

	"github.com/swiftcargo/swiftcargo-backend/pkg/types"
)

func TestComputeBillableWeightActualDominates(t *testing.T) {
	t.Parallel()

	// 10x10x10cm at divisor 5000 is 0.2 volumetric kg, actual wins.
	w := ComputeBillableWeight(3, types.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10}, 1, 5000, 0.5)
	if w.ActualKg != 3 {
		t.Fatalf("actual = %v, want 3", w.ActualKg)
	}
	if w.VolumetricKg != 0.2 {
		t.Fatalf("volumetric = %v, want 0.2", w.VolumetricKg)
	}
	if w.BillableKg != 3 {
		t.Fatalf("billable = %v, want 3", w.BillableKg)
	}
}

func TestComputeBillableWeightVolumetricDominates(t *testing.T) {
	t.Parallel()

	// 50x40x30cm = 60000 cm3 -> 12 volumetric kg against 2 actual.
	w := ComputeBillableWeight(2, types.Dimensions{LengthCm: 50, WidthCm: 40, HeightCm: 30}, 1, 5000, 0.5)
	if w.VolumetricKg != 12 {
		t.Fatalf("volumetric = %v, want 12", w.VolumetricKg)
	}
	if w.BillableKg != 12 {
		t.Fatalf("billable = %v, want 12", w.BillableKg)
	}
}

func TestComputeBillableWeightRoundsUpToStep(t *testing.T) {
	t.Parallel()

	w := ComputeBillableWeight(1.1, types.Dimensions{}, 1, 5000, 0.5)
	if w.BillableKg != 1.5 {
		t.Fatalf("billable = %v, want 1.5", w.BillableKg)
	}

	// An exact multiple must not be bumped a full step by float noise.
	w = ComputeBillableWeight(2.0, types.Dimensions{}, 1, 5000, 0.5)
	if w.BillableKg != 2.0 {
		t.Fatalf("billable = %v, want 2.0", w.BillableKg)
	}
}

func TestComputeBillableWeightQuantityScales(t *testing.T) {
	t.Parallel()

	w := ComputeBillableWeight(1, types.Dimensions{LengthCm: 20, WidthCm: 20, HeightCm: 25}, 3, 5000, 0)
	if w.ActualKg != 3 {
		t.Fatalf("actual = %v, want 3", w.ActualKg)
	}
	if w.VolumetricKg != 6 {
		t.Fatalf("volumetric = %v, want 6", w.VolumetricKg)
	}
	if w.BillableKg != 6 {
		t.Fatalf("billable = %v, want 6", w.BillableKg)
	}
}

func TestComputeBillableWeightDefensiveInputs(t *testing.T) {
	t.Parallel()

	w := ComputeBillableWeight(-4, types.Dimensions{LengthCm: -1, WidthCm: 10, HeightCm: 10}, 0, 5000, 0.5)
	if w.ActualKg != 0 || w.VolumetricKg != 0 || w.BillableKg != 0 {
		t.Fatalf("negative inputs should clamp to zero, got %+v", w)
	}

	// Zero divisor disables volumetric weight instead of dividing by zero.
	w = ComputeBillableWeight(1, types.Dimensions{LengthCm: 100, WidthCm: 100, HeightCm: 100}, 1, 0, 0.5)
	if w.VolumetricKg != 0 {
		t.Fatalf("volumetric = %v, want 0 with no divisor", w.VolumetricKg)
	}
	if w.BillableKg != 1 {
		t.Fatalf("billable = %v, want 1", w.BillableKg)
	}
}

func TestComputeBillableWeightProperties(t *testing.T) {
	t.Parallel()

	weights := []float64{0, 0.2, 1, 2.5, 7.77, 19.999, 42}
	dims := []types.Dimensions{
		{},
		{LengthCm: 10, WidthCm: 10, HeightCm: 10},
		{LengthCm: 120, WidthCm: 60, HeightCm: 60},
	}
	const step = 0.5

	for _, actual := range weights {
		for _, d := range dims {
			for qty := 1; qty <= 4; qty++ {
				w := ComputeBillableWeight(actual, d, qty, 5000, step)
				if w.BillableKg < w.ActualKg {
					t.Fatalf("billable %v below actual %v", w.BillableKg, w.ActualKg)
				}
				if w.BillableKg < w.VolumetricKg {
					t.Fatalf("billable %v below volumetric %v", w.BillableKg, w.VolumetricKg)
				}
				steps := w.BillableKg / step
				if math.Abs(steps-math.Round(steps)) > 1e-9 {
					t.Fatalf("billable %v is not a multiple of %v", w.BillableKg, step)
				}
			}
		}
	}
}
