package survey

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

// squarePoly builds a closed square ring in working-CRS meters.
func squarePoly(x, y, side float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x, y},
		{x + side, y},
		{x + side, y + side},
		{x, y + side},
		{x, y},
	}}
}

// sideForHa returns the square side length giving the requested area.
func sideForHa(ha float64) float64 {
	return math.Sqrt(ha * 10000)
}

func TestAreaHa(t *testing.T) {
	// 100 m x 100 m = 1 ha
	poly := squarePoly(530000, 4890000, 100)
	got := AreaHa(poly)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected 1 ha, got %f", got)
	}

	poly = squarePoly(0, 0, sideForHa(95))
	got = AreaHa(poly)
	if math.Abs(got-95.0) > 1e-6 {
		t.Errorf("Expected 95 ha, got %f", got)
	}
}

func TestSizeRuleClassify(t *testing.T) {
	rule := SizeRule{MediumMinHa: 10, LargeMinHa: 80}

	cases := []struct {
		areaHa float64
		want   SizeClass
	}{
		{0.5, SizeSmall},
		{9.999, SizeSmall},
		{10, SizeMedium}, // boundary ties to the larger class
		{79.999, SizeMedium},
		{80, SizeLarge}, // boundary ties to the larger class
		{500, SizeLarge},
	}

	for _, tc := range cases {
		if got := rule.Classify(tc.areaHa); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.areaHa, got, tc.want)
		}
	}
}

func TestSizeRuleClassifyIsTotal(t *testing.T) {
	rule := SizeRule{MediumMinHa: 10, LargeMinHa: 80}

	// Exactly one class for any area, including the boundaries.
	for area := 0.0; area <= 200.0; area += 0.25 {
		got := rule.Classify(area)
		if got != SizeSmall && got != SizeMedium && got != SizeLarge {
			t.Fatalf("Classify(%v) returned unknown class %q", area, got)
		}
	}
}

func TestBufferRuleMarginFor(t *testing.T) {
	rule := BufferRule{ThresholdHa: 10, LargeM: 100, SmallM: 40}

	if got := rule.MarginFor(5); got != 40 {
		t.Errorf("MarginFor(5) = %v, want 40", got)
	}
	if got := rule.MarginFor(10); got != 40 {
		t.Errorf("MarginFor(10) = %v, want 40 (threshold is strictly-over)", got)
	}
	if got := rule.MarginFor(95); got != 100 {
		t.Errorf("MarginFor(95) = %v, want 100", got)
	}
}
