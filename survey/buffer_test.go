package survey

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestErosionContains(t *testing.T) {
	// 1 km square with a 100 m margin.
	erosion, err := NewErosion(squarePoly(0, 0, 1000), 100)
	if err != nil {
		t.Fatalf("NewErosion failed: %v", err)
	}

	cases := []struct {
		name string
		pt   orb.Point
		want bool
	}{
		{"center", orb.Point{500, 500}, true},
		{"just inside margin", orb.Point{101, 500}, true},
		{"on margin line", orb.Point{100, 500}, false}, // strictly inside required
		{"inside polygon but within margin", orb.Point{50, 500}, false},
		{"outside polygon", orb.Point{-50, 500}, false},
		{"corner pocket", orb.Point{150, 150}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := erosion.Contains(tc.pt); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.pt, got, tc.want)
			}
		})
	}
}

func TestErosionBoundaryDistance(t *testing.T) {
	erosion, err := NewErosion(squarePoly(0, 0, 1000), 0)
	if err != nil {
		t.Fatalf("NewErosion failed: %v", err)
	}

	if d := erosion.BoundaryDistance(orb.Point{500, 500}); math.Abs(d-500) > 1e-9 {
		t.Errorf("Expected 500 m to nearest edge, got %f", d)
	}
	if d := erosion.BoundaryDistance(orb.Point{100, 500}); math.Abs(d-100) > 1e-9 {
		t.Errorf("Expected 100 m to nearest edge, got %f", d)
	}
	// Distance is to the boundary edge, not zero inside the fill.
	if d := erosion.BoundaryDistance(orb.Point{10, 10}); math.Abs(d-10) > 1e-9 {
		t.Errorf("Expected 10 m to nearest edge, got %f", d)
	}
}

func TestNewErosionEliminatesPolygon(t *testing.T) {
	// 60 m square cannot survive a 40 m inward margin.
	_, err := NewErosion(squarePoly(0, 0, 60), 40)
	if err == nil {
		t.Fatal("Expected error for margin that eliminates the polygon")
	}
	if !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Expected ErrEmptyBuffer, got %v", err)
	}
}

func TestNewErosionRejectsBadInput(t *testing.T) {
	if _, err := NewErosion(orb.Polygon{}, 10); err == nil {
		t.Error("Expected error for empty polygon")
	}
	if _, err := NewErosion(squarePoly(0, 0, 1000), -5); err == nil {
		t.Error("Expected error for negative margin")
	}
}
