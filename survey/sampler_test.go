package survey

import (
	"errors"
	"fmt"
	"testing"

	"github.com/paulmach/orb/planar"
)

func TestDrawTwoIslandScenario(t *testing.T) {
	// The reference scenario: "Knight 1" is a 5 ha block (small, 40 m
	// margin), "Great Wass 1" a 95 ha block (large, 100 m margin), on
	// islands about 3 km apart in UTM zone 19N.
	knight := &Block{
		Name:    "Knight 1",
		Site:    "Knight",
		Polygon: squarePoly(530000, 4890000, sideForHa(5)),
		AreaHa:  5,
		MarginM: 40,
	}
	greatWass := &Block{
		Name:    "Great Wass 1",
		Site:    "Great Wass",
		Polygon: squarePoly(533000, 4890000, sideForHa(95)),
		AreaHa:  95,
		MarginM: 100,
	}

	sampler := NewSampler(9382, 250, 100)
	points, err := sampler.Draw([]*Block{knight, greatWass})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("Expected exactly 2 points, got %d", len(points))
	}
	if points[0].Name != "Knight 1" || points[1].Name != "Great Wass 1" {
		t.Errorf("Expected points named after their blocks, got %q and %q",
			points[0].Name, points[1].Name)
	}

	if d := planar.Distance(points[0].Point, points[1].Point); d < 250 {
		t.Errorf("Points only %f m apart, want >= 250", d)
	}

	for i, blk := range []*Block{knight, greatWass} {
		erosion, err := NewErosion(blk.Polygon, blk.MarginM)
		if err != nil {
			t.Fatalf("NewErosion(%s): %v", blk.Name, err)
		}
		if !erosion.Contains(points[i].Point) {
			t.Errorf("Point %q at %v not strictly inside its buffered block",
				points[i].Name, points[i].Point)
		}
	}
}

func TestDrawIsReproducible(t *testing.T) {
	blocks := []*Block{
		{Name: "Knight 1", Polygon: squarePoly(0, 0, 1000), MarginM: 40},
		{Name: "Knight 2", Polygon: squarePoly(2000, 0, 1000), MarginM: 40},
	}

	first, err := NewSampler(9382, 250, 100).Draw(blocks)
	if err != nil {
		t.Fatalf("First draw failed: %v", err)
	}
	second, err := NewSampler(9382, 250, 100).Draw(blocks)
	if err != nil {
		t.Fatalf("Second draw failed: %v", err)
	}

	for i := range first {
		if !first[i].Point.Equal(second[i].Point) {
			t.Errorf("Point %d differs across same-seed draws: %v vs %v",
				i, first[i].Point, second[i].Point)
		}
	}

	third, err := NewSampler(1, 250, 100).Draw(blocks)
	if err != nil {
		t.Fatalf("Third draw failed: %v", err)
	}
	if first[0].Point.Equal(third[0].Point) && first[1].Point.Equal(third[1].Point) {
		t.Error("Different seeds produced identical draws")
	}
}

func TestDrawRespectsGlobalMinimumDistance(t *testing.T) {
	// Nine adjacent 500 m blocks in a row: the constraint must hold across
	// blocks, not just within one.
	var blocks []*Block
	for i := 0; i < 9; i++ {
		blocks = append(blocks, &Block{
			Name:    fmt.Sprintf("Row %d", i+1),
			Polygon: squarePoly(float64(i)*500, 0, 500),
			MarginM: 25,
		})
	}

	points, err := NewSampler(42, 250, 100).Draw(blocks)
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := planar.Distance(points[i].Point, points[j].Point); d < 250-distanceTolerance {
				t.Errorf("Points %d and %d only %f m apart", i, j, d)
			}
		}
	}
}

func TestDrawExhaustsAttempts(t *testing.T) {
	// Two tiny neighbouring blocks with a 10 km minimum: the second point
	// can never clear the first.
	blocks := []*Block{
		{Name: "Shag 1", Polygon: squarePoly(0, 0, 200), MarginM: 0},
		{Name: "Shag 2", Polygon: squarePoly(250, 0, 200), MarginM: 0},
	}

	_, err := NewSampler(9382, 10000, 100).Draw(blocks)
	if err == nil {
		t.Fatal("Expected constraint exhaustion error")
	}

	var constraintErr *ConstraintUnsatisfiableError
	if !errors.As(err, &constraintErr) {
		t.Fatalf("Expected ConstraintUnsatisfiableError, got %v", err)
	}
	if constraintErr.Block != "Shag 2" {
		t.Errorf("Expected failure on block \"Shag 2\", got %q", constraintErr.Block)
	}
	if constraintErr.Attempts != 100 {
		t.Errorf("Expected 100 attempts, got %d", constraintErr.Attempts)
	}
}

func TestDrawFailsOnEliminatedBlock(t *testing.T) {
	blocks := []*Block{
		{Name: "Ledge 1", Polygon: squarePoly(0, 0, 60), MarginM: 40},
	}

	_, err := NewSampler(9382, 250, 100).Draw(blocks)
	if err == nil {
		t.Fatal("Expected error for buffer that eliminates the block")
	}
	if !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Expected ErrEmptyBuffer, got %v", err)
	}
}
