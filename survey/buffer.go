package survey

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Erosion is a block polygon shrunk inward by a shoreline margin. The
// eroded region is kept as a predicate rather than a rebuilt ring: a point
// belongs to it when it falls inside the source polygon and sits more than
// the margin away from every boundary ring. This sidesteps the degenerate
// geometry a vertex-offset buffer produces on narrow polygons (split or
// self-intersecting rings).
type Erosion struct {
	Source orb.Polygon
	Margin float64
}

// NewErosion builds the eroded region for a polygon. It fails up front when
// the margin provably eliminates the polygon (the margin spans half the
// bounding box), the case that otherwise only surfaces later as sampling
// exhaustion.
func NewErosion(poly orb.Polygon, margin float64) (*Erosion, error) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return nil, fmt.Errorf("empty polygon")
	}
	if margin < 0 {
		return nil, fmt.Errorf("negative margin %v", margin)
	}
	b := poly.Bound()
	if 2*margin >= b.Max.X()-b.Min.X() || 2*margin >= b.Max.Y()-b.Min.Y() {
		return nil, fmt.Errorf("margin %.0f m: %w", margin, ErrEmptyBuffer)
	}
	return &Erosion{Source: poly, Margin: margin}, nil
}

// Contains reports whether p lies strictly inside the eroded region.
func (e *Erosion) Contains(p orb.Point) bool {
	if !planar.PolygonContains(e.Source, p) {
		return false
	}
	return e.BoundaryDistance(p) > e.Margin
}

// BoundaryDistance returns the distance from p to the nearest boundary ring
// of the source polygon. Rings are measured as line strings so the distance
// is to the edge itself, not to the filled region.
func (e *Erosion) BoundaryDistance(p orb.Point) float64 {
	min := -1.0
	for _, ring := range e.Source {
		d := planar.DistanceFrom(orb.LineString(ring), p)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}

// Bound returns the sampling window for the eroded region: the source
// bounding box pulled in by the margin.
func (e *Erosion) Bound() orb.Bound {
	b := e.Source.Bound()
	return orb.Bound{
		Min: orb.Point{b.Min.X() + e.Margin, b.Min.Y() + e.Margin},
		Max: orb.Point{b.Max.X() - e.Margin, b.Max.Y() - e.Margin},
	}
}
