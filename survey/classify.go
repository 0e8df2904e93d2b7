package survey

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// AreaHa returns the polygon area in hectares. Geometry must already be in
// the working projected CRS so planar area is meaningful.
func AreaHa(poly orb.Polygon) float64 {
	return math.Abs(planar.Area(poly)) / 10000
}
