package survey

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Sampler draws one random point per deployment block under a global
// minimum pairwise distance across all drawn points. The random source is
// an explicit seeded instance, never package-global state, so a plan run is
// reproducible from its config seed alone.
type Sampler struct {
	MinDistance float64
	MaxAttempts int

	rng *rand.Rand
}

// NewSampler creates a sampler with the given seed, minimum pairwise
// distance in meters, and per-point placement attempt bound.
func NewSampler(seed int64, minDistance float64, maxAttempts int) *Sampler {
	return &Sampler{
		MinDistance: minDistance,
		MaxAttempts: maxAttempts,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Draw samples exactly one point per block, in the given order. Each point
// is uniform within its block's eroded region and at least MinDistance from
// every previously placed point, including points on other sites. Exhausting
// the attempt bound yields a ConstraintUnsatisfiableError; the whole draw
// aborts on the first failing block.
func (s *Sampler) Draw(blocks []*Block) ([]DeployPoint, error) {
	points := make([]DeployPoint, 0, len(blocks))
	for _, blk := range blocks {
		erosion, err := NewErosion(blk.Polygon, blk.MarginM)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", blk.Name, err)
		}

		pt, ok := s.drawOne(erosion, points)
		if !ok {
			return nil, &ConstraintUnsatisfiableError{Block: blk.Name, Attempts: s.MaxAttempts}
		}
		points = append(points, DeployPoint{Name: blk.Name, Block: blk.Name, Point: pt})
	}
	return points, nil
}

// drawOne rejection-samples the eroded region's bounding window. A candidate
// is discarded when it misses the region or lands too close to an earlier
// point; both count against the attempt bound.
func (s *Sampler) drawOne(erosion *Erosion, placed []DeployPoint) (orb.Point, bool) {
	b := erosion.Bound()
	w := b.Max.X() - b.Min.X()
	h := b.Max.Y() - b.Min.Y()

	for attempt := 0; attempt < s.MaxAttempts; attempt++ {
		p := orb.Point{
			b.Min.X() + s.rng.Float64()*w,
			b.Min.Y() + s.rng.Float64()*h,
		}
		if !erosion.Contains(p) {
			continue
		}
		if !s.clears(p, placed) {
			continue
		}
		return p, true
	}
	return orb.Point{}, false
}

// clears reports whether p keeps the minimum distance to every placed point.
func (s *Sampler) clears(p orb.Point, placed []DeployPoint) bool {
	for _, dp := range placed {
		if planar.Distance(p, dp.Point) < s.MinDistance {
			return false
		}
	}
	return true
}
