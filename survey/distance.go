package survey

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/mat"
)

// distanceTolerance absorbs floating-point noise when asserting the
// minimum-spacing constraint on computed distances.
const distanceTolerance = 1e-6

// ShorelineDistances computes the points x sites matrix of distances from
// every sampled point to every site boundary. Site boundaries are measured
// as linear rings, so a point inside a site still gets its distance to the
// shoreline edge.
func ShorelineDistances(points []DeployPoint, sites []*Site) *mat.Dense {
	m := mat.NewDense(len(points), len(sites), nil)
	for i, dp := range points {
		for j, site := range sites {
			min := -1.0
			for _, ring := range site.Polygon {
				d := planar.DistanceFrom(orb.LineString(ring), dp.Point)
				if min < 0 || d < min {
					min = d
				}
			}
			m.Set(i, j, min)
		}
	}
	return m
}

// PairwiseDistances computes the square points x points distance matrix.
func PairwiseDistances(points []DeployPoint) *mat.Dense {
	m := mat.NewDense(len(points), len(points), nil)
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := planar.Distance(points[i].Point, points[j].Point)
			m.Set(i, j, d)
			m.Set(j, i, d)
		}
	}
	return m
}

// RowMins reduces a matrix to its per-row minimum.
func RowMins(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	mins := make([]float64, rows)
	for i := 0; i < rows; i++ {
		min := -1.0
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); min < 0 || v < min {
				min = v
			}
		}
		mins[i] = min
	}
	return mins
}

// NearestNeighbors reduces the pairwise matrix to each point's distance to
// the nearest other point. Self-distances are skipped, and points whose
// site is excluded (alone on their island, no neighbour to compare against)
// are dropped from the result. Returned slices are parallel.
func NearestNeighbors(points []DeployPoint, pairwise *mat.Dense, excluded func(blockName string) bool) ([]string, []float64) {
	var names []string
	var mins []float64
	for i, dp := range points {
		if excluded != nil && excluded(dp.Block) {
			continue
		}
		min := -1.0
		for j := range points {
			if j == i {
				continue
			}
			if v := pairwise.At(i, j); min < 0 || v < min {
				min = v
			}
		}
		if min < 0 {
			continue
		}
		names = append(names, dp.Name)
		mins = append(mins, min)
	}
	return names, mins
}

// Summary holds the inspection statistics for one distance reduction.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes mean, standard deviation and range of a reduction.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("no values to summarize")
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return Summary{}, err
	}
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return Summary{}, err
	}
	return Summary{N: len(values), Mean: mean, StdDev: sd, Min: min, Max: max}, nil
}

// DistanceReport bundles both reductions for one plan run.
type DistanceReport struct {
	Shoreline Summary
	Neighbor  Summary

	// Names and minima for every point included in the neighbour check.
	NeighborNames []string
	NeighborMins  []float64
}

// ValidateDistances runs both reductions and asserts the plan constraints
// within floating-point tolerance: every nearest-neighbour distance must
// meet the configured minimum, and every point must sit at least its block's
// margin from the nearest site shoreline. The shoreline check is not implied
// by in-buffer containment: blocks are joined to sites by name only, so a
// hand-drawn block protruding past its site's shoreline would otherwise pass
// silently.
func ValidateDistances(points []DeployPoint, blocks []*Block, sites []*Site, config *PlanConfig) (*DistanceReport, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to validate")
	}

	report := &DistanceReport{}

	shoreMins := RowMins(ShorelineDistances(points, sites))
	shore, err := Summarize(shoreMins)
	if err != nil {
		return nil, fmt.Errorf("shoreline reduction: %w", err)
	}
	report.Shoreline = shore

	margins := make(map[string]float64, len(blocks))
	for _, blk := range blocks {
		margins[blk.Name] = blk.MarginM
	}
	for i, dp := range points {
		margin, ok := margins[dp.Block]
		if !ok {
			return report, fmt.Errorf("point %q: no block named %q loaded", dp.Name, dp.Block)
		}
		if shoreMins[i] < margin-distanceTolerance {
			return report, fmt.Errorf("point %q: %.1f m from the nearest shoreline, block margin is %.0f m",
				dp.Name, shoreMins[i], margin)
		}
	}

	excluded := func(blockName string) bool {
		siteName, ok := siteNameOf(blockName)
		return ok && config.IsSolo(siteName)
	}
	names, mins := NearestNeighbors(points, PairwiseDistances(points), excluded)
	report.NeighborNames = names
	report.NeighborMins = mins

	if len(mins) > 0 {
		neighbor, err := Summarize(mins)
		if err != nil {
			return nil, fmt.Errorf("nearest-neighbour reduction: %w", err)
		}
		report.Neighbor = neighbor

		for i, d := range mins {
			if d < config.MinDistanceM-distanceTolerance {
				return report, fmt.Errorf("point %q: nearest neighbour at %.1f m, plan requires %.0f m",
					names[i], d, config.MinDistanceM)
			}
		}
	}

	return report, nil
}
