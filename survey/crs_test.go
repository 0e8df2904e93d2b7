package survey

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestProjectRoundTrip(t *testing.T) {
	// Points across the study area (coastal Maine, UTM zone 19N).
	points := []orb.Point{
		{530000, 4890000},
		{465000, 4855000},
		{560000, 4930000},
	}

	for _, p := range points {
		back := ProjectToUTM(ProjectToLonLat(p))
		dx := math.Abs(back.X() - p.X())
		dy := math.Abs(back.Y() - p.Y())
		if dx > 1.0 || dy > 1.0 {
			t.Errorf("Round trip of %v drifted by (%f, %f) m, want sub-meter", p, dx, dy)
		}
	}
}

func TestProjectToLonLatRange(t *testing.T) {
	ll := ProjectToLonLat(orb.Point{530000, 4890000})

	// Zone 19N spans 72W to 66W; the study area sits in mid-coast Maine.
	if ll.Lon() < -72 || ll.Lon() > -66 {
		t.Errorf("Longitude %f outside zone 19 range", ll.Lon())
	}
	if ll.Lat() < 42 || ll.Lat() > 46 {
		t.Errorf("Latitude %f outside study area range", ll.Lat())
	}
}

func TestProjectToUTMRange(t *testing.T) {
	p := ProjectToUTM(orb.Point{-69.0, 44.0})

	if p.X() < 100000 || p.X() > 900000 {
		t.Errorf("Easting %f outside UTM range", p.X())
	}
	if p.Y() < 4800000 || p.Y() > 4950000 {
		t.Errorf("Northing %f implausible for latitude 44N", p.Y())
	}
}
