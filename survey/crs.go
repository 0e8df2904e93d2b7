package survey

import (
	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

// All working computations happen in UTM zone 19N (EPSG:32619); interchange
// files use geographic EPSG:4326. The transforms below are the only place
// the two systems meet.
var (
	lonLatToUTM = wgs84.LonLat().To(wgs84.UTM(19, true))
	utmToLonLat = wgs84.UTM(19, true).To(wgs84.LonLat())
)

// ProjectToUTM converts a lon/lat point to UTM zone 19N easting/northing
// in meters.
func ProjectToUTM(p orb.Point) orb.Point {
	east, north, _ := lonLatToUTM(p.Lon(), p.Lat(), 0)
	return orb.Point{east, north}
}

// ProjectToLonLat converts a UTM zone 19N point back to lon/lat.
func ProjectToLonLat(p orb.Point) orb.Point {
	lon, lat, _ := utmToLonLat(p.X(), p.Y(), 0)
	return orb.Point{lon, lat}
}

// projectPolygonToUTM projects every ring vertex to the working CRS.
func projectPolygonToUTM(poly orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		r := make(orb.Ring, len(ring))
		for j, p := range ring {
			r[j] = ProjectToUTM(p)
		}
		out[i] = r
	}
	return out
}
