package survey

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NamedPolygon is one named feature from an input file, already projected
// to the working CRS.
type NamedPolygon struct {
	Name    string
	Polygon orb.Polygon
}

// LoadPolygons reads named polygons from a GeoJSON or KML file (selected by
// extension). Input coordinates must be geographic EPSG:4326; everything is
// projected to UTM zone 19N on load. Names are required and must be unique
// within the file. Elevation values and description attributes are dropped.
func LoadPolygons(path string) ([]NamedPolygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("polygon file not found: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var polys []NamedPolygon
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kml":
		polys, err = parseKML(data)
	case ".geojson", ".json":
		polys, err = parseGeoJSON(data)
	default:
		return nil, fmt.Errorf("%s: unsupported geometry format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	seen := make(map[string]bool, len(polys))
	for i := range polys {
		name := strings.TrimSpace(polys[i].Name)
		if name == "" {
			return nil, fmt.Errorf("%s: feature %d has no name", path, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrDuplicateName, name)
		}
		seen[name] = true
		polys[i].Name = name

		if err := checkGeographic(polys[i].Polygon); err != nil {
			return nil, fmt.Errorf("%s: feature %q: %w", path, name, err)
		}
		polys[i].Polygon = projectPolygonToUTM(closeRings(polys[i].Polygon))
	}

	sort.Slice(polys, func(i, j int) bool { return polys[i].Name < polys[j].Name })
	return polys, nil
}

// parseGeoJSON extracts named polygon features. Property keys are matched
// case-insensitively since hand-drawn exports vary ("Name" vs "name").
func parseGeoJSON(data []byte) ([]NamedPolygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing GeoJSON: %w", err)
	}

	var polys []NamedPolygon
	for i, f := range fc.Features {
		name := ""
		for key, value := range f.Properties {
			if strings.EqualFold(key, "name") {
				if s, ok := value.(string); ok {
					name = s
				}
			}
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polys = append(polys, NamedPolygon{Name: name, Polygon: g})
		default:
			return nil, fmt.Errorf("feature %d (%q): unsupported geometry type %T", i, name, f.Geometry)
		}
	}
	return polys, nil
}

// KML as exported by Google Earth: Placemarks carrying a Polygon, possibly
// nested in Folders. Only the outer boundary is read; hand-drawn site
// polygons never carry holes.
type kmlRoot struct {
	XMLName  xml.Name     `xml:"kml"`
	Document kmlContainer `xml:"Document"`
}

type kmlContainer struct {
	Folders    []kmlContainer `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name    string      `xml:"name"`
	Polygon *kmlPolygon `xml:"Polygon"`
}

type kmlPolygon struct {
	Coordinates string `xml:"outerBoundaryIs>LinearRing>coordinates"`
}

func parseKML(data []byte) ([]NamedPolygon, error) {
	var root kmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing KML: %w", err)
	}

	var polys []NamedPolygon
	var walk func(c kmlContainer) error
	walk = func(c kmlContainer) error {
		for _, pm := range c.Placemarks {
			if pm.Polygon == nil {
				continue
			}
			ring, err := parseKMLCoordinates(pm.Polygon.Coordinates)
			if err != nil {
				return fmt.Errorf("placemark %q: %w", pm.Name, err)
			}
			polys = append(polys, NamedPolygon{Name: pm.Name, Polygon: orb.Polygon{ring}})
		}
		for _, sub := range c.Folders {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root.Document); err != nil {
		return nil, err
	}
	return polys, nil
}

// parseKMLCoordinates parses the whitespace-separated "lon,lat[,alt]"
// tuples of a LinearRing, dropping any elevation component.
func parseKMLCoordinates(s string) (orb.Ring, error) {
	var ring orb.Ring
	for _, tuple := range strings.Fields(s) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("malformed coordinate tuple %q", tuple)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed longitude %q", parts[0])
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed latitude %q", parts[1])
		}
		ring = append(ring, orb.Point{lon, lat})
	}
	if len(ring) < 4 {
		return nil, fmt.Errorf("ring has %d coordinates, need at least 4", len(ring))
	}
	return ring, nil
}

// checkGeographic rejects input that is already projected (a common field
// mistake: exporting the working UTM file instead of the lon/lat one).
func checkGeographic(poly orb.Polygon) error {
	for _, ring := range poly {
		for _, p := range ring {
			if math.Abs(p.Lon()) > 180 || math.Abs(p.Lat()) > 90 {
				return ErrCRSMismatch
			}
		}
	}
	return nil
}

// closeRings ensures every ring ends where it starts. Google Earth closes
// rings itself but GeoJSON drawn in other tools sometimes does not.
func closeRings(poly orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		r := make(orb.Ring, len(ring))
		copy(r, ring)
		if len(r) > 0 && !r[0].Equal(r[len(r)-1]) {
			r = append(r, r[0])
		}
		out[i] = r
	}
	return out
}

// BuildSites classifies loaded site polygons by area.
func BuildSites(polys []NamedPolygon, config *PlanConfig) []*Site {
	sites := make([]*Site, len(polys))
	for i, np := range polys {
		area := AreaHa(np.Polygon)
		sites[i] = &Site{
			Name:    np.Name,
			Polygon: np.Polygon,
			AreaHa:  area,
			Class:   config.SizeClasses.Classify(area),
		}
	}
	return sites
}

// AttachBlocks joins deployment blocks to their owning sites by name and
// validates the relation: every block must resolve to a loaded site, and
// every site must carry exactly the block count its size class demands.
// Returns the blocks in draw order (sorted by name).
func AttachBlocks(sites []*Site, polys []NamedPolygon, config *PlanConfig) ([]*Block, error) {
	byName := make(map[string]*Site, len(sites))
	for _, s := range sites {
		byName[s.Name] = s
	}

	blocks := make([]*Block, 0, len(polys))
	for _, np := range polys {
		siteName, ok := siteNameOf(np.Name)
		if !ok {
			return nil, fmt.Errorf("block %q: name does not end in a block number", np.Name)
		}
		site, ok := byName[siteName]
		if !ok {
			return nil, fmt.Errorf("block %q: no site named %q loaded", np.Name, siteName)
		}

		area := AreaHa(np.Polygon)
		blk := &Block{
			Name:    np.Name,
			Site:    siteName,
			Polygon: np.Polygon,
			AreaHa:  area,
			MarginM: config.Buffer.MarginFor(area),
		}
		site.Blocks = append(site.Blocks, blk)
		blocks = append(blocks, blk)
	}

	for _, s := range sites {
		want := config.PointsPerClass[s.Class]
		if len(s.Blocks) != want {
			return nil, fmt.Errorf("site %q (%s, %.1f ha): has %d blocks, class requires %d",
				s.Name, s.Class, s.AreaHa, len(s.Blocks), want)
		}
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Name < blocks[j].Name })
	return blocks, nil
}

// siteNameOf derives the owning site from a block name by trimming the
// trailing block number ("Great Wass 2" -> "Great Wass").
func siteNameOf(block string) (string, bool) {
	i := strings.LastIndexByte(block, ' ')
	if i <= 0 || i == len(block)-1 {
		return "", false
	}
	for _, r := range block[i+1:] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return block[:i], true
}
