package survey

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	kml "github.com/twpayne/go-kml/v2"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ExportKML writes the final points as a KML document for field navigation.
// Points are re-projected from the working CRS to geographic EPSG:4326;
// each placemark carries the point name.
func ExportKML(w io.Writer, points []DeployPoint) error {
	doc := kml.Document()
	for _, dp := range points {
		ll := ProjectToLonLat(dp.Point)
		doc.Add(kml.Placemark(
			kml.Name(dp.Name),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: ll.Lon(), Lat: ll.Lat()})),
		))
	}
	return kml.KML(doc).WriteIndent(w, "", "  ")
}

// WriteKMLFile writes the KML export to path, overwriting any existing file.
func WriteKMLFile(path string, points []DeployPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := ExportKML(f, points); err != nil {
		return fmt.Errorf("writing KML to %s: %w", path, err)
	}
	return nil
}

// ExportGeoJSON encodes the final points as a GeoJSON FeatureCollection in
// EPSG:4326 with name and source-block properties.
func ExportGeoJSON(points []DeployPoint) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, dp := range points {
		ll := ProjectToLonLat(dp.Point)
		f := geojson.NewFeature(orb.Point{ll.Lon(), ll.Lat()})
		f.Properties["name"] = dp.Name
		f.Properties["block"] = dp.Block
		fc.Append(f)
	}
	return json.Marshal(fc)
}

// WriteGeoJSONFile writes the GeoJSON export to path, overwriting any
// existing file.
func WriteGeoJSONFile(path string, points []DeployPoint) error {
	data, err := ExportGeoJSON(points)
	if err != nil {
		return fmt.Errorf("encoding GeoJSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
