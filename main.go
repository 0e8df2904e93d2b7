package main

import (
	"flag"
	"fmt"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	thresholdsMode = flag.Bool("thresholds", false, "Derive per-species confidence thresholds from validation tables")
	planMode       = flag.Bool("plan", false, "Generate ARU deployment points from site and block polygons")

	// Threshold mode options
	resultsDir      = flag.String("results-dir", ".", "Directory containing reviewed selection tables (*.txt)")
	targetPrecision = flag.Float64("target-precision", 0.9, "Minimum precision a confidence threshold must achieve")
	reportFile      = flag.String("report", "", "Write the threshold report to this file instead of stdout")

	// Plan mode options
	configFile  = flag.String("config", "plan.yaml", "Path to the survey plan configuration file")
	sitesFile   = flag.String("sites", "sites.geojson", "Site polygon file (GeoJSON or KML, EPSG:4326)")
	blocksFile  = flag.String("blocks", "blocks.geojson", "Deployment block polygon file (GeoJSON or KML, EPSG:4326)")
	outputFile  = flag.String("output", "deployment-points.kml", "Output KML point file for field navigation")
	geojsonFile = flag.String("geojson", "", "Also write the points as GeoJSON to this file")
	mapFile     = flag.String("map", "", "Render an inspection map to this file (.svg or .png)")
	publish     = flag.Bool("publish", false, "Publish the final points to the configured MQTT broker")
)

func main() {
	flag.Parse()
	fmt.Printf("arufield version: %s\n", Version)

	app := NewApp()
	app.ApplyOptions(AppOptions{
		ResultsDir:      *resultsDir,
		TargetPrecision: *targetPrecision,
		ReportFile:      *reportFile,
		ConfigFile:      *configFile,
		SitesFile:       *sitesFile,
		BlocksFile:      *blocksFile,
		OutputFile:      *outputFile,
		GeoJSONFile:     *geojsonFile,
		MapFile:         *mapFile,
		Publish:         *publish,
	})

	if *thresholdsMode {
		app.RunThresholds()
		return
	}

	if *planMode {
		app.RunPlan()
		return
	}

	fmt.Println("arufield: acoustic-monitoring fieldwork analysis")
	fmt.Println("Use -thresholds to derive confidence thresholds from reviewed selection tables")
	fmt.Println("Use -plan to generate ARU deployment points from site and block polygons")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()
}
