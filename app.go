package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gulfwatch/arufield/survey"
	"github.com/gulfwatch/arufield/validation"
)

// App encapsulates the run options and configuration for one invocation.
type App struct {
	Config *survey.PlanConfig

	ResultsDir      string
	TargetPrecision float64
	ReportFile      string
	ConfigFile      string
	SitesFile       string
	BlocksFile      string
	OutputFile      string
	GeoJSONFile     string
	MapFile         string
	Publish         bool
}

// AppOptions carries parsed CLI options into the App.
type AppOptions struct {
	ResultsDir      string
	TargetPrecision float64
	ReportFile      string
	ConfigFile      string
	SitesFile       string
	BlocksFile      string
	OutputFile      string
	GeoJSONFile     string
	MapFile         string
	Publish         bool
}

// NewApp creates a new App instance.
func NewApp() *App {
	return &App{}
}

// ApplyOptions applies CLI options to the App instance.
func (a *App) ApplyOptions(opts AppOptions) {
	a.ResultsDir = opts.ResultsDir
	a.TargetPrecision = opts.TargetPrecision
	a.ReportFile = opts.ReportFile
	a.ConfigFile = opts.ConfigFile
	a.SitesFile = opts.SitesFile
	a.BlocksFile = opts.BlocksFile
	a.OutputFile = opts.OutputFile
	a.GeoJSONFile = opts.GeoJSONFile
	a.MapFile = opts.MapFile
	a.Publish = opts.Publish
}

// RunThresholds loads every reviewed selection table and writes the
// per-species threshold report.
func (a *App) RunThresholds() {
	results, err := validation.LoadResults(a.ResultsDir)
	if err != nil {
		log.Fatalf("Error loading validation results: %v", err)
	}

	total := 0
	for _, rs := range results {
		total += len(rs.Records)
	}
	fmt.Printf("Loaded %d species, %d validated clips after deduplication\n", len(results), total)

	out := os.Stdout
	if a.ReportFile != "" {
		f, err := os.Create(a.ReportFile)
		if err != nil {
			log.Fatalf("Error creating report file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := validation.WriteReport(out, results, a.TargetPrecision); err != nil {
		log.Fatalf("Error writing threshold report: %v", err)
	}
	if a.ReportFile != "" {
		fmt.Printf("Threshold report written to %s\n", a.ReportFile)
	}
}

// RunPlan generates, validates and exports the ARU deployment points.
func (a *App) RunPlan() {
	config, err := survey.LoadPlanConfig(a.ConfigFile)
	if err != nil {
		log.Fatalf("Error loading plan config: %v", err)
	}

	sitePolys, err := survey.LoadPolygons(a.SitesFile)
	if err != nil {
		log.Fatalf("Error loading site polygons: %v", err)
	}
	blockPolys, err := survey.LoadPolygons(a.BlocksFile)
	if err != nil {
		log.Fatalf("Error loading block polygons: %v", err)
	}

	sites := survey.BuildSites(sitePolys, config)
	for _, site := range sites {
		fmt.Printf("Site %-20s %8.1f ha  %s\n", site.Name, site.AreaHa, site.Class)
	}

	blocks, err := survey.AttachBlocks(sites, blockPolys, config)
	if err != nil {
		log.Fatalf("Error joining blocks to sites: %v", err)
	}
	fmt.Printf("Loaded %d sites, %d deployment blocks (seed %d)\n", len(sites), len(blocks), config.Seed)

	sampler := survey.NewSampler(config.Seed, config.MinDistanceM, config.MaxAttempts)
	points, err := sampler.Draw(blocks)
	if err != nil {
		log.Fatalf("Error sampling deployment points: %v", err)
	}
	fmt.Printf("Sampled %d deployment points\n", len(points))

	report, err := survey.ValidateDistances(points, blocks, sites, config)
	if report != nil {
		printSummary("Distance to nearest shoreline (m)", report.Shoreline)
		if report.Neighbor.N > 0 {
			printSummary("Distance to nearest other point (m)", report.Neighbor)
		}
	}
	if err != nil {
		log.Fatalf("Spacing constraint FAILED: %v", err)
	}
	fmt.Printf("Spacing constraints met: nearest neighbours >= %.0f m, shorelines >= block margins\n", config.MinDistanceM)

	if err := survey.WriteKMLFile(a.OutputFile, points); err != nil {
		log.Fatalf("Error writing KML: %v", err)
	}
	fmt.Printf("Points written to %s (EPSG:4326)\n", a.OutputFile)

	if a.GeoJSONFile != "" {
		if err := survey.WriteGeoJSONFile(a.GeoJSONFile, points); err != nil {
			log.Fatalf("Error writing GeoJSON: %v", err)
		}
		fmt.Printf("Points written to %s (EPSG:4326)\n", a.GeoJSONFile)
	}

	if a.MapFile != "" {
		renderer := survey.NewPlanRenderer(sites, blocks, points, config.MinDistanceM)
		if err := renderer.RenderToFile(a.MapFile); err != nil {
			log.Fatalf("Error rendering inspection map: %v", err)
		}
		fmt.Printf("Inspection map written to %s\n", a.MapFile)
	}

	if a.Publish {
		client, err := survey.ConnectBroker(config.MQTT)
		if err != nil {
			log.Fatalf("Error connecting to MQTT broker: %v", err)
		}
		defer client.Disconnect(250)

		publisher := survey.NewPublisher(client, config.MQTT.Topic)
		if err := publisher.PublishPoints(points); err != nil {
			log.Fatalf("Error publishing points: %v", err)
		}
	}
}

func printSummary(label string, s survey.Summary) {
	fmt.Printf("%s: n=%d mean=%.1f sd=%.1f min=%.1f max=%.1f\n",
		label, s.N, s.Mean, s.StdDev, s.Min, s.Max)
}
