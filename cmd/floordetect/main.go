// floordetect reads a beam model (CSV, Excel, or DXF), detects the
// enclosed floor panels on each level, records the area and load
// assignments that would be pushed to the analysis model, and exports
// the results in several formats.
//
// Build:
//
//	go build -o floordetect ./cmd/floordetect
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sina-pz/sap2000-automation/internal/engine"
	"github.com/Sina-pz/sap2000-automation/internal/export"
	"github.com/Sina-pz/sap2000-automation/internal/importer"
	"github.com/Sina-pz/sap2000-automation/internal/model"
	"github.com/Sina-pz/sap2000-automation/internal/project"
	"github.com/Sina-pz/sap2000-automation/internal/sap"
	"github.com/Sina-pz/sap2000-automation/internal/survey"
)

var (
	inputPath    = flag.String("input", "", "Input file with beam geometry (.csv, .xlsx, or .dxf)")
	elevation    = flag.Float64("elevation", math.NaN(), "Detect a single elevation only (default: every level found)")
	tolerance    = flag.Float64("tolerance", 0, "Vertex merge tolerance (0 uses the saved settings)")
	buildModel   = flag.Bool("build", false, "Run the full build: areas, load patterns, uniform loads, and member groups")
	settingsPath = flag.String("settings", "", "Build settings file (default: "+project.DefaultConfigPath()+")")
	pdfOut       = flag.String("pdf", "", "Write floor plan report to this PDF file")
	xlsxOut      = flag.String("xlsx", "", "Write panel schedule to this Excel workbook")
	dxfOut       = flag.String("dxf", "", "Write beams and panels to this DXF drawing")
	tagsOut      = flag.String("tags", "", "Write QR panel tags to this PDF file")
	requestsOut  = flag.String("requests", "", "Write the recorded model requests to this JSON file")
	quiet        = flag.Bool("quiet", false, "Suppress progress logging")
)

func main() {
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var logger *log.Logger
	if !*quiet {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	cfg := loadSettings()
	if *tolerance > 0 {
		cfg.Detect.Tolerance = *tolerance
	}

	connectors := importConnectors(*inputPath)
	if logger != nil {
		logger.Printf("imported %d connectors from %s", len(connectors), *inputPath)
	}

	recorder := sap.NewRecorder(connectors)

	var levels []model.LevelResult
	if *buildModel {
		report, err := sap.BuildFloors(recorder, cfg, logger)
		if err != nil {
			log.Fatalf("build failed: %v", err)
		}
		levels = report.Levels
		fmt.Printf("Build complete: %d areas created (%d failed), %d groups defined\n",
			report.AreasCreated, report.AreasFailed, report.GroupsCreated)
	} else {
		levels = detectLevels(connectors, cfg, logger)
	}

	for _, level := range levels {
		r := level.Report
		fmt.Printf("z=%-8.2f %-9s beams=%-4d panels=%-4d (traced %d, filtered %d, duplicates %d)\n",
			level.Elevation, r.Status, r.Connectors, r.Panels, r.FacesTraced, r.FacesFiltered, r.DuplicateFaces)
		for _, w := range r.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	writeExports(levels, recorder)
}

// loadSettings reads the build configuration, falling back to defaults
// when no settings file exists yet.
func loadSettings() sap.BuildConfig {
	path := *settingsPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadBuildConfig(path)
	if err != nil {
		log.Fatalf("loading settings from %s: %v", path, err)
	}
	return cfg
}

// importConnectors dispatches on the input file extension.
func importConnectors(path string) []model.Connector {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		result = importer.ImportCSV(path)
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path)
	default:
		log.Fatalf("unsupported input format: %s (want .csv, .xlsx, or .dxf)", path)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if len(result.Connectors) == 0 {
		log.Fatalf("no connectors imported from %s", path)
	}
	return result.Connectors
}

// detectLevels runs detection on the requested elevation, or on every
// floor level found in the model.
func detectLevels(connectors []model.Connector, cfg sap.BuildConfig, logger *log.Logger) []model.LevelResult {
	elevations := []float64{*elevation}
	if math.IsNaN(*elevation) {
		elevations = survey.FloorLevels(connectors, cfg.Detect.Tolerance)
		if len(elevations) == 0 {
			log.Fatalf("no floor levels above z=%g found in model", cfg.Detect.Tolerance)
		}
	}

	levels := make([]model.LevelResult, 0, len(elevations))
	for _, z := range elevations {
		panels, report := engine.Detect(connectors, z, cfg.Detect)
		if logger != nil {
			logger.Printf("z=%.2f: %d panels from %d traced faces", z, len(panels), report.FacesTraced)
		}
		levels = append(levels, model.LevelResult{
			Elevation: z,
			Beams:     engine.SelectBeams(connectors, z, cfg.Detect.Tolerance),
			Panels:    panels,
			Report:    report,
		})
	}
	return levels
}

// writeExports runs each requested export, treating individual export
// failures as fatal.
func writeExports(levels []model.LevelResult, recorder *sap.Recorder) {
	if *pdfOut != "" {
		if err := export.ExportPDF(*pdfOut, levels); err != nil {
			log.Fatalf("pdf export: %v", err)
		}
		fmt.Printf("wrote %s\n", *pdfOut)
	}
	if *xlsxOut != "" {
		if err := export.ExportExcel(*xlsxOut, levels); err != nil {
			log.Fatalf("excel export: %v", err)
		}
		fmt.Printf("wrote %s\n", *xlsxOut)
	}
	if *dxfOut != "" {
		if err := export.ExportDXF(*dxfOut, levels); err != nil {
			log.Fatalf("dxf export: %v", err)
		}
		fmt.Printf("wrote %s\n", *dxfOut)
	}
	if *tagsOut != "" {
		if err := export.ExportTags(*tagsOut, levels); err != nil {
			log.Fatalf("tag export: %v", err)
		}
		fmt.Printf("wrote %s\n", *tagsOut)
	}
	if *requestsOut != "" {
		if err := recorder.WriteRequestLog(*requestsOut); err != nil {
			log.Fatalf("request log: %v", err)
		}
		fmt.Printf("wrote %s\n", *requestsOut)
	}
}
