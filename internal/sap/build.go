package sap

import (
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/Sina-pz/sap2000-automation/internal/engine"
	"github.com/Sina-pz/sap2000-automation/internal/model"
	"github.com/Sina-pz/sap2000-automation/internal/survey"
)

// BuildConfig tunes the full floor build: detection parameters, the
// uniform loads applied to created panels, and the tolerances used for
// member classification.
type BuildConfig struct {
	Detect model.DetectSettings `json:"detect"`

	DeadLoad     float64 `json:"dead_load"`      // psf, applied to every panel
	LiveLoad     float64 `json:"live_load"`      // psf, applied below the roof
	RoofLiveLoad float64 `json:"roof_live_load"` // psf, applied at the top level

	LengthTolerance   float64 `json:"length_tolerance"`   // ft, beam span grouping
	LocationTolerance float64 `json:"location_tolerance"` // ft, column bound matching
}

func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Detect:            model.DefaultDetectSettings(),
		DeadLoad:          75.0,
		LiveLoad:          50.0,
		RoofLiveLoad:      20.0,
		LengthTolerance:   1.0,
		LocationTolerance: 1.0,
	}
}

// BuildReport summarizes one full build run across all levels.
type BuildReport struct {
	Levels         []model.LevelResult `json:"levels"`
	AreasAttempted int                 `json:"areas_attempted"`
	AreasCreated   int                 `json:"areas_created"`
	AreasFailed    int                 `json:"areas_failed"`
	GroupsCreated  int                 `json:"groups_created"`
}

// BuildFloors runs the whole floor automation against the hosted model:
// identify floor levels, detect and emit panels at each level, assign
// dead and live loads (the top level takes the roof live load), and
// create beam/column groups with auto-select section lists.
//
// The only fatal condition is failing to list connectors; every other
// failure is logged, counted, and skipped so one bad panel or frame
// never stops the rest of the model.
func BuildFloors(client Client, cfg BuildConfig, logger *log.Logger) (*BuildReport, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	connectors, err := client.ListConnectors()
	if err != nil {
		return nil, fmt.Errorf("listing connectors: %w", err)
	}

	report := &BuildReport{}

	if err := client.DefineLoadPattern("DEAD", LoadPatternDead, 1.0); err != nil {
		logger.Printf("defining DEAD pattern: %v", err)
	}
	if err := client.DefineLoadPattern("LIVE", LoadPatternLive, 0.0); err != nil {
		logger.Printf("defining LIVE pattern: %v", err)
	}

	levels := survey.FloorLevels(connectors, cfg.Detect.Tolerance)
	for i, elevation := range levels {
		isRoof := i == len(levels)-1

		panels, detectReport := engine.Detect(connectors, elevation, cfg.Detect)
		if detectReport.Status == model.StatusNoInput {
			logger.Printf("no floor panels at z=%.2f", elevation)
		}

		emit := EmitAreas(client, panels, logger)
		report.AreasAttempted += emit.Attempted
		report.AreasCreated += emit.Created
		report.AreasFailed += emit.Failed

		liveLoad := cfg.LiveLoad
		if isRoof {
			liveLoad = cfg.RoofLiveLoad
		}
		for _, areaID := range emit.AreaIDs {
			if err := client.SetUniformLoad(areaID, "DEAD", cfg.DeadLoad); err != nil {
				logger.Printf("area %s: dead load assignment failed: %v", areaID, err)
			}
			if err := client.SetUniformLoad(areaID, "LIVE", liveLoad); err != nil {
				logger.Printf("area %s: live load assignment failed: %v", areaID, err)
			}
		}

		report.Levels = append(report.Levels, model.LevelResult{
			Elevation: elevation,
			Beams:     engine.SelectBeams(connectors, elevation, cfg.Detect.Tolerance),
			Panels:    panels,
			Report:    detectReport,
		})
	}

	report.GroupsCreated += assignBeamGroups(client, connectors, cfg, logger)
	report.GroupsCreated += assignColumnGroups(client, connectors, cfg, logger)

	return report, nil
}

// assignBeamGroups groups beams by nominal span and assigns each group
// an auto-select section list sized by the span rule of thumb.
func assignBeamGroups(client Client, connectors []model.Connector, cfg BuildConfig, logger *log.Logger) int {
	bySpan := survey.BeamsByLength(connectors, cfg.LengthTolerance)

	spans := make([]float64, 0, len(bySpan))
	for span := range bySpan {
		spans = append(spans, span)
	}
	sort.Float64s(spans)

	created := 0
	for _, span := range spans {
		group := fmt.Sprintf("%.0fft Beams", span)
		if !createGroup(client, group, bySpan[span], logger) {
			continue
		}
		created++
		assignAutoSelect(client, group, survey.BeamSectionCandidates(span), logger)
	}
	return created
}

// assignColumnGroups groups columns by plan location class.
func assignColumnGroups(client Client, connectors []model.Connector, cfg BuildConfig, logger *log.Logger) int {
	classes := survey.ColumnsByLocation(connectors, cfg.LocationTolerance)

	byLocation := []struct {
		location string
		group    string
		frames   []string
	}{
		{"corner", "Corner Columns", classes.Corner},
		{"edge", "Edge Columns", classes.Edge},
		{"interior", "Interior Columns", classes.Interior},
	}

	created := 0
	for _, c := range byLocation {
		if len(c.frames) == 0 {
			continue
		}
		if !createGroup(client, c.group, c.frames, logger) {
			continue
		}
		created++
		assignAutoSelect(client, c.group, survey.ColumnSectionCandidates(c.location), logger)
	}
	return created
}

func createGroup(client Client, group string, frames []string, logger *log.Logger) bool {
	if err := client.SetGroup(group); err != nil {
		logger.Printf("creating group %s: %v", group, err)
		return false
	}
	for _, frame := range frames {
		if err := client.AssignFrameToGroup(frame, group); err != nil {
			logger.Printf("assigning frame %s to %s: %v", frame, group, err)
		}
	}
	return true
}

func assignAutoSelect(client Client, group string, sections []string, logger *log.Logger) {
	autoList := "AUTO_" + group
	if err := client.SetAutoSelectList(autoList, sections, sections[0]); err != nil {
		logger.Printf("defining auto-select list %s: %v", autoList, err)
		return
	}
	if err := client.AssignSectionToGroup(group, autoList); err != nil {
		logger.Printf("assigning %s to group %s: %v", autoList, group, err)
	}
}
