package engine

import (
	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// Detect runs the full pipeline for one elevation: select beams, build
// the plan graph, order edges angularly, trace faces, filter them, and
// resolve the survivors into floor panels.
//
// Detect is a pure function of its inputs. The status distinguishes "no
// panels exist at this level" (StatusNoInput) from a level that produced
// panels; neither is an error, and per-trace failures are reported as
// counts, never by aborting the run.
func Detect(connectors []model.Connector, elevation float64, settings model.DetectSettings) ([]model.FloorPanel, model.DetectReport) {
	report := model.DetectReport{Elevation: elevation}

	beams := SelectBeams(connectors, elevation, settings.Tolerance)
	report.Connectors = len(beams)
	if len(beams) == 0 {
		report.Status = model.StatusNoInput
		return nil, report
	}

	graph, warnings := BuildGraph(beams, settings.Tolerance)
	report.Vertices = len(graph.Coords)
	report.Edges = graph.Edges
	report.Warnings = append(report.Warnings, warnings...)

	sorted := SortNeighbors(graph)

	faces, traceStats := FindFaces(sorted, settings.MaxTraceSteps)
	report.FacesTraced = traceStats.Completed
	report.TracesAborted = traceStats.Aborted
	report.TracesOverflowed = traceStats.Overflowed
	if len(faces) == 0 {
		report.Status = model.StatusNoInput
		return nil, report
	}

	kept, filterStats := FilterFaces(faces, settings.Filter)
	report.DuplicateFaces = filterStats.Duplicates
	report.FacesFiltered = filterStats.Rejected

	var panels []model.FloorPanel
	for _, face := range kept {
		loop := resolveLoop(graph, face)
		if len(loop) < 3 {
			continue
		}
		panels = append(panels, model.NewFloorPanel(elevation, loop, face))
	}
	report.Panels = len(panels)
	if len(panels) == 0 {
		report.Status = model.StatusNoInput
	}

	return panels, report
}

// resolveLoop maps a face's vertex indices back to plan coordinates.
// Indices outside the graph are skipped rather than crashing the run.
func resolveLoop(g *Graph, face []int) model.Loop {
	loop := make(model.Loop, 0, len(face))
	for _, v := range face {
		if v < 0 || v >= len(g.Coords) {
			continue
		}
		loop = append(loop, g.Coords[v].XY())
	}
	return loop
}
