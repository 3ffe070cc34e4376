package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// ImportDXF imports connectors from a DXF drawing. LINE entities map
// directly to connectors with their full 3D endpoints; LWPOLYLINE
// entities contribute one connector per segment at the drawing plane
// (z = 0). Curved entities are skipped with a warning, since curved
// members are outside the detector's scope.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	curvedSkipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			result.Connectors = append(result.Connectors, model.Connector{
				ID: fmt.Sprintf("B%d", len(result.Connectors)+1),
				I:  model.Point3D{X: e.Start[0], Y: e.Start[1], Z: e.Start[2]},
				J:  model.Point3D{X: e.End[0], Y: e.End[1], Z: e.End[2]},
			})

		case *entity.LwPolyline:
			segments := polylineSegments(e)
			if len(segments) == 0 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			for i := range segments {
				segments[i].ID = fmt.Sprintf("B%d", len(result.Connectors)+i+1)
			}
			result.Connectors = append(result.Connectors, segments...)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("LWPOLYLINE imported as %d connectors at z=0", len(segments)))

		case *entity.Circle, *entity.Arc:
			curvedSkipped++

		default:
			// Unsupported entity types are silently skipped
		}
	}

	if curvedSkipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d curved entities (curved members are not supported)", curvedSkipped))
	}

	if len(result.Connectors) == 0 {
		result.Errors = append(result.Errors, "No line entities found in DXF file")
	}

	return result
}

// polylineSegments converts an LWPOLYLINE into one connector per
// segment. A closed polyline contributes the closing segment as well.
// Ids are renumbered by the caller into the drawing-wide sequence.
func polylineSegments(lw *entity.LwPolyline) []model.Connector {
	if len(lw.Vertices) < 2 {
		return nil
	}

	var segments []model.Connector
	add := func(a, b []float64) {
		segments = append(segments, model.Connector{
			I: model.Point3D{X: a[0], Y: a[1]},
			J: model.Point3D{X: b[0], Y: b[1]},
		})
	}

	for i := 0; i < len(lw.Vertices)-1; i++ {
		add(lw.Vertices[i], lw.Vertices[i+1])
	}
	if lw.Closed {
		add(lw.Vertices[len(lw.Vertices)-1], lw.Vertices[0])
	}

	return segments
}
