package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// ExportDXF writes the detection results as a DXF drawing. Beams go on
// a BEAMS layer as LINE entities with full 3D coordinates; each level's
// panels go on their own PANELS layer as closed LWPOLYLINEs.
func ExportDXF(path string, levels []model.LevelResult) error {
	if len(levels) == 0 {
		return fmt.Errorf("no levels to export")
	}

	d := dxf.NewDrawing()

	d.AddLayer("BEAMS", color.White, dxf.DefaultLineType, true)
	for _, level := range levels {
		d.ChangeLayer("BEAMS")
		for _, beam := range level.Beams {
			if _, err := d.Line(beam.I.X, beam.I.Y, beam.I.Z, beam.J.X, beam.J.Y, beam.J.Z); err != nil {
				return fmt.Errorf("writing beam %s: %w", beam.ID, err)
			}
		}

		layerName := fmt.Sprintf("PANELS_Z%.0f", level.Elevation)
		d.AddLayer(layerName, color.Green, dxf.DefaultLineType, true)
		d.ChangeLayer(layerName)
		for _, panel := range level.Panels {
			// Repeat the first vertex so the polyline reads as a
			// closed loop in viewers that ignore the closed flag.
			lwp := entity.NewLwPolyline(len(panel.Loop) + 1)
			for j, p := range panel.Loop {
				lwp.Vertices[j] = []float64{p.X, p.Y}
			}
			lwp.Vertices[len(panel.Loop)] = []float64{panel.Loop[0].X, panel.Loop[0].Y}
			d.AddEntity(lwp)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("saving drawing: %w", err)
	}
	return nil
}
