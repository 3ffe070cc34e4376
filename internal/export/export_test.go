package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// buildTestLevels creates a realistic two-level detection result.
func buildTestLevels() []model.LevelResult {
	bay := func(x, y float64) model.Loop {
		return model.Loop{
			{X: x, Y: y}, {X: x + 10, Y: y}, {X: x + 10, Y: y + 10}, {X: x, Y: y + 10},
		}
	}

	makeLevel := func(z float64, loops []model.Loop) model.LevelResult {
		var panels []model.FloorPanel
		var beams []model.Connector
		for i, loop := range loops {
			panels = append(panels, model.NewFloorPanel(z, loop, []int{0, 1, 2, 3}))
			for j := range loop {
				k := (j + 1) % len(loop)
				beams = append(beams, model.Connector{
					ID: string(rune('A'+i)) + string(rune('1'+j)),
					I:  model.Point3D{X: loop[j].X, Y: loop[j].Y, Z: z},
					J:  model.Point3D{X: loop[k].X, Y: loop[k].Y, Z: z},
				})
			}
		}
		return model.LevelResult{
			Elevation: z,
			Beams:     beams,
			Panels:    panels,
			Report: model.DetectReport{
				Status:      model.StatusOK,
				Elevation:   z,
				Connectors:  len(beams),
				Vertices:    4 * len(loops),
				Edges:       len(beams),
				FacesTraced: 2 * len(loops),
				Panels:      len(panels),
			},
		}
	}

	return []model.LevelResult{
		makeLevel(12, []model.Loop{bay(0, 0), bay(10, 0)}),
		makeLevel(24, []model.Loop{bay(0, 0)}),
	}
}

func assertFileWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

// ─── PDF Tests ─────────────────────────────────────────────

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.pdf")

	if err := ExportPDF(path, buildTestLevels()); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	assertFileWritten(t, path)
}

func TestExportPDF_NoLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.pdf")

	if err := ExportPDF(path, nil); err == nil {
		t.Error("expected an error with no levels")
	}
}

func TestExportPDF_LevelWithoutPanels(t *testing.T) {
	// A level that found nothing still renders its stats line.
	levels := []model.LevelResult{
		{
			Elevation: 12,
			Report:    model.DetectReport{Status: model.StatusNoInput, Elevation: 12},
		},
	}

	path := filepath.Join(t.TempDir(), "plans.pdf")
	if err := ExportPDF(path, levels); err != nil {
		t.Fatalf("ExportPDF failed on empty level: %v", err)
	}
	assertFileWritten(t, path)
}

// ─── Excel Tests ───────────────────────────────────────────

func TestExportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	levels := buildTestLevels()

	if err := ExportExcel(path, levels); err != nil {
		t.Fatalf("ExportExcel failed: %v", err)
	}
	assertFileWritten(t, path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 {
		t.Fatalf("expected summary plus 2 level sheets, got %v", sheets)
	}

	rows, err := f.GetRows("Level 12.00")
	if err != nil {
		t.Fatalf("reading level sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected header plus 2 panel rows, got %d", len(rows))
	}
	if rows[1][0] != levels[0].Panels[0].ID {
		t.Errorf("expected first panel id %s, got %s", levels[0].Panels[0].ID, rows[1][0])
	}
}

func TestExportExcel_NoLevels(t *testing.T) {
	if err := ExportExcel(filepath.Join(t.TempDir(), "schedule.xlsx"), nil); err == nil {
		t.Error("expected an error with no levels")
	}
}

// ─── DXF Tests ─────────────────────────────────────────────

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.dxf")

	if err := ExportDXF(path, buildTestLevels()); err != nil {
		t.Fatalf("ExportDXF failed: %v", err)
	}
	assertFileWritten(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading drawing: %v", err)
	}
	content := string(data)
	if !containsAll(content, "BEAMS", "PANELS_Z12", "PANELS_Z24", "LWPOLYLINE") {
		t.Error("expected layers and polylines in the drawing output")
	}
}

func TestExportDXF_NoLevels(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "plans.dxf"), nil); err == nil {
		t.Error("expected an error with no levels")
	}
}

// ─── Tag Tests ─────────────────────────────────────────────

func TestExportTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.pdf")

	if err := ExportTags(path, buildTestLevels()); err != nil {
		t.Fatalf("ExportTags failed: %v", err)
	}
	assertFileWritten(t, path)
}

func TestExportTags_NoPanels(t *testing.T) {
	levels := []model.LevelResult{{Elevation: 12}}

	if err := ExportTags(filepath.Join(t.TempDir(), "tags.pdf"), levels); err == nil {
		t.Error("expected an error with no panels")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
