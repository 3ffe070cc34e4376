package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// ExportExcel writes a panel schedule workbook. Each level gets its own
// sheet listing the panels with their geometry, plus a Summary sheet.
func ExportExcel(path string, levels []model.LevelResult) error {
	if len(levels) == 0 {
		return fmt.Errorf("no levels to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}

	summaryHeaders := []string{"Level", "Elevation", "Beams", "Panels", "Status"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summary, cell, h)
	}

	for li, level := range levels {
		sheet := fmt.Sprintf("Level %.2f", level.Elevation)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}

		headers := []string{"Panel ID", "Vertices", "Area", "Local Axis (deg)", "Min X", "Min Y", "Max X", "Max Y"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for pi, panel := range level.Panels {
			row := pi + 2
			minP, maxP := panel.Loop.BoundingBox()
			values := []interface{}{
				panel.ID,
				len(panel.Loop),
				panel.Loop.Area(),
				panel.LocalAxisDeg,
				minP.X, minP.Y, maxP.X, maxP.Y,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
		}

		row := li + 2
		summaryValues := []interface{}{
			sheet,
			level.Elevation,
			level.Report.Connectors,
			level.Report.Panels,
			level.Report.Status.String(),
		}
		for i, v := range summaryValues {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(summary, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
