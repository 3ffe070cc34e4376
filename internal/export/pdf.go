// Package export renders detection results to shareable formats: PDF
// floor plans, Excel panel schedules, DXF drawings, and QR-coded panel
// tags.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// panelColor represents an RGB fill color for a drawn panel.
type panelColor struct {
	R, G, B int
}

var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document of the detection results. Each
// level is rendered on its own page as a plan view (beams grey, panels
// colored, local-axis angle annotated), followed by a summary page.
func ExportPDF(path string, levels []model.LevelResult) error {
	if len(levels) == 0 {
		return fmt.Errorf("no levels to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, level := range levels {
		pdf.AddPage()
		renderLevelPage(pdf, level)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, levels)

	return pdf.OutputFileAndClose(path)
}

// renderLevelPage draws one level's plan on the current PDF page.
func renderLevelPage(pdf *fpdf.Fpdf, level model.LevelResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Floor plan at z=%.2f", level.Elevation)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	r := level.Report
	stats := fmt.Sprintf("Status: %s | Beams: %d | Vertices: %d | Faces traced: %d | Panels: %d",
		r.Status, r.Connectors, r.Vertices, r.FacesTraced, r.Panels)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	minP, maxP := planBounds(level)
	planW := maxP.X - minP.X
	planH := maxP.Y - minP.Y
	if planW <= 0 || planH <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/planW, drawHeight/planH)

	canvasW := planW * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// PDF y grows downward; flip the plan so north stays up.
	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-minP.X)*scale, offsetY + (maxP.Y-p.Y)*scale
	}

	// Panels first so beam lines stay visible on top.
	for i, panel := range level.Panels {
		col := panelColors[i%len(panelColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)

		points := make([]fpdf.PointType, len(panel.Loop))
		for j, p := range panel.Loop {
			x, y := toPage(p)
			points[j] = fpdf.PointType{X: x, Y: y}
		}
		pdf.Polygon(points, "FD")

		// Panel id and axis angle at the loop centroid
		cx, cy := loopCentroid(panel.Loop)
		label := fmt.Sprintf("%s / %.0f\xb0", panel.ID, panel.LocalAxisDeg)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(0, 0, 0)
		labelW := pdf.GetStringWidth(label)
		lx, ly := toPage(model.Point2D{X: cx, Y: cy})
		pdf.SetXY(lx-labelW/2, ly-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}

	pdf.SetDrawColor(90, 90, 90)
	pdf.SetLineWidth(0.5)
	for _, beam := range level.Beams {
		x1, y1 := toPage(beam.I.XY())
		x2, y2 := toPage(beam.J.XY())
		pdf.Line(x1, y1, x2, y2)
	}

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws overall statistics across all levels.
func renderSummaryPage(pdf *fpdf.Fpdf, levels []model.LevelResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Detection Summary", "", 0, "L", false, 0, "")

	y := drawAreaTop
	pdf.SetFont("Helvetica", "B", 9)
	headers := []string{"Elevation", "Beams", "Vertices", "Edges", "Faces", "Aborted", "Panels", "Status"}
	widths := []float64{30, 25, 25, 25, 25, 25, 25, 30}
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, h, "B", 0, "L", false, 0, "")
		x += widths[i]
	}
	y += 7

	totalPanels := 0
	pdf.SetFont("Helvetica", "", 9)
	for _, level := range levels {
		r := level.Report
		cells := []string{
			fmt.Sprintf("%.2f", level.Elevation),
			fmt.Sprintf("%d", r.Connectors),
			fmt.Sprintf("%d", r.Vertices),
			fmt.Sprintf("%d", r.Edges),
			fmt.Sprintf("%d", r.FacesTraced),
			fmt.Sprintf("%d", r.TracesAborted+r.TracesOverflowed),
			fmt.Sprintf("%d", r.Panels),
			r.Status.String(),
		}
		x = marginLeft
		for i, c := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[i], 5, c, "", 0, "L", false, 0, "")
			x += widths[i]
		}
		y += 6
		totalPanels += r.Panels
	}

	y += 4
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	total := fmt.Sprintf("Total: %d panels across %d levels", totalPanels, len(levels))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, total, "", 0, "L", false, 0, "")
}

// planBounds returns the plan bounding box across a level's beams and panels.
func planBounds(level model.LevelResult) (min, max model.Point2D) {
	min = model.Point2D{X: math.Inf(1), Y: math.Inf(1)}
	max = model.Point2D{X: math.Inf(-1), Y: math.Inf(-1)}

	grow := func(p model.Point2D) {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}

	for _, b := range level.Beams {
		grow(b.I.XY())
		grow(b.J.XY())
	}
	for _, panel := range level.Panels {
		for _, p := range panel.Loop {
			grow(p)
		}
	}

	if math.IsInf(min.X, 1) {
		return model.Point2D{}, model.Point2D{}
	}
	return min, max
}

// loopCentroid returns the vertex average of a loop, good enough for
// label placement on convex bays.
func loopCentroid(loop model.Loop) (float64, float64) {
	if len(loop) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, p := range loop {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(loop))
	return sx / n, sy / n
}
