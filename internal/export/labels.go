package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// TagInfo holds the data encoded into each panel tag's QR code.
type TagInfo struct {
	PanelID      string  `json:"panel"`
	Elevation    float64 `json:"elevation"`
	VertexCount  int     `json:"vertices"`
	Area         float64 `json:"area"`
	LocalAxisDeg float64 `json:"axis_deg"`
}

// Tag sheet layout for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	tagPageMarginTop  = 12.7 // mm
	tagPageMarginLeft = 4.8  // mm
	tagWidth          = 66.7 // mm per label
	tagHeight         = 25.4 // mm per label
	tagCols           = 3
	tagRows           = 10
	tagsPerPage       = tagCols * tagRows
	tagQRSize         = 20.0 // QR code size in mm
	tagPadding        = 2.0  // mm internal padding
)

// ExportTags generates a PDF of QR-coded field tags for all detected
// panels. Each tag carries the panel id, elevation, and geometry, with
// the same metadata encoded as JSON into the QR code. Tags are laid
// out on a standard label sheet format (Avery 5160 / 3 columns x 10
// rows on US Letter).
func ExportTags(path string, levels []model.LevelResult) error {
	var tags []TagInfo
	for _, level := range levels {
		for _, panel := range level.Panels {
			tags = append(tags, TagInfo{
				PanelID:      panel.ID,
				Elevation:    panel.Elevation,
				VertexCount:  len(panel.Loop),
				Area:         panel.Loop.Area(),
				LocalAxisDeg: panel.LocalAxisDeg,
			})
		}
	}

	if len(tags) == 0 {
		return fmt.Errorf("no panels to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%tagsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % tagsPerPage
		col := posOnPage % tagCols
		row := posOnPage / tagCols

		x := tagPageMarginLeft + float64(col)*tagWidth
		y := tagPageMarginTop + float64(row)*tagHeight

		if err := renderTag(pdf, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.PanelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single panel tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, info TagInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, tagWidth, tagHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.PanelID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + tagWidth - tagQRSize - tagPadding
	qrY := y + (tagHeight-tagQRSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, tagQRSize, tagQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + tagPadding
	textW := tagWidth - tagQRSize - 3*tagPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+tagPadding)
	pdf.CellFormat(textW, 4.5, info.PanelID, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+tagPadding+5)
	geom := fmt.Sprintf("%d verts, area %.1f", info.VertexCount, info.Area)
	pdf.CellFormat(textW, 3.5, geom, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+tagPadding+9)
	loc := fmt.Sprintf("z=%.2f, axis %.0f\xb0", info.Elevation, info.LocalAxisDeg)
	pdf.CellFormat(textW, 3, loc, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
