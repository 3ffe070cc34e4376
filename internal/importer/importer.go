// Package importer reads connector (beam) lists from CSV, Excel, and DXF
// files. CSV and Excel import support automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Connectors []model.Connector
	Errors     []string
	Warnings   []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// The six coordinate columns are the two endpoints of each connector.
type ColumnMapping struct {
	ID int
	XI int
	YI int
	ZI int
	XJ int
	YJ int
	ZJ int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id": {"id", "name", "frame", "beam", "member", "label"},
	"xi": {"xi", "x1", "x i", "start x", "ix"},
	"yi": {"yi", "y1", "y i", "start y", "iy"},
	"zi": {"zi", "z1", "z i", "start z", "iz"},
	"xj": {"xj", "x2", "x j", "end x", "jx"},
	"yj": {"yj", "y2", "y j", "end y", "jy"},
	"zj": {"zj", "z2", "z j", "end z", "jz"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected, or
// the positional mapping (id, xi, yi, zi, xj, yj, zj) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, XI: -1, YI: -1, ZI: -1, XJ: -1, YJ: -1, ZJ: -1}

	assign := func(target *int, idx int) {
		if *target == -1 {
			*target = idx
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "id":
					assign(&mapping.ID, i)
				case "xi":
					assign(&mapping.XI, i)
				case "yi":
					assign(&mapping.YI, i)
				case "zi":
					assign(&mapping.ZI, i)
				case "xj":
					assign(&mapping.XJ, i)
				case "yj":
					assign(&mapping.YJ, i)
				case "zj":
					assign(&mapping.ZJ, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: 0, XI: 1, YI: 2, ZI: 3, XJ: 4, YJ: 5, ZJ: 6}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Connector from a row using the given column mapping.
// Returns the connector and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Connector, string) {
	id := getCell(row, mapping.ID)
	if id == "" {
		id = fmt.Sprintf("B%d", count+1)
	}

	coords := [6]float64{}
	names := [6]string{"xi", "yi", "zi", "xj", "yj", "zj"}
	indices := [6]int{mapping.XI, mapping.YI, mapping.ZI, mapping.XJ, mapping.YJ, mapping.ZJ}

	for i, idx := range indices {
		cell := getCell(row, idx)
		if cell == "" {
			return model.Connector{}, fmt.Sprintf("%s: Missing %s value", rowLabel, names[i])
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.Connector{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, names[i], cell)
		}
		coords[i] = v
	}

	return model.Connector{
		ID: id,
		I:  model.Point3D{X: coords[0], Y: coords[1], Z: coords[2]},
		J:  model.Point3D{X: coords[3], Y: coords[4], Z: coords[5]},
	}, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports connectors from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports connectors from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports connectors from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.XI == -1 || mapping.YI == -1 || mapping.ZI == -1 {
			missing = append(missing, "start coordinates (xi, yi, zi)")
		}
		if mapping.XJ == -1 || mapping.YJ == -1 || mapping.ZJ == -1 {
			missing = append(missing, "end coordinates (xj, yj, zj)")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: if the second column is not numeric the first row is
		// an unrecognized header, skip it but keep positional mapping.
		if len(rows[0]) >= 7 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		connector, errMsg := parseRow(row, mapping, rowLabel, len(result.Connectors))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		result.Connectors = append(result.Connectors, connector)
	}

	return result
}
