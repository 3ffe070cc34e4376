// Package survey derives summary classifications from a model's
// connector set: distinct floor elevations, beams grouped by span, and
// columns grouped by plan location. These feed group assignment and
// section selection in the hosted model.
package survey

import (
	"math"
	"sort"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// horizontalSlack is the elevation difference below which a connector
// counts as a horizontal beam rather than a column.
const horizontalSlack = 0.1

// FloorLevels returns the distinct elevations above ground at which
// connector endpoints sit, quantized to the tolerance grid and sorted
// ascending. Ground level (z within tolerance of 0) is excluded.
func FloorLevels(connectors []model.Connector, tolerance float64) []float64 {
	seen := make(map[int64]bool)
	var levels []float64

	record := func(z float64) {
		if z <= tolerance {
			return
		}
		step := int64(math.Round(z / tolerance))
		if seen[step] {
			return
		}
		seen[step] = true
		levels = append(levels, float64(step)*tolerance)
	}

	for _, c := range connectors {
		record(c.I.Z)
		record(c.J.Z)
	}

	sort.Float64s(levels)
	return levels
}

// BeamsByLength groups horizontal connectors by their plan length
// rounded to the nearest multiple of lengthTolerance. Beams of the same
// nominal span share section candidates downstream.
func BeamsByLength(connectors []model.Connector, lengthTolerance float64) map[float64][]string {
	groups := make(map[float64][]string)
	for _, c := range connectors {
		if !c.IsHorizontal(horizontalSlack) {
			continue
		}
		rounded := math.Round(c.Length()/lengthTolerance) * lengthTolerance
		groups[rounded] = append(groups[rounded], c.ID)
	}
	return groups
}

// ColumnClasses holds vertical members grouped by plan location.
type ColumnClasses struct {
	Corner   []string
	Edge     []string
	Interior []string
}

// ColumnsByLocation classifies vertical connectors as corner, edge, or
// interior columns against the plan bounding box of all endpoints. The
// column's base (lower endpoint) decides its position.
func ColumnsByLocation(connectors []model.Connector, tolerance float64) ColumnClasses {
	var classes ColumnClasses
	if len(connectors) == 0 {
		return classes
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, c := range connectors {
		for _, p := range []model.Point3D{c.I, c.J} {
			xMin = math.Min(xMin, p.X)
			xMax = math.Max(xMax, p.X)
			yMin = math.Min(yMin, p.Y)
			yMax = math.Max(yMax, p.Y)
		}
	}

	for _, c := range connectors {
		if c.IsHorizontal(horizontalSlack) {
			continue
		}
		base := c.I
		if c.J.Z < c.I.Z {
			base = c.J
		}

		onXBound := math.Abs(base.X-xMin) < tolerance || math.Abs(base.X-xMax) < tolerance
		onYBound := math.Abs(base.Y-yMin) < tolerance || math.Abs(base.Y-yMax) < tolerance

		switch {
		case onXBound && onYBound:
			classes.Corner = append(classes.Corner, c.ID)
		case onXBound || onYBound:
			classes.Edge = append(classes.Edge, c.ID)
		default:
			classes.Interior = append(classes.Interior, c.ID)
		}
	}

	return classes
}
