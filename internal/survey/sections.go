package survey

import (
	"math"
	"sort"
)

// Built-in auto-select candidate lists for wide-flange beam sections,
// keyed by nominal depth in inches. Lists are ordered lightest first so
// the design pass starts from the most economical section.
var beamSections = map[int][]string{
	24: {"W24X76", "W24X84", "W24X94", "W24X103", "W24X117"},
	22: {"W21X44", "W21X50", "W21X57", "W21X68", "W21X83"},
	18: {"W18X40", "W18X46", "W18X50", "W18X55", "W18X60"},
	14: {"W14X34", "W14X38", "W14X43", "W14X48", "W14X53"},
	10: {"W10X33", "W10X39", "W10X45", "W10X49", "W10X54"},
}

// Column candidate lists by plan location. Corner columns carry the
// least tributary load, interior columns the most.
var columnSections = map[string][]string{
	"corner":   {"W10X12", "W10X15", "W10X19", "W10X22", "W10X26"},
	"edge":     {"W12X190", "W12X210", "W12X230", "W12X252", "W12X279"},
	"interior": {"W14X193", "W14X211", "W14X233", "W14X257", "W14X283"},
}

// BeamSectionCandidates returns the candidate list for a beam span,
// using the depth-in-inches ≈ span-in-feet rule of thumb and picking the
// closest available nominal depth.
func BeamSectionCandidates(spanFt float64) []string {
	depths := make([]int, 0, len(beamSections))
	for d := range beamSections {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	target := int(math.Round(spanFt))
	closest := depths[0]
	for _, d := range depths[1:] {
		if abs(d-target) < abs(closest-target) {
			closest = d
		}
	}
	return beamSections[closest]
}

// ColumnSectionCandidates returns the candidate list for a column
// location class ("corner", "edge", or "interior"). Unknown classes get
// the interior list, the conservative choice.
func ColumnSectionCandidates(location string) []string {
	if sections, ok := columnSections[location]; ok {
		return sections
	}
	return columnSections["interior"]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
