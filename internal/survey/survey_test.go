package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

func connector(id string, x1, y1, z1, x2, y2, z2 float64) model.Connector {
	return model.Connector{
		ID: id,
		I:  model.Point3D{X: x1, Y: y1, Z: z1},
		J:  model.Point3D{X: x2, Y: y2, Z: z2},
	}
}

func TestFloorLevels_SortedAndDeduplicated(t *testing.T) {
	connectors := []model.Connector{
		connector("C1", 0, 0, 0, 0, 0, 24),
		connector("B1", 0, 0, 24, 10, 0, 24),
		connector("B2", 0, 0, 12, 10, 0, 12),
	}

	levels := FloorLevels(connectors, 0.01)

	assert.Equal(t, []float64{12, 24}, levels)
}

func TestFloorLevels_GroundExcluded(t *testing.T) {
	connectors := []model.Connector{
		connector("C1", 0, 0, 0, 0, 0, 12),
	}

	levels := FloorLevels(connectors, 0.01)

	assert.Equal(t, []float64{12}, levels, "z=0 is the ground, not a floor")
}

func TestFloorLevels_NearEqualElevationsMerge(t *testing.T) {
	connectors := []model.Connector{
		connector("B1", 0, 0, 12.004, 10, 0, 12.004),
		connector("B2", 0, 10, 12, 10, 10, 11.996),
	}

	levels := FloorLevels(connectors, 0.01)

	assert.Len(t, levels, 1, "jittered elevations collapse to one level")
}

func TestBeamsByLength_RoundsToNominalSpan(t *testing.T) {
	connectors := []model.Connector{
		connector("B1", 0, 0, 12, 10, 0, 12),
		connector("B2", 0, 10, 12, 10.3, 10, 12), // 10.3 rounds to 10
		connector("B3", 0, 0, 12, 20, 0, 12),
		connector("C1", 0, 0, 0, 0, 0, 12), // column, excluded
	}

	groups := BeamsByLength(connectors, 1.0)

	require.Len(t, groups, 2)
	assert.ElementsMatch(t, []string{"B1", "B2"}, groups[10])
	assert.ElementsMatch(t, []string{"B3"}, groups[20])
}

func TestColumnsByLocation(t *testing.T) {
	// A 2x2 column grid on a 10-unit module: 4 corners, 4 edge
	// midpoints, 1 interior.
	var connectors []model.Connector
	id := 0
	for _, x := range []float64{0, 10, 20} {
		for _, y := range []float64{0, 10, 20} {
			id++
			connectors = append(connectors, connector("C"+string(rune('0'+id)), x, y, 0, x, y, 12))
		}
	}

	classes := ColumnsByLocation(connectors, 1.0)

	assert.Len(t, classes.Corner, 4)
	assert.Len(t, classes.Edge, 4)
	assert.Len(t, classes.Interior, 1)
}

func TestColumnsByLocation_HorizontalMembersIgnored(t *testing.T) {
	connectors := []model.Connector{
		connector("B1", 0, 0, 12, 10, 0, 12),
	}

	classes := ColumnsByLocation(connectors, 1.0)

	assert.Empty(t, classes.Corner)
	assert.Empty(t, classes.Edge)
	assert.Empty(t, classes.Interior)
}

func TestBeamSectionCandidates_ClosestDepth(t *testing.T) {
	assert.Equal(t, "W24X76", BeamSectionCandidates(25)[0])
	assert.Equal(t, "W10X33", BeamSectionCandidates(9)[0])
	assert.Equal(t, "W18X40", BeamSectionCandidates(17.6)[0])
}

func TestColumnSectionCandidates(t *testing.T) {
	assert.Equal(t, "W10X12", ColumnSectionCandidates("corner")[0])
	assert.Equal(t, "W12X190", ColumnSectionCandidates("edge")[0])
	assert.Equal(t, "W14X193", ColumnSectionCandidates("interior")[0])
	assert.Equal(t, ColumnSectionCandidates("interior"), ColumnSectionCandidates("unknown"),
		"unknown locations take the conservative interior list")
}
