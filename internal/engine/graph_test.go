package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

func beam(id string, x1, y1, x2, y2 float64) model.Connector {
	return model.Connector{
		ID: id,
		I:  model.Point3D{X: x1, Y: y1, Z: 10},
		J:  model.Point3D{X: x2, Y: y2, Z: 10},
	}
}

func TestBuildGraph_SharedEndpointsDedup(t *testing.T) {
	beams := []model.Connector{
		beam("B1", 0, 0, 10, 0),
		beam("B2", 10, 0, 10, 10),
	}

	g, warnings := BuildGraph(beams, 0.01)

	assert.Empty(t, warnings)
	assert.Len(t, g.Coords, 3, "shared endpoint should collapse into one vertex")
	assert.Equal(t, 2, g.Edges)
}

func TestBuildGraph_MirrorEdges(t *testing.T) {
	// Every inserted edge must be walkable in both directions.
	beams := []model.Connector{beam("B1", 0, 0, 10, 0)}

	g, _ := BuildGraph(beams, 0.01)

	require.Len(t, g.Coords, 2)
	require.Len(t, g.Adj[0], 1)
	require.Len(t, g.Adj[1], 1)
	assert.Equal(t, 1, g.Adj[0][0].Vertex)
	assert.Equal(t, 0, g.Adj[1][0].Vertex)
	assert.Equal(t, "B1", g.Adj[0][0].ConnectorID)
	assert.Equal(t, "B1", g.Adj[1][0].ConnectorID)
	assert.Equal(t, 1, g.Edges, "mirror entries count as one undirected edge")
}

func TestBuildGraph_NearEqualEndpointsMerge(t *testing.T) {
	// Two connectors whose shared corner differs by less than the
	// tolerance must meet at a single merged vertex.
	beams := []model.Connector{
		beam("B1", 0, 0, 10, 0),
		beam("B2", 10.004, 0.003, 10, 10),
	}

	g, warnings := BuildGraph(beams, 0.01)

	assert.Empty(t, warnings)
	assert.Len(t, g.Coords, 3, "near-equal endpoints should merge into one vertex")
	require.Len(t, g.Adj, 3)
	assert.Len(t, g.Adj[1], 2, "merged vertex carries both incident edges")
}

func TestBuildGraph_BeyondToleranceStaysSeparate(t *testing.T) {
	beams := []model.Connector{
		beam("B1", 0, 0, 10, 0),
		beam("B2", 10.2, 0, 10.2, 10),
	}

	g, _ := BuildGraph(beams, 0.01)

	assert.Len(t, g.Coords, 4, "endpoints beyond tolerance must stay distinct")
}

func TestBuildGraph_SubToleranceConnectorRejected(t *testing.T) {
	beams := []model.Connector{
		beam("B1", 0, 0, 0.002, 0.001),
	}

	g, warnings := BuildGraph(beams, 0.01)

	assert.Equal(t, 0, g.Edges, "self-loop must not be inserted")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "B1")
}

func TestBuildGraph_CanonicalCoordinates(t *testing.T) {
	// Jittered endpoints snap to the tolerance grid, so two runs over
	// equivalent geometry produce identical vertex coordinates.
	jittered := []model.Connector{
		beam("B1", 0.001, -0.002, 9.998, 0.004),
	}
	exact := []model.Connector{
		beam("B1", 0, 0, 10, 0),
	}

	g1, _ := BuildGraph(jittered, 0.01)
	g2, _ := BuildGraph(exact, 0.01)

	if diff := cmp.Diff(g2.Coords, g1.Coords); diff != "" {
		t.Errorf("canonical coordinates mismatch (-want +got):\n%s", diff)
	}
}
