package engine

import (
	"fmt"
	"math"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// Neighbor is one incident edge of a vertex: the vertex at the other end
// and the connector that produced it. Angle is filled in by SortNeighbors.
type Neighbor struct {
	Vertex      int
	ConnectorID string
	Angle       float64 // Planar angle toward Vertex, radians
}

// Graph is the deduplicated plan graph of one floor. Vertices are integer
// indices into Coords; adjacency is stored as index lists, so the
// structure carries no reference cycles. Every inserted edge has a mirror
// entry from neighbor back to vertex.
type Graph struct {
	Coords []model.Point3D // Vertex index -> canonical (quantized) coordinate
	Adj    [][]Neighbor    // Vertex index -> incident edges in insertion order
	Edges  int             // Undirected edge count
}

// gridKey is a tolerance-quantized coordinate used for vertex identity.
// Quantizing to integer grid steps keeps the coordinate-to-index map a
// bijection at any tolerance granularity.
type gridKey struct {
	x, y, z int64
}

func quantize(v, tolerance float64) int64 {
	return int64(math.Round(v / tolerance))
}

func keyOf(p model.Point3D, tolerance float64) gridKey {
	return gridKey{
		x: quantize(p.X, tolerance),
		y: quantize(p.Y, tolerance),
		z: quantize(p.Z, tolerance),
	}
}

func (k gridKey) coord(tolerance float64) model.Point3D {
	return model.Point3D{
		X: float64(k.x) * tolerance,
		Y: float64(k.y) * tolerance,
		Z: float64(k.z) * tolerance,
	}
}

// BuildGraph deduplicates connector endpoints into vertices on a
// tolerance grid and inserts each connector as a bidirectional edge pair
// tagged with the connector id. Connectors whose endpoints quantize to
// the same vertex are below tolerance (zero length in grid terms); they
// are rejected with a warning instead of inserting a self-loop.
func BuildGraph(beams []model.Connector, tolerance float64) (*Graph, []string) {
	g := &Graph{}
	index := make(map[gridKey]int)
	var warnings []string

	vertexFor := func(p model.Point3D) int {
		k := keyOf(p, tolerance)
		if v, ok := index[k]; ok {
			return v
		}
		v := len(g.Coords)
		index[k] = v
		g.Coords = append(g.Coords, k.coord(tolerance))
		g.Adj = append(g.Adj, nil)
		return v
	}

	for _, beam := range beams {
		v1 := vertexFor(beam.I)
		v2 := vertexFor(beam.J)
		if v1 == v2 {
			warnings = append(warnings,
				fmt.Sprintf("connector %s is shorter than the tolerance grid, skipped", beam.ID))
			continue
		}
		g.Adj[v1] = append(g.Adj[v1], Neighbor{Vertex: v2, ConnectorID: beam.ID})
		g.Adj[v2] = append(g.Adj[v2], Neighbor{Vertex: v1, ConnectorID: beam.ID})
		g.Edges++
	}

	return g, warnings
}
