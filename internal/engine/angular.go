package engine

import (
	"math"
	"sort"
)

// SortNeighbors orders every vertex's incident edges by their planar
// angle toward the neighbor (elevation ignored), ascending. The result
// is the rotation order the face tracer walks.
//
// Coincident angles happen when connectors overlap collinearly; ties are
// broken by connector id so the rotation order is total and identical
// across runs regardless of input ordering.
func SortNeighbors(g *Graph) [][]Neighbor {
	sorted := make([][]Neighbor, len(g.Adj))

	for v, incident := range g.Adj {
		origin := g.Coords[v]
		entries := make([]Neighbor, len(incident))
		for i, n := range incident {
			target := g.Coords[n.Vertex]
			n.Angle = math.Atan2(target.Y-origin.Y, target.X-origin.X)
			entries[i] = n
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Angle != entries[j].Angle {
				return entries[i].Angle < entries[j].Angle
			}
			return entries[i].ConnectorID < entries[j].ConnectorID
		})
		sorted[v] = entries
	}

	return sorted
}
