package engine

import "errors"

// Trace failure modes. Both are recoverable: the offending trace is
// discarded and scanning continues from the next unvisited half-edge.
var (
	// ErrBackEdgeMissing means the edge back to the previous vertex was
	// not found in the current vertex's neighbor list, so the graph is
	// malformed or disconnected mid-trace.
	ErrBackEdgeMissing = errors.New("back edge not found in neighbor list")

	// ErrTraceOverflow means the iteration cap was hit before the walk
	// closed, which signals a non-simple or unbounded structure.
	ErrTraceOverflow = errors.New("face trace exceeded iteration cap")
)

// halfEdge is a directed traversal of an edge. Visiting (a, b) is
// distinct from visiting its mirror (b, a).
type halfEdge struct {
	from, to int
}

type traceState int

const (
	stateTracing traceState = iota
	stateComplete
	stateAborted
)

// TraceStats counts trace outcomes across one full face scan.
type TraceStats struct {
	Completed  int
	Aborted    int // Back edge missing
	Overflowed int // Iteration cap hit
}

// traceFace walks half-edges from the starting half-edge (start, next)
// using the rotation rule: at each vertex, leave through the edge
// immediately after the arrival edge in angular order, wrapping past the
// end of the list. Each consumed half-edge is marked visited before
// advancing, so no half-edge is ever retraced and total work across all
// traces is bounded by the half-edge count.
//
// Returns the closed vertex walk, or an error describing why the trace
// aborted.
func traceFace(start, next int, sorted [][]Neighbor, visited map[halfEdge]bool, maxSteps int) ([]int, error) {
	face := []int{start}
	current := start
	candidate := next

	state := stateTracing
	var failure error

	for steps := 0; state == stateTracing; steps++ {
		if steps >= maxSteps {
			state = stateAborted
			failure = ErrTraceOverflow
			break
		}

		visited[halfEdge{from: current, to: candidate}] = true
		current = candidate
		face = append(face, current)

		// Locate the arrival edge in the current vertex's rotation order.
		previous := face[len(face)-2]
		backIndex := -1
		neighbors := sorted[current]
		for i, n := range neighbors {
			if n.Vertex == previous {
				backIndex = i
				break
			}
		}
		if backIndex == -1 {
			state = stateAborted
			failure = ErrBackEdgeMissing
			break
		}

		// Next hop: the edge immediately following the arrival edge.
		candidate = neighbors[(backIndex+1)%len(neighbors)].Vertex
		if candidate == start {
			state = stateComplete
		}
	}

	if state != stateComplete {
		return nil, failure
	}
	return face, nil
}

// FindFaces scans every half-edge in rotation order and traces a face
// from each one not yet consumed by an earlier trace. Closed walks with
// at least 3 vertices are collected; aborted traces are counted and
// skipped.
func FindFaces(sorted [][]Neighbor, maxSteps int) ([][]int, TraceStats) {
	visited := make(map[halfEdge]bool)
	var faces [][]int
	var stats TraceStats

	for v := range sorted {
		for _, n := range sorted[v] {
			if visited[halfEdge{from: v, to: n.Vertex}] {
				continue
			}
			face, err := traceFace(v, n.Vertex, sorted, visited, maxSteps)
			switch {
			case errors.Is(err, ErrBackEdgeMissing):
				stats.Aborted++
			case errors.Is(err, ErrTraceOverflow):
				stats.Overflowed++
			default:
				if len(face) >= 3 {
					stats.Completed++
					faces = append(faces, face)
				}
			}
		}
	}

	return faces, stats
}
