package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// FilterStats counts faces discarded during filtering.
type FilterStats struct {
	Duplicates int
	Rejected   int // Unique faces outside the policy, or non-simple walks
}

// FilterFaces deduplicates traced faces by unordered vertex set (the
// first occurrence wins) and keeps simple walks whose length the policy
// allows. The outer perimeter loop and composite multi-bay loops carry
// more vertices than a single bay, so the default quadrilateral-only
// policy drops them along with triangles. Walks that revisit a vertex
// (open chains traced out and back) are never panels.
func FilterFaces(faces [][]int, policy model.FilterPolicy) ([][]int, FilterStats) {
	seen := make(map[string]bool)
	var kept [][]int
	var stats FilterStats

	for _, face := range faces {
		key := vertexSetKey(face)
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		if distinctCount(face) != len(face) || !policy.Allows(len(face)) {
			stats.Rejected++
			continue
		}
		kept = append(kept, face)
	}

	return kept, stats
}

func distinctCount(face []int) int {
	distinct := make(map[int]bool, len(face))
	for _, v := range face {
		distinct[v] = true
	}
	return len(distinct)
}

// vertexSetKey builds an order-independent identity for a face from its
// sorted distinct vertex indices.
func vertexSetKey(face []int) string {
	distinct := make(map[int]bool, len(face))
	for _, v := range face {
		distinct[v] = true
	}
	indices := make([]int, 0, len(distinct))
	for v := range distinct {
		indices = append(indices, v)
	}
	sort.Ints(indices)

	var b strings.Builder
	for i, v := range indices {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}
