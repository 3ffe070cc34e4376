// Package engine implements the floor-area detection pipeline: beam
// selection, tolerance-grid graph construction, angular edge ordering,
// half-edge face tracing, and face filtering. All stages are pure
// computations over in-memory data; the package performs no I/O.
package engine

import (
	"math"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// SelectBeams returns the connectors whose both endpoints lie within
// tolerance of the target elevation. An empty result means "no panels at
// this level", not a failure.
func SelectBeams(connectors []model.Connector, elevation, tolerance float64) []model.Connector {
	var beams []model.Connector
	for _, c := range connectors {
		if math.Abs(c.I.Z-elevation) < tolerance && math.Abs(c.J.Z-elevation) < tolerance {
			beams = append(beams, c)
		}
	}
	return beams
}
