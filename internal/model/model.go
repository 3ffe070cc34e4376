// Package model defines the shared domain types for floor-area detection:
// connectors (beams), detected floor panels, detection settings, and the
// per-run report returned to callers.
package model

import (
	"math"

	"github.com/google/uuid"
)

// Point3D represents a 3D coordinate in model length units.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point2D represents a 2D plan coordinate (elevation dropped).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// XY returns the plan projection of the point.
func (p Point3D) XY() Point2D {
	return Point2D{X: p.X, Y: p.Y}
}

// Connector is a straight structural member between two points.
// Connectors are supplied by the hosted analysis model and are never
// mutated by the detection core.
type Connector struct {
	ID string  `json:"id"`
	I  Point3D `json:"i"` // First endpoint
	J  Point3D `json:"j"` // Second endpoint
}

// Length returns the plan-projected (XY) length of the connector.
func (c Connector) Length() float64 {
	dx := c.J.X - c.I.X
	dy := c.J.Y - c.I.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsHorizontal reports whether both endpoints lie at the same elevation
// within the given slack.
func (c Connector) IsHorizontal(slack float64) bool {
	return math.Abs(c.I.Z-c.J.Z) <= slack
}

// Loop is an ordered closed polygon in plan coordinates. The loop is
// implicitly closed: the last point connects back to the first.
type Loop []Point2D

// Area computes the absolute polygon area using the shoelace formula.
func (l Loop) Area() float64 {
	n := len(l)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += l[i].X * l[j].Y
		area -= l[j].X * l[i].Y
	}
	return math.Abs(area) / 2
}

// BoundingBox returns the min and max corners of the loop.
func (l Loop) BoundingBox() (min, max Point2D) {
	if len(l) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = l[0], l[0]
	for _, p := range l[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// ShortestEdgeAngle returns the angle in degrees of the loop's shortest
// edge, normalized to [0, 360). Ties go to the first edge found. Panels
// align their local 1-axis with the short span, which downstream load
// conventions rely on.
func (l Loop) ShortestEdgeAngle() float64 {
	if len(l) < 2 {
		return 0
	}
	minLength := math.Inf(1)
	bestAngle := 0.0
	for i := range l {
		p1 := l[i]
		p2 := l[(i+1)%len(l)]
		dx := p2.X - p1.X
		dy := p2.Y - p1.Y
		length := math.Sqrt(dx*dx + dy*dy)
		if length < minLength {
			minLength = length
			bestAngle = math.Atan2(dy, dx) * 180 / math.Pi
		}
	}
	return math.Mod(bestAngle+360, 360)
}

// FloorPanel is a detected floor bay at a fixed elevation, ready to be
// handed to the hosted model for area creation.
type FloorPanel struct {
	ID           string  `json:"id"`
	Elevation    float64 `json:"elevation"`
	Loop         Loop    `json:"loop"`           // Ordered plan corners
	VertexLoop   []int   `json:"vertex_loop"`    // Graph vertex indices of the corners
	LocalAxisDeg float64 `json:"local_axis_deg"` // Shortest-edge orientation, [0, 360)
}

// NewFloorPanel builds a panel with a fresh short id.
func NewFloorPanel(elevation float64, loop Loop, vertexLoop []int) FloorPanel {
	return FloorPanel{
		ID:           uuid.New().String()[:8],
		Elevation:    elevation,
		Loop:         loop,
		VertexLoop:   vertexLoop,
		LocalAxisDeg: loop.ShortestEdgeAngle(),
	}
}

// FilterPolicy controls which face sizes survive as floor panels.
// Grid-framed floors produce quadrilateral bays, so the default keeps
// only 4-vertex faces; irregular plans can widen the set.
type FilterPolicy struct {
	AllowedVertexCounts []int `json:"allowed_vertex_counts"`
}

// Allows reports whether a face with n vertices passes the policy.
func (fp FilterPolicy) Allows(n int) bool {
	for _, c := range fp.AllowedVertexCounts {
		if c == n {
			return true
		}
	}
	return false
}

// DetectSettings holds the tunable parameters of the detection pipeline.
type DetectSettings struct {
	Tolerance     float64      `json:"tolerance"`       // Coordinate comparison tolerance (length units)
	MaxTraceSteps int          `json:"max_trace_steps"` // Hard iteration cap per face trace
	Filter        FilterPolicy `json:"filter"`
}

func DefaultDetectSettings() DetectSettings {
	return DetectSettings{
		Tolerance:     0.01,
		MaxTraceSteps: 1000,
		Filter:        FilterPolicy{AllowedVertexCounts: []int{4}},
	}
}

// DetectStatus distinguishes "nothing to do" from a successful run.
// An empty result is not an error.
type DetectStatus int

const (
	StatusOK      DetectStatus = iota // Panels were produced
	StatusNoInput                     // No qualifying connectors or no closed faces
)

func (s DetectStatus) String() string {
	if s == StatusNoInput {
		return "NO_INPUT"
	}
	return "OK"
}

// DetectReport aggregates per-stage counts and diagnostics for one
// detection run. Failures surface here rather than as errors: a bad
// connector or an unclosable loop never stops the rest of the floor.
type DetectReport struct {
	Status           DetectStatus `json:"status"`
	Elevation        float64      `json:"elevation"`
	Connectors       int          `json:"connectors"` // Qualifying beams at the elevation
	Vertices         int          `json:"vertices"`
	Edges            int          `json:"edges"` // Undirected edge count
	FacesTraced      int          `json:"faces_traced"`
	TracesAborted    int          `json:"traces_aborted"`    // Back-edge missing (malformed graph)
	TracesOverflowed int          `json:"traces_overflowed"` // Iteration cap hit
	DuplicateFaces   int          `json:"duplicate_faces"`
	FacesFiltered    int          `json:"faces_filtered"` // Unique faces rejected by the filter policy
	Panels           int          `json:"panels"`
	Warnings         []string     `json:"warnings,omitempty"`
}

// LevelResult bundles everything detected at one elevation, consumed by
// the exporters and the CLI summary.
type LevelResult struct {
	Elevation float64      `json:"elevation"`
	Beams     []Connector  `json:"beams"`
	Panels    []FloorPanel `json:"panels"`
	Report    DetectReport `json:"report"`
}
