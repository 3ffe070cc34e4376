// Package sap is the boundary to the hosted SAP2000 analysis model. The
// detection core stays pure; every mutation of the hosted model goes
// through the Client interface, which exposes exactly the operations the
// automation needs instead of open-ended delegation.
package sap

import "github.com/Sina-pz/sap2000-automation/internal/model"

// LoadPatternType mirrors the host's load pattern enumeration.
type LoadPatternType int

const (
	LoadPatternDead LoadPatternType = 1
	LoadPatternLive LoadPatternType = 3
)

// Client is the hosted model. All calls are synchronous; implementations
// are expected to validate their inputs and return errors rather than
// panic. A failed call affects only the item it was issued for.
type Client interface {
	// ListConnectors returns every frame member in the model with its
	// endpoint coordinates.
	ListConnectors() ([]model.Connector, error)

	// CreateArea creates a polygonal area element from an ordered plan
	// loop at the given elevation and returns its host-assigned id.
	// Degenerate loops fail with a *CreationError.
	CreateArea(loop model.Loop, elevation float64) (string, error)

	// SetLocalAxes orients an area's local 1-axis to the given angle in
	// degrees.
	SetLocalAxes(areaID string, angleDeg float64) error

	// DefineLoadPattern registers a load pattern with a self-weight
	// multiplier.
	DefineLoadPattern(name string, patternType LoadPatternType, selfWeightMultiplier float64) error

	// SetUniformLoad assigns a uniform surface load to an area under the
	// named pattern.
	SetUniformLoad(areaID, pattern string, value float64) error

	// SetGroup creates a named group if it does not already exist.
	SetGroup(name string) error

	// AssignFrameToGroup adds a frame member to a group.
	AssignFrameToGroup(frameID, group string) error

	// SetAutoSelectList defines an auto-select section list starting the
	// design iteration from startSection.
	SetAutoSelectList(name string, sections []string, startSection string) error

	// AssignSectionToGroup assigns an auto-select list to every frame in
	// a group.
	AssignSectionToGroup(group, autoList string) error
}

// CreationError reports that the host rejected an area-creation request,
// typically because the loop is degenerate or non-planar.
type CreationError struct {
	Reason string
}

func (e *CreationError) Error() string {
	return "area creation rejected: " + e.Reason
}
