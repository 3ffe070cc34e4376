package sap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// AreaRecord is one recorded area-creation request.
type AreaRecord struct {
	ID        string     `json:"id"`
	Elevation float64    `json:"elevation"`
	Loop      model.Loop `json:"loop"`
}

// UniformLoadRecord is one recorded surface load assignment.
type UniformLoadRecord struct {
	AreaID  string  `json:"area_id"`
	Pattern string  `json:"pattern"`
	Value   float64 `json:"value"`
}

// AutoSelectRecord is one recorded auto-select list definition.
type AutoSelectRecord struct {
	Name         string   `json:"name"`
	Sections     []string `json:"sections"`
	StartSection string   `json:"start_section"`
}

// Recorder is an in-memory Client. It validates requests the way the
// host would and records every accepted one, which makes it both the
// CLI's dry-run backend and the test double for the emitter and build
// orchestration. Failure hooks let tests inject host-side rejections.
type Recorder struct {
	Connectors []model.Connector

	Areas              []AreaRecord
	LocalAxes          map[string]float64
	LoadPatterns       map[string]LoadPatternType
	UniformLoads       []UniformLoadRecord
	Groups             map[string][]string
	AutoSelects        []AutoSelectRecord
	SectionAssignments map[string]string // group -> auto-select list

	// Optional failure injection. When set and returning non-nil, the
	// corresponding call fails without recording.
	CreateAreaHook   func(loop model.Loop, elevation float64) error
	SetLocalAxesHook func(areaID string) error
}

// NewRecorder returns a Recorder seeded with the given connectors.
func NewRecorder(connectors []model.Connector) *Recorder {
	return &Recorder{
		Connectors:         connectors,
		LocalAxes:          make(map[string]float64),
		LoadPatterns:       make(map[string]LoadPatternType),
		Groups:             make(map[string][]string),
		SectionAssignments: make(map[string]string),
	}
}

func (r *Recorder) ListConnectors() ([]model.Connector, error) {
	return r.Connectors, nil
}

func (r *Recorder) CreateArea(loop model.Loop, elevation float64) (string, error) {
	if r.CreateAreaHook != nil {
		if err := r.CreateAreaHook(loop, elevation); err != nil {
			return "", err
		}
	}
	if len(loop) < 3 {
		return "", &CreationError{Reason: fmt.Sprintf("loop has %d points, need at least 3", len(loop))}
	}
	if loop.Area() == 0 {
		return "", &CreationError{Reason: "loop encloses no area"}
	}
	id := "A" + uuid.New().String()[:8]
	r.Areas = append(r.Areas, AreaRecord{ID: id, Elevation: elevation, Loop: loop})
	return id, nil
}

func (r *Recorder) SetLocalAxes(areaID string, angleDeg float64) error {
	if r.SetLocalAxesHook != nil {
		if err := r.SetLocalAxesHook(areaID); err != nil {
			return err
		}
	}
	if !r.hasArea(areaID) {
		return fmt.Errorf("unknown area %q", areaID)
	}
	r.LocalAxes[areaID] = angleDeg
	return nil
}

func (r *Recorder) DefineLoadPattern(name string, patternType LoadPatternType, selfWeightMultiplier float64) error {
	_ = selfWeightMultiplier
	r.LoadPatterns[name] = patternType
	return nil
}

func (r *Recorder) SetUniformLoad(areaID, pattern string, value float64) error {
	if !r.hasArea(areaID) {
		return fmt.Errorf("unknown area %q", areaID)
	}
	if _, ok := r.LoadPatterns[pattern]; !ok {
		return fmt.Errorf("undefined load pattern %q", pattern)
	}
	r.UniformLoads = append(r.UniformLoads, UniformLoadRecord{AreaID: areaID, Pattern: pattern, Value: value})
	return nil
}

func (r *Recorder) SetGroup(name string) error {
	if _, ok := r.Groups[name]; !ok {
		r.Groups[name] = nil
	}
	return nil
}

func (r *Recorder) AssignFrameToGroup(frameID, group string) error {
	if _, ok := r.Groups[group]; !ok {
		return fmt.Errorf("unknown group %q", group)
	}
	r.Groups[group] = append(r.Groups[group], frameID)
	return nil
}

func (r *Recorder) SetAutoSelectList(name string, sections []string, startSection string) error {
	if len(sections) == 0 {
		return fmt.Errorf("auto-select list %q has no sections", name)
	}
	r.AutoSelects = append(r.AutoSelects, AutoSelectRecord{Name: name, Sections: sections, StartSection: startSection})
	return nil
}

func (r *Recorder) AssignSectionToGroup(group, autoList string) error {
	if _, ok := r.Groups[group]; !ok {
		return fmt.Errorf("unknown group %q", group)
	}
	r.SectionAssignments[group] = autoList
	return nil
}

func (r *Recorder) hasArea(areaID string) bool {
	for _, a := range r.Areas {
		if a.ID == areaID {
			return true
		}
	}
	return false
}

// requestLog is the JSON shape of a dumped Recorder.
type requestLog struct {
	Areas              []AreaRecord        `json:"areas"`
	LocalAxes          map[string]float64  `json:"local_axes"`
	LoadPatterns       map[string]int      `json:"load_patterns"`
	UniformLoads       []UniformLoadRecord `json:"uniform_loads"`
	Groups             map[string][]string `json:"groups"`
	AutoSelects        []AutoSelectRecord  `json:"auto_selects"`
	SectionAssignments map[string]string   `json:"section_assignments"`
}

// WriteRequestLog dumps every recorded request as indented JSON, creating
// parent directories as needed.
func (r *Recorder) WriteRequestLog(path string) error {
	patterns := make(map[string]int, len(r.LoadPatterns))
	for name, t := range r.LoadPatterns {
		patterns[name] = int(t)
	}
	log := requestLog{
		Areas:              r.Areas,
		LocalAxes:          r.LocalAxes,
		LoadPatterns:       patterns,
		UniformLoads:       r.UniformLoads,
		Groups:             r.Groups,
		AutoSelects:        r.AutoSelects,
		SectionAssignments: r.SectionAssignments,
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
