package sap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

func testPanel(elevation float64) model.FloorPanel {
	loop := model.Loop{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	return model.NewFloorPanel(elevation, loop, []int{0, 1, 2, 3})
}

func TestEmitAreas_CreatesAreaAndSetsAxes(t *testing.T) {
	rec := NewRecorder(nil)
	panels := []model.FloorPanel{testPanel(10), testPanel(10)}

	report := EmitAreas(rec, panels, nil)

	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.AreaIDs, 2)
	require.Len(t, rec.Areas, 2)
	assert.Equal(t, 10.0, rec.Areas[0].Elevation)

	for _, id := range report.AreaIDs {
		_, ok := rec.LocalAxes[id]
		assert.True(t, ok, "every created area gets its local axes set")
	}
}

func TestEmitAreas_CreateFailureSkipsPanel(t *testing.T) {
	rec := NewRecorder(nil)
	fail := true
	rec.CreateAreaHook = func(model.Loop, float64) error {
		if fail {
			fail = false
			return &CreationError{Reason: "rejected by host"}
		}
		return nil
	}

	report := EmitAreas(rec, []model.FloorPanel{testPanel(10), testPanel(10)}, nil)

	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Failed, "one rejection must not abort the batch")
	assert.Len(t, rec.Areas, 1)
}

func TestEmitAreas_AxesFailureCountsPanelAsFailed(t *testing.T) {
	rec := NewRecorder(nil)
	rec.SetLocalAxesHook = func(string) error {
		return errors.New("axes assignment refused")
	}

	report := EmitAreas(rec, []model.FloorPanel{testPanel(10)}, nil)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, report.AreaIDs, "a half-emitted panel never reports an area id")
}

func TestEmitAreas_DegenerateLoopFails(t *testing.T) {
	rec := NewRecorder(nil)
	short := model.FloorPanel{ID: "bad", Loop: model.Loop{{X: 0, Y: 0}, {X: 10, Y: 0}}}

	report := EmitAreas(rec, []model.FloorPanel{short}, nil)

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, rec.Areas)
}

func TestRecorder_CreateAreaValidation(t *testing.T) {
	rec := NewRecorder(nil)

	_, err := rec.CreateArea(model.Loop{{X: 0, Y: 0}, {X: 10, Y: 0}}, 10)
	var creation *CreationError
	require.ErrorAs(t, err, &creation)

	_, err = rec.CreateArea(model.Loop{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}, 10)
	require.ErrorAs(t, err, &creation, "collinear loop encloses no area")
}

func TestRecorder_UnknownReferencesRejected(t *testing.T) {
	rec := NewRecorder(nil)

	assert.Error(t, rec.SetLocalAxes("A-missing", 90))
	assert.Error(t, rec.SetUniformLoad("A-missing", "DEAD", 75))
	assert.Error(t, rec.AssignFrameToGroup("B1", "No Such Group"))
	assert.Error(t, rec.AssignSectionToGroup("No Such Group", "AUTO_X"))
}

func TestRecorder_UniformLoadNeedsDefinedPattern(t *testing.T) {
	rec := NewRecorder(nil)
	id, err := rec.CreateArea(model.Loop{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 10)
	require.NoError(t, err)

	assert.Error(t, rec.SetUniformLoad(id, "DEAD", 75), "pattern not defined yet")

	require.NoError(t, rec.DefineLoadPattern("DEAD", LoadPatternDead, 1.0))
	require.NoError(t, rec.SetUniformLoad(id, "DEAD", 75))
	require.Len(t, rec.UniformLoads, 1)
	assert.Equal(t, 75.0, rec.UniformLoads[0].Value)
}

func TestRecorder_WriteRequestLog(t *testing.T) {
	rec := NewRecorder(nil)
	_, err := rec.CreateArea(model.Loop{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 10)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "requests.json")
	require.NoError(t, rec.WriteRequestLog(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
