package sap

import (
	"io"
	"log"

	"github.com/Sina-pz/sap2000-automation/internal/model"
)

// EmitReport aggregates the outcome of emitting one batch of panels.
type EmitReport struct {
	Attempted int      `json:"attempted"`
	Created   int      `json:"created"`
	Failed    int      `json:"failed"`
	AreaIDs   []string `json:"area_ids"` // Host ids of fully emitted panels, in panel order
}

// EmitAreas submits each panel to the host as an area-creation request
// followed by a local-axis assignment. The two calls are atomic per
// panel: if either fails the panel counts as failed, the failure is
// logged, and emission continues with the next panel. One bad panel
// never aborts the batch.
func EmitAreas(client Client, panels []model.FloorPanel, logger *log.Logger) EmitReport {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var report EmitReport
	for _, panel := range panels {
		report.Attempted++

		if len(panel.Loop) < 3 {
			report.Failed++
			logger.Printf("panel %s at z=%.2f: only %d corners resolved, skipped",
				panel.ID, panel.Elevation, len(panel.Loop))
			continue
		}

		areaID, err := client.CreateArea(panel.Loop, panel.Elevation)
		if err != nil {
			report.Failed++
			logger.Printf("panel %s at z=%.2f: %v", panel.ID, panel.Elevation, err)
			continue
		}

		if err := client.SetLocalAxes(areaID, panel.LocalAxisDeg); err != nil {
			report.Failed++
			logger.Printf("panel %s (area %s): local axes assignment failed: %v",
				panel.ID, areaID, err)
			continue
		}

		report.Created++
		report.AreaIDs = append(report.AreaIDs, areaID)
	}

	return report
}
