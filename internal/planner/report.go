package planner

import (
	"fmt"
	"strings"

	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// Summary aggregates the plan-level numbers.
type Summary struct {
	TotalULDs   int      `json:"total_ulds"`
	TotalWeight float64  `json:"total_weight"`
	Warnings    []string `json:"warnings"`
}

// ActionItem tells the operator a forced-group directive did not fit.
type ActionItem struct {
	GroupID       string `json:"group_id"`
	Message       string `json:"message"`
	LeftoverCount int    `json:"leftover_count"`
}

// VisRow is one line of the load plan visualization. Devices the allocator
// could not place appear with the UNASSIGNED position; their presence is
// the operator's signal to intervene.
type VisRow struct {
	Pos      string   `json:"pos"`
	ULD      string   `json:"uld"`
	Type     string   `json:"type"`
	Weight   string   `json:"weight"`
	Arm      float64  `json:"arm"`
	Dest     string   `json:"dest"`
	Contents []string `json:"contents"`
}

// Report is the output of one planning pass. ULDs carries the packed
// devices for downstream layers (weight and balance); it is not part of
// the serialized payload.
type Report struct {
	Summary        Summary      `json:"summary"`
	Rejected       []Rejection  `json:"rejected"`
	ActionRequired []ActionItem `json:"action_required"`
	Visualization  []VisRow     `json:"visualization"`

	ULDs []*cargo.PackedULD `json:"-"`
}

// generateReport assembles the report from the engine state after
// allocation. Zone warnings come from the structural engine over the
// assigned devices.
func (e *Engine) generateReport() *Report {
	warnings := e.structural.CheckZoneLimits(e.packed)

	totalWeight := 0.0
	vis := make([]VisRow, 0, len(e.packed))
	for _, u := range e.packed {
		totalWeight += u.GrossWeight()

		contents := make([]string, 0, len(u.Items))
		for _, item := range u.Items {
			shc := ""
			if len(item.SHC) > 0 {
				shc = " [" + strings.Join(item.SHC, ",") + "]"
			}
			contents = append(contents, fmt.Sprintf("%s (%.0fkg, %s%s)", item.ID, item.Weight, item.Destination, shc))
		}

		vis = append(vis, VisRow{
			Pos:      u.AssignedPosition,
			ULD:      u.ID,
			Type:     u.ULDType,
			Weight:   fmt.Sprintf("%.0f", u.GrossWeight()),
			Arm:      u.AssignedArm,
			Dest:     u.Destination,
			Contents: contents,
		})
	}

	actions := make([]ActionItem, 0, len(e.actionRequired))
	for _, fb := range e.actionRequired {
		actions = append(actions, ActionItem{
			GroupID:       fb.GroupID,
			Message:       fb.Message,
			LeftoverCount: len(fb.Remaining),
		})
	}

	return &Report{
		Summary: Summary{
			TotalULDs:   len(e.packed),
			TotalWeight: totalWeight,
			Warnings:    warnings,
		},
		Rejected:       e.rejected,
		ULDs:           e.packed,
		ActionRequired: actions,
		Visualization:  vis,
	}
}
