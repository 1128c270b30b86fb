package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Joechou2430/b747-load-engine/internal/planner"
)

// renderReport prints the load plan, rejections and action-required
// entries as operator-readable tables.
func renderReport(w io.Writer, report *planner.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("ULD ALLOCATION")
	t.AppendHeader(table.Row{"POS", "TYPE", "DEST", "WGT(KG)", "UTIL%", "ULD ID", "CONTENTS"})
	for _, u := range report.ULDs {
		row, ok := visRowFor(report, u.ID)
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			row.Pos,
			row.Type,
			row.Dest,
			row.Weight,
			fmt.Sprintf("%.0f", u.UtilizationPct()),
			row.ULD,
			strings.Join(row.Contents, ", "),
		})
	}
	t.Render()

	fmt.Fprintf(w, "\nTotal ULDs: %d  Total weight: %.0f kg\n", report.Summary.TotalULDs, report.Summary.TotalWeight)
	for _, warning := range report.Summary.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warning)
	}

	if len(report.Rejected) > 0 {
		r := table.NewWriter()
		r.SetOutputMirror(w)
		r.SetTitle("REJECTED")
		r.AppendHeader(table.Row{"CARGO", "REASON"})
		for _, rej := range report.Rejected {
			r.AppendRow(table.Row{rej.ID, rej.Reason})
		}
		r.Render()
	}

	if len(report.ActionRequired) > 0 {
		fmt.Fprintln(w, "\nACTION REQUIRED:")
		for _, a := range report.ActionRequired {
			fmt.Fprintf(w, "  group %s: %s (%d leftover)\n", a.GroupID, a.Message, a.LeftoverCount)
		}
	}

	cg, env := cgFromReport(report)
	fmt.Fprintf(w, "\nZFW %.0f kg  CG %.1f in  %.2f%% MAC  [%s]\n", cg.ZFWKg, cg.CGArmInches, cg.CGMACPercent, env.Message)
}

// visRowFor finds the visualization row for a device id.
func visRowFor(report *planner.Report, uldID string) (planner.VisRow, bool) {
	for _, row := range report.Visualization {
		if row.ULD == uldID {
			return row, true
		}
	}
	return planner.VisRow{}, false
}
