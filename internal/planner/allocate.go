package planner

import (
	"context"
	"sort"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// allocationRank orders devices by how constrained their candidate
// positions are: 20/16-ft main-deck pallets need the center line, lower
// pallets and containers contend on the lower deck, everything else fills
// the main-deck sides last.
func allocationRank(uldType string) int {
	switch uldType {
	case aircraft.TypeG, aircraft.TypeR:
		return 0
	case aircraft.TypeMLower, aircraft.TypeALower:
		return 1
	case aircraft.TypeK:
		return 2
	default:
		return 3
	}
}

// candidatesFor returns the position pool a device type may occupy, front
// to back.
func (e *Engine) candidatesFor(uldType string) []aircraft.Position {
	switch uldType {
	case aircraft.TypeG, aircraft.TypeR:
		return e.airMap.Candidates(aircraft.MainDeck, aircraft.Center)
	case aircraft.TypeM, aircraft.TypeA:
		return e.airMap.Candidates(aircraft.MainDeck, aircraft.Left, aircraft.Right)
	case aircraft.TypeMLower, aircraft.TypeALower:
		return e.airMap.Candidates(aircraft.LowerDeck, aircraft.Center)
	case aircraft.TypeK:
		return e.airMap.Candidates(aircraft.LowerDeck, aircraft.Left, aircraft.Right)
	default:
		return nil
	}
}

// allocate assigns each packed device to the first position that clears
// the interlock and structural checks. A device with no feasible position
// is reported UNASSIGNED rather than failed.
//
// The conflict data lists some pairs in one direction only, so candidacy
// is checked both ways: the candidate's own conflict set against occupied
// positions, and every occupied position's conflict set against the
// candidate. Do not replace this with a pre-symmetrized table without
// auditing every pair.
func (e *Engine) allocate(ctx context.Context) {
	occupied := make(map[string]bool)

	ulds := append([]*cargo.PackedULD(nil), e.packed...)
	sort.SliceStable(ulds, func(i, j int) bool {
		return allocationRank(ulds[i].ULDType) < allocationRank(ulds[j].ULDType)
	})

	for _, u := range ulds {
		if u.AssignedPosition != "" {
			continue
		}

		assigned := false
		for _, p := range e.candidatesFor(u.ULDType) {
			if occupied[p.ID] {
				continue
			}
			if e.conflictsWithOccupied(p, occupied) {
				continue
			}
			if ok, _ := e.structural.CheckLinearLoad(u, p.Arm); !ok {
				continue
			}

			u.AssignedPosition = p.ID
			u.AssignedArm = p.Arm
			occupied[p.ID] = true
			assigned = true
			e.logger.DebugContext(ctx, "ULD assigned",
				"uld", u.ID,
				"type", u.ULDType,
				"position", p.ID,
				"arm", p.Arm)
			break
		}
		if !assigned {
			u.AssignedPosition = cargo.PositionUnassigned
			e.logger.InfoContext(ctx, "No feasible position for ULD",
				"uld", u.ID,
				"type", u.ULDType,
				"gross", u.GrossWeight())
		}
	}
}

// conflictsWithOccupied checks the candidate against the occupied set in
// both directions.
func (e *Engine) conflictsWithOccupied(p aircraft.Position, occupied map[string]bool) bool {
	for _, c := range p.Conflicts {
		if occupied[c] {
			return true
		}
	}
	for id := range occupied {
		occ, ok := e.airMap.Position(id)
		if !ok {
			continue
		}
		for _, c := range occ.Conflicts {
			if c == p.ID {
				return true
			}
		}
	}
	return false
}
