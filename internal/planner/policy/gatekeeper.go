// Package policy implements the admission and reinforcement checks the
// planning engine runs per cargo: door-fit gatekeeping, dangerous-goods
// segregation, shoring calculation and structural load limits.
package policy

import (
	"fmt"
	"sort"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// DoorCheck is the result of a door-fit validation.
type DoorCheck struct {
	Pass       bool
	EntryPoint string // Which door admits the cargo, or "None"
	Reason     string
}

// ValidateDoorEntry checks whether the cargo's largest piece fits through
// any cargo door. The piece is assumed rotatable: its longest edge goes
// along the fuselage, so the two smaller edges must clear the door opening.
// Doors are tried lower deck first, then the main-deck side door, then the
// nose door. Cargo without dimensions is admitted as loose load.
func ValidateDoorEntry(c cargo.Request) DoorCheck {
	piece, ok := c.LargestPiece()
	if !ok {
		return DoorCheck{Pass: true, EntryPoint: "Loose", Reason: "No dims provided"}
	}

	edges := []float64{piece.L, piece.W, piece.H}
	sort.Float64s(edges)
	minEdge, midEdge := edges[0], edges[1]

	doors := []struct {
		door  aircraft.Door
		entry string
	}{
		{aircraft.LowerDoor, "Lower"},
		{aircraft.SideDoor, "Main-SCD"},
		{aircraft.NoseDoor, "Main-Nose"},
	}
	for _, d := range doors {
		if midEdge <= d.door.MaxH && minEdge <= d.door.MaxW {
			return DoorCheck{Pass: true, EntryPoint: d.entry, Reason: "Fits " + d.door.Name}
		}
	}

	return DoorCheck{
		Pass:       false,
		EntryPoint: "None",
		Reason:     fmt.Sprintf("Dims %dx%dcm exceed all doors.", int(minEdge), int(midEdge)),
	}
}
