package aircraft

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownConflictRef indicates a position whose conflict list references
// a position id that does not exist in the map. The conflict tables are
// load-bearing for the interlock reasoning, so a dangling reference is a
// configuration fault.
var ErrUnknownConflictRef = errors.New("conflict references unknown position")

// mainDeckCentroids maps each main-deck row zone to its centroid arm in
// inches from the reference datum.
var mainDeckCentroids = map[string]float64{
	"A": 320.0, "B": 453.0, "C": 588.0, "D": 714.0, "E": 840.0,
	"F": 966.0, "G": 1092.0, "H": 1218.0, "J": 1344.0, "K": 1470.0,
	"L": 1596.0, "M": 1722.0, "P": 1848.0, "Q": 1939.0, "R": 2029.0,
	"S": 2155.0, "T": 2296.0,
}

// rowZones are the main-deck rows that carry a full Left/Right/Center
// position triple. Row order matters: a Center position straddles into the
// next row in this sequence.
var rowZones = []string{"C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "P", "Q", "R", "S"}

// linearLimitBand is one piece of the piecewise-constant linear load limit.
type linearLimitBand struct {
	start, end float64 // Arm range in inches, [start, end)
	limit      float64 // kg per inch
}

// linearLimits is the per-station running load limit along the fuselage.
// The final band extends to the aft pressure bulkhead and beyond.
var linearLimits = []linearLimitBand{
	{0, 525, 38.5},
	{525, 1000, 77.1},
	{1000, 1480, 131.5},
	{1480, 1920, 77.1},
	{1920, 2500, 16.3},
}

// ZoneLimit is a cumulative weight cap over a contiguous longitudinal band.
type ZoneLimit struct {
	Name  string
	Start float64 // Arm in inches, inclusive
	End   float64 // Arm in inches, inclusive
	Limit float64 // kg
}

// zoneLimits are the cumulative pivot weight limits (Figure 33.1.18).
var zoneLimits = []ZoneLimit{
	{Name: "FWD_LOWER", Start: 360, End: 1000, Limit: 27669},
	{Name: "AFT_LOWER", Start: 1480, End: 1900, Limit: 26081},
	{Name: "BULK", Start: 1900, End: 2160, Limit: 4408},
	{Name: "WINGBOX", Start: 1000, End: 1480, Limit: 45000},
}

// Map holds the usable position set for one planning run. The base map is
// built once from the static tables; flights with inoperative positions get
// their own Snapshot so restrictions never leak between flights.
type Map struct {
	positions map[string]Position
}

// NewMap builds the full B747-400F position map.
//
// Main deck: the nose bay carries center-only positions (A1, A2, B), rows
// C through S carry a Left/Right/Center triple at the row centroid, and T
// is the aft center-only position. A row's Center position blocks the L/R
// of its own row plus the whole triple of the next row, because a 20-ft
// pallet on center straddles two rows. Lower deck positions come from a
// fixed table with Center vs Left/Right conflicts expressed directly.
func NewMap() *Map {
	positions := make(map[string]Position, 96)

	add := func(p Position) { positions[p.ID] = p }

	// Nose and tail center-only positions.
	add(Position{ID: "A1", Deck: MainDeck, Kind: Center, Arm: 320.0})
	add(Position{ID: "A2", Deck: MainDeck, Kind: Center, Arm: 379.0})
	add(Position{ID: "B", Deck: MainDeck, Kind: Center, Arm: 453.0})
	add(Position{ID: "T", Deck: MainDeck, Kind: Center, Arm: 2296.0})

	for i, z := range rowZones {
		arm := mainDeckCentroids[z]
		add(Position{ID: z + "L", Deck: MainDeck, Kind: Left, Arm: arm, Conflicts: []string{z + "C"}})
		add(Position{ID: z + "R", Deck: MainDeck, Kind: Right, Arm: arm, Conflicts: []string{z + "C"}})

		conflicts := []string{z + "L", z + "R"}
		if i+1 < len(rowZones) {
			next := rowZones[i+1]
			conflicts = append(conflicts, next+"L", next+"R", next+"C")
		}
		add(Position{ID: z + "C", Deck: MainDeck, Kind: Center, Arm: arm, Conflicts: conflicts})
	}

	for _, p := range lowerDeckPositions {
		add(p)
	}

	return &Map{positions: positions}
}

// lowerDeckPositions is the fixed lower-deck position table.
var lowerDeckPositions = []Position{
	{ID: "11P", Deck: LowerDeck, Kind: Center, Arm: 513.2, Conflicts: []string{"11L", "11R"}},
	{ID: "11L", Deck: LowerDeck, Kind: Left, Arm: 510.4, Conflicts: []string{"11P"}},
	{ID: "11R", Deck: LowerDeck, Kind: Right, Arm: 510.4, Conflicts: []string{"11P"}},
	{ID: "12P", Deck: LowerDeck, Kind: Center, Arm: 610.2, Conflicts: []string{"12L", "12R", "13L", "13R"}},
	{ID: "12L", Deck: LowerDeck, Kind: Left, Arm: 571.6, Conflicts: []string{"12P"}},
	{ID: "12R", Deck: LowerDeck, Kind: Right, Arm: 571.6, Conflicts: []string{"12P"}},
	{ID: "13L", Deck: LowerDeck, Kind: Left, Arm: 632.9, Conflicts: []string{"12P"}},
	{ID: "13R", Deck: LowerDeck, Kind: Right, Arm: 632.9, Conflicts: []string{"12P"}},
	{ID: "21P", Deck: LowerDeck, Kind: Center, Arm: 744.7, Conflicts: []string{"21L", "21R", "22L", "22R"}},
	{ID: "21L", Deck: LowerDeck, Kind: Left, Arm: 713.9, Conflicts: []string{"21P"}},
	{ID: "21R", Deck: LowerDeck, Kind: Right, Arm: 713.9, Conflicts: []string{"21P"}},
	{ID: "22L", Deck: LowerDeck, Kind: Left, Arm: 774.4, Conflicts: []string{"21P"}},
	{ID: "22R", Deck: LowerDeck, Kind: Right, Arm: 774.4, Conflicts: []string{"21P"}},
	{ID: "22P", Deck: LowerDeck, Kind: Center, Arm: 841.7, Conflicts: []string{"23L", "23R"}},
	{ID: "23L", Deck: LowerDeck, Kind: Left, Arm: 834.9, Conflicts: []string{"22P"}},
	{ID: "23R", Deck: LowerDeck, Kind: Right, Arm: 834.9, Conflicts: []string{"22P"}},
	{ID: "23P", Deck: LowerDeck, Kind: Center, Arm: 938.7, Conflicts: []string{"24L", "24R", "25L", "25R"}},
	{ID: "24L", Deck: LowerDeck, Kind: Left, Arm: 895.4, Conflicts: []string{"23P"}},
	{ID: "24R", Deck: LowerDeck, Kind: Right, Arm: 895.4, Conflicts: []string{"23P"}},
	{ID: "25L", Deck: LowerDeck, Kind: Left, Arm: 956.4, Conflicts: []string{"23P"}},
	{ID: "25R", Deck: LowerDeck, Kind: Right, Arm: 956.4, Conflicts: []string{"23P"}},
	{ID: "31P", Deck: LowerDeck, Kind: Center, Arm: 1534.6, Conflicts: []string{"31L", "31R", "32L", "32R"}},
	{ID: "31L", Deck: LowerDeck, Kind: Left, Arm: 1517.0, Conflicts: []string{"31P"}},
	{ID: "31R", Deck: LowerDeck, Kind: Right, Arm: 1517.0, Conflicts: []string{"31P"}},
	{ID: "32L", Deck: LowerDeck, Kind: Left, Arm: 1577.4, Conflicts: []string{"31P"}},
	{ID: "32R", Deck: LowerDeck, Kind: Right, Arm: 1577.4, Conflicts: []string{"31P"}},
	{ID: "32P", Deck: LowerDeck, Kind: Center, Arm: 1631.6, Conflicts: []string{"33L", "33R"}},
	{ID: "33L", Deck: LowerDeck, Kind: Left, Arm: 1637.9, Conflicts: []string{"32P"}},
	{ID: "33R", Deck: LowerDeck, Kind: Right, Arm: 1637.9, Conflicts: []string{"32P"}},
	{ID: "41P", Deck: LowerDeck, Kind: Center, Arm: 1728.6, Conflicts: []string{"41L", "41R", "42L", "42R"}},
	{ID: "41L", Deck: LowerDeck, Kind: Left, Arm: 1698.4, Conflicts: []string{"41P"}},
	{ID: "41R", Deck: LowerDeck, Kind: Right, Arm: 1698.4, Conflicts: []string{"41P"}},
	{ID: "42L", Deck: LowerDeck, Kind: Left, Arm: 1758.9, Conflicts: []string{"41P"}},
	{ID: "42R", Deck: LowerDeck, Kind: Right, Arm: 1758.9, Conflicts: []string{"41P"}},
	{ID: "42P", Deck: LowerDeck, Kind: Center, Arm: 1825.6, Conflicts: []string{"43L", "43R"}},
	{ID: "43L", Deck: LowerDeck, Kind: Left, Arm: 1820.6, Conflicts: []string{"42P"}},
	{ID: "43R", Deck: LowerDeck, Kind: Right, Arm: 1820.6, Conflicts: []string{"42P"}},
	{ID: "44L", Deck: LowerDeck, Kind: Left, Arm: 1882.4},
	{ID: "44R", Deck: LowerDeck, Kind: Right, Arm: 1882.4},
	{ID: "45L", Deck: LowerDeck, Kind: Left, Arm: 1944.2},
	{ID: "45R", Deck: LowerDeck, Kind: Right, Arm: 1944.2},
}

// Snapshot returns a copy of the map with the given positions removed.
// Each planning run works on its own snapshot so inoperative positions
// declared for one flight never affect another.
func (m *Map) Snapshot(disabled []string) *Map {
	drop := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		drop[id] = true
	}

	positions := make(map[string]Position, len(m.positions))
	for id, p := range m.positions {
		if !drop[id] {
			positions[id] = p
		}
	}
	return &Map{positions: positions}
}

// Validate checks that every conflict reference resolves to a position that
// exists in the base map. A snapshot may legitimately drop one side of a
// pair, so validation runs against the full map before snapshotting.
func (m *Map) Validate() error {
	for id, p := range m.positions {
		for _, ref := range p.Conflicts {
			if _, ok := m.positions[ref]; !ok {
				return fmt.Errorf("%w: %s -> %s", ErrUnknownConflictRef, id, ref)
			}
		}
	}
	return nil
}

// Position returns the position with the given id, if present.
func (m *Map) Position(id string) (Position, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// Candidates returns the positions on a deck matching any of the given
// kinds, sorted by arm ascending with the id as tiebreaker so allocation
// fills front-to-back deterministically.
func (m *Map) Candidates(deck Deck, kinds ...PositionKind) []Position {
	var out []Position
	for _, p := range m.positions {
		if p.Deck != deck {
			continue
		}
		for _, k := range kinds {
			if p.Kind == k {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Arm != out[j].Arm {
			return out[i].Arm < out[j].Arm
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of usable positions in the map.
func (m *Map) Len() int {
	return len(m.positions)
}

// LinearLimit returns the running load limit in kg/inch at the given arm
// of this map.
func (m *Map) LinearLimit(arm float64) float64 {
	return LinearLimit(arm)
}

// LinearLimit returns the running load limit in kg/inch at the given arm.
// The table is piecewise constant; arms beyond the last band keep the last
// band's limit.
func LinearLimit(arm float64) float64 {
	for _, band := range linearLimits {
		if arm >= band.start && arm < band.end {
			return band.limit
		}
	}
	return linearLimits[len(linearLimits)-1].limit
}

// Zones returns the cumulative zone weight limits.
func Zones() []ZoneLimit {
	return zoneLimits
}
