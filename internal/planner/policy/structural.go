package policy

import (
	"fmt"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// StructuralEngine checks packed devices against the airframe load limits
// of one flight's map snapshot.
type StructuralEngine struct {
	airMap *aircraft.Map
}

// NewStructuralEngine creates a structural checker over a map snapshot.
func NewStructuralEngine(airMap *aircraft.Map) *StructuralEngine {
	return &StructuralEngine{airMap: airMap}
}

// CheckLinearLoad verifies the device's running load (gross weight over
// footprint length) against the station limit at the given arm.
func (e *StructuralEngine) CheckLinearLoad(u *cargo.PackedULD, arm float64) (bool, string) {
	spec, err := aircraft.ULDSpecFor(u.ULDType)
	if err != nil {
		return false, "Unknown ULD"
	}

	limit := e.airMap.LinearLimit(arm)
	linearLoad := u.GrossWeight() / spec.Length
	if linearLoad > limit {
		return false, fmt.Sprintf("Load %.1f kg/in > Limit %.1f kg/in", linearLoad, limit)
	}
	return true, "OK"
}

// CheckZoneLimits sums the gross weight of assigned devices per cumulative
// zone and returns one warning per zone over its limit.
func (e *StructuralEngine) CheckZoneLimits(ulds []*cargo.PackedULD) []string {
	zones := aircraft.Zones()
	zoneWeights := make(map[string]float64, len(zones))

	for _, u := range ulds {
		if u.AssignedPosition == "" || u.AssignedPosition == cargo.PositionUnassigned {
			continue
		}
		for _, z := range zones {
			if u.AssignedArm >= z.Start && u.AssignedArm <= z.End {
				zoneWeights[z.Name] += u.GrossWeight()
			}
		}
	}

	var warnings []string
	for _, z := range zones {
		if w := zoneWeights[z.Name]; w > z.Limit {
			warnings = append(warnings, fmt.Sprintf("Zone %s Overweight! %.0f > Limit %.0f", z.Name, w, z.Limit))
		}
	}
	return warnings
}
