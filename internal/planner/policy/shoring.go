package policy

import (
	"fmt"
	"strings"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

const (
	// shoringDensity is the plywood/lumber density in kg/m3.
	shoringDensity = 600.0

	// floorLimitKgM2 is the floor panel pressure limit in kg/m2.
	floorLimitKgM2 = 976.0

	// lowerContourFullWidth is the width in cm beyond which a piece
	// overhangs the lower-deck contour on both sides.
	lowerContourFullWidth = 244.0
)

// ShoringRequirement is the combined reinforcement need for one cargo on a
// given device type at a given arm.
type ShoringRequirement struct {
	Needed      bool
	AddedWeight float64 // kg of reinforcement material
	AddedHeight float64 // cm added under the load
	Reasons     []string
}

// CalculateShoringNeeds sums three independent reinforcement needs for the
// cargo's largest-footprint piece: floor pressure over the panel limit,
// running load over the station limit, and contour overhang on lower-deck
// pallets. Cargo without dimensions needs no shoring.
func CalculateShoringNeeds(c cargo.Request, uldType string, arm float64) ShoringRequirement {
	var res ShoringRequirement

	piece, ok := c.LargestFootprint()
	if !ok {
		return res
	}
	pieceWeight := c.Weight / float64(c.Pieces)

	// Floor pressure: spread the load over a 2 cm plywood base covering
	// the full ULD footprint.
	areaM2 := piece.FootprintArea() / 10000.0
	pressure := 99999.0
	if areaM2 > 0 {
		pressure = pieceWeight / areaM2
	}
	if pressure > floorLimitKgM2 {
		if spec, err := aircraft.ULDSpecFor(uldType); err == nil {
			baseM2 := (spec.Length * 2.54 * spec.Width * 2.54) / 10000.0
			res.Needed = true
			res.AddedWeight += baseM2 * 0.02 * shoringDensity
			res.AddedHeight += 2.0
			res.Reasons = append(res.Reasons, fmt.Sprintf("Area Load (%.0f > %.0f)", pressure, floorLimitKgM2))
		}
	}

	// Running load: three 10x10 cm skids long enough to bring the kg/inch
	// back under the station limit.
	limit := aircraft.LinearLimit(arm)
	actual := pieceWeight / (piece.L / 2.54)
	if actual > limit {
		requiredLenCM := pieceWeight / limit * 2.54
		volM3 := 3 * 0.1 * (requiredLenCM / 100.0) * 0.1
		res.Needed = true
		res.AddedWeight += volM3 * shoringDensity
		res.AddedHeight += 10.0
		res.Reasons = append(res.Reasons, fmt.Sprintf("Linear Load (%.1f > %.1f)", actual, limit))
	}

	// Contour overhang: wide pieces on a lower-deck pallet ride up on
	// wedges. Only the increment over height already added counts.
	if strings.Contains(uldType, "LOWER") && piece.W > lowerContourFullWidth {
		overhang := (piece.W - lowerContourFullWidth) / 2
		requiredH := overhang/1.5 + 5.0
		if requiredH > res.AddedHeight {
			diff := requiredH - res.AddedHeight
			res.AddedWeight += areaM2 * (diff / 100.0) * shoringDensity
			res.AddedHeight = requiredH
			res.Reasons = append(res.Reasons, fmt.Sprintf("Contour Overhang (%.1fcm)", overhang))
		}
	}

	if len(res.Reasons) > 0 {
		res.Needed = true
	}
	return res
}

// Recommendation is the device type chosen for a single-piece cargo.
type Recommendation struct {
	Type     string
	Contour  string
	Reason   string
	Floating bool // Exceeds the 20-ft pallet limit; needs aircraft tie-down
}

// RecommendULDType picks a device type for a cargo that has already been
// exploded to a single piece. Pieces under the 163 cm lower-deck cutoff go
// below: light small loads into a K container, the rest onto a lower-deck
// pallet. Main-deck loads escalate through the pallet weight tiers; beyond
// the 20-ft pallet limit the cargo is accepted as a floating load tied to
// the seat tracks.
func RecommendULDType(c cargo.Request) Recommendation {
	maxH := c.MaxHeight()
	if maxH > 0 && maxH <= 163 {
		if c.Weight < 1500 && c.Volume < 4.0 {
			return Recommendation{Type: aircraft.TypeK, Contour: aircraft.ContourLD3, Reason: "Lower Container"}
		}
		return Recommendation{Type: aircraft.TypeMLower, Contour: aircraft.ContourLower, Reason: "Lower Pallet"}
	}

	limitM := mustSpec(aircraft.TypeM).MaxGross
	limitR := mustSpec(aircraft.TypeR).MaxGross
	limitG := mustSpec(aircraft.TypeG).MaxGross

	switch {
	case c.Weight > limitG:
		return Recommendation{Type: aircraft.TypeG, Contour: aircraft.ContourFlat, Reason: "Floating Load (Requires Aircraft Tie-down)", Floating: true}
	case c.Weight > limitR:
		return Recommendation{Type: aircraft.TypeG, Contour: aircraft.ContourFlat, Reason: "20ft"}
	case c.Weight > limitM:
		return Recommendation{Type: aircraft.TypeR, Contour: aircraft.ContourFlat, Reason: "16ft"}
	default:
		return Recommendation{Type: aircraft.TypeM, Contour: aircraft.ContourQ6, Reason: "Standard"}
	}
}

// mustSpec resolves a catalogue type the recommender hard-depends on.
// The tier types are compiled in, so a miss is unreachable.
func mustSpec(uldType string) aircraft.ULDSpec {
	spec, err := aircraft.ULDSpecFor(uldType)
	if err != nil {
		panic(err)
	}
	return spec
}
