package cargo

import (
	"sort"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
)

// ULDStatus tracks whether a packed device still accepts items.
type ULDStatus string

const (
	StatusOpen   ULDStatus = "OPEN"
	StatusClosed ULDStatus = "CLOSED"
)

// PositionUnassigned marks a ULD the allocator could not place. It is
// reported to the operator, not treated as an error.
const PositionUnassigned = "UNASSIGNED"

// FloatingLoadNote flags oversize cargo tied directly to the aircraft seat
// tracks instead of a certified device.
const FloatingLoadNote = "FLOATING LOAD"

// PackedULD is one built-up unit load device. All items share a single
// destination and a mutually compatible SHC set.
type PackedULD struct {
	ID          string
	ULDType     string
	Contour     string
	Destination string
	Items       []Request
	TotalWeight float64 // Sum of item weights in kg (shoring included per item)
	TotalVolume float64 // Sum of item volumes in m3
	IsPure      bool    // Built from a forced group, must not be merged
	Status      ULDStatus
	SHCCodes    map[string]struct{}

	AssignedPosition string  // Position id, or PositionUnassigned
	AssignedArm      float64 // Centroid arm of the assigned position

	ShoringWeight float64 // Reinforcement material weight in kg
	ShoringNote   string
}

// NewPackedULD creates an empty open device of the given type.
func NewPackedULD(id, uldType, contour, destination string) *PackedULD {
	return &PackedULD{
		ID:          id,
		ULDType:     uldType,
		Contour:     contour,
		Destination: destination,
		Status:      StatusOpen,
		SHCCodes:    make(map[string]struct{}),
	}
}

// Add places a request into the device and updates the running totals.
// Capacity and segregation checks are the caller's responsibility.
func (u *PackedULD) Add(r Request) {
	u.Items = append(u.Items, r)
	u.TotalWeight += r.Weight
	u.TotalVolume += r.Volume
	for _, s := range r.SHC {
		u.SHCCodes[s] = struct{}{}
	}
}

// GrossWeight returns total cargo weight plus tare plus shoring material.
func (u *PackedULD) GrossWeight() float64 {
	return u.TotalWeight + aircraft.Tare(u.ULDType) + u.ShoringWeight
}

// UtilizationPct returns the volume utilization against the nominal
// device volume, in percent.
func (u *PackedULD) UtilizationPct() float64 {
	spec, err := aircraft.ULDSpecFor(u.ULDType)
	if err != nil || spec.MaxVol == 0 {
		return 0
	}
	return u.TotalVolume / spec.MaxVol * 100
}

// IsFloating reports whether the device carries a floating load.
func (u *PackedULD) IsFloating() bool {
	return u.ShoringNote == FloatingLoadNote
}

// SortedSHC returns the SHC set as a sorted slice for stable reporting.
func (u *PackedULD) SortedSHC() []string {
	out := make([]string, 0, len(u.SHCCodes))
	for s := range u.SHCCodes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
