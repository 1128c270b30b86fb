package aircraft

import (
	"errors"
	"fmt"
)

// ErrUnknownULDType indicates a ULD type that is not in the catalogue.
// Referencing an unknown type is a configuration fault and aborts planning.
var ErrUnknownULDType = errors.New("unknown ULD type")

// Contour identifies the vertical silhouette a ULD is built up to.
const (
	ContourQ6    = "Q6"
	ContourQ7    = "Q7"
	ContourLD3   = "LD3"
	ContourFlat  = "FLAT"
	ContourLower = "LOWER"
)

// ULD type keys as used throughout the planner.
const (
	TypeM      = "M"
	TypeMQ7    = "M_Q7"
	TypeA      = "A"
	TypeR      = "R"
	TypeG      = "G"
	TypeK      = "K"
	TypeMLower = "M_LOWER"
	TypeALower = "A_LOWER"
)

// PackingLossFactor discounts the nominal ULD volume for build-up loss:
// real loads never tile the contour perfectly.
const PackingLossFactor = 0.85

// ULDSpec describes one unit load device type.
type ULDSpec struct {
	Code     string  // IATA device code (e.g. "PMC-Q6", "AKE")
	Contour  string  // Build-up contour
	MaxGross float64 // Maximum gross weight in kg (structure + tare + cargo)
	Tare     float64 // Empty device weight in kg
	MaxVol   float64 // Usable volume in m3 before packing loss
	Length   float64 // Footprint length along the fuselage in inches
	Width    float64 // Footprint width in inches
}

// uldLibrary is the B747-400F ULD catalogue.
var uldLibrary = map[string]ULDSpec{
	TypeM:      {Code: "PMC-Q6", Contour: ContourQ6, MaxGross: 6804.0, Tare: 120.0, MaxVol: 19.0, Length: 125, Width: 96},
	TypeMQ7:    {Code: "PMC-Q7", Contour: ContourQ7, MaxGross: 6804.0, Tare: 120.0, MaxVol: 24.0, Length: 125, Width: 96},
	TypeA:      {Code: "PAG", Contour: ContourQ6, MaxGross: 6033.0, Tare: 110.0, MaxVol: 17.0, Length: 125, Width: 88},
	TypeR:      {Code: "PRA", Contour: ContourFlat, MaxGross: 11340.0, Tare: 400.0, MaxVol: 27.0, Length: 196, Width: 96},
	TypeG:      {Code: "PGA", Contour: ContourFlat, MaxGross: 13608.0, Tare: 500.0, MaxVol: 33.0, Length: 238.5, Width: 96},
	TypeK:      {Code: "AKE", Contour: ContourLD3, MaxGross: 1587.0, Tare: 90.0, MaxVol: 4.3, Length: 61.5, Width: 60.4},
	TypeMLower: {Code: "PMC-LD", Contour: ContourLower, MaxGross: 5035.0, Tare: 120.0, MaxVol: 11.5, Length: 125, Width: 96},
	TypeALower: {Code: "PAG-LD", Contour: ContourLower, MaxGross: 4626.0, Tare: 110.0, MaxVol: 10.5, Length: 125, Width: 88},
}

// NetWeight returns the cargo weight capacity: max gross less tare.
func (s ULDSpec) NetWeight() float64 {
	return s.MaxGross - s.Tare
}

// EffectiveVolume returns the plannable volume after packing loss.
func (s ULDSpec) EffectiveVolume() float64 {
	return s.MaxVol * PackingLossFactor
}

// ULDSpecFor looks up the catalogue entry for a ULD type.
func ULDSpecFor(uldType string) (ULDSpec, error) {
	spec, ok := uldLibrary[uldType]
	if !ok {
		return ULDSpec{}, fmt.Errorf("%w: %q", ErrUnknownULDType, uldType)
	}
	return spec, nil
}

// Tare returns the empty weight for a ULD type, or 0 for an unknown type.
// Gross-weight accounting must not silently diverge on a catalogue miss, so
// callers that can fail should use ULDSpecFor instead.
func Tare(uldType string) float64 {
	return uldLibrary[uldType].Tare
}

// StackHeight returns the usable stacking height in cm for a ULD type,
// derived from its contour.
func StackHeight(uldType string) float64 {
	if uldType == TypeMLower {
		return 163.0
	}
	spec, ok := uldLibrary[uldType]
	if !ok {
		return 0
	}
	switch spec.Contour {
	case ContourQ6:
		return 244.0
	case ContourQ7:
		return 300.0
	default:
		return 160.0
	}
}
