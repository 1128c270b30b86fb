// Package balance computes the zero-fuel-weight center of gravity from an
// allocated load plan and validates it against the CG envelope. It is a
// thin arithmetic layer over the planner's output, not part of the
// planning pipeline.
package balance

import (
	"fmt"

	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// AircraftWeightConfig holds the basic weight parameters of the airframe.
type AircraftWeightConfig struct {
	DOW    float64 // Dry operating weight in kg
	DOI    float64 // Dry operating index
	MACLen float64 // Mean aerodynamic chord length in inches
	LEMAC  float64 // Leading edge of MAC in inches from the datum
}

// EnvelopeLimits bound the acceptable CG as % MAC.
type EnvelopeLimits struct {
	FwdLimit float64
	AftLimit float64
}

// CGResult is the computed zero-fuel-weight state.
type CGResult struct {
	ZFWKg        float64
	PayloadKg    float64
	TotalMoment  float64
	CGArmInches  float64
	CGMACPercent float64
}

// EnvelopeStatus is the verdict of an envelope validation.
type EnvelopeStatus struct {
	OK      bool
	Message string
}

// CalculateCG computes ZFW CG over the assigned devices. The dry operating
// weight is assumed to sit at 25% MAC. Unassigned devices carry no arm and
// are excluded.
func CalculateCG(cfg AircraftWeightConfig, ulds []*cargo.PackedULD) CGResult {
	dowArm := cfg.LEMAC + cfg.MACLen*0.25
	totalMoment := cfg.DOW * dowArm
	totalWeight := cfg.DOW

	payloadWeight := 0.0
	for _, u := range ulds {
		if u.AssignedPosition == "" || u.AssignedPosition == cargo.PositionUnassigned {
			continue
		}
		w := u.GrossWeight()
		m := w * u.AssignedArm
		payloadWeight += w
		totalWeight += w
		totalMoment += m
	}

	cgArm := 0.0
	if totalWeight > 0 {
		cgArm = totalMoment / totalWeight
	}
	cgMAC := (cgArm - cfg.LEMAC) / cfg.MACLen * 100

	return CGResult{
		ZFWKg:        totalWeight,
		PayloadKg:    payloadWeight,
		TotalMoment:  totalMoment,
		CGArmInches:  cgArm,
		CGMACPercent: cgMAC,
	}
}

// ValidateEnvelope checks the CG against the forward and aft limits.
func ValidateEnvelope(cgMAC float64, limits EnvelopeLimits) EnvelopeStatus {
	if cgMAC < limits.FwdLimit {
		return EnvelopeStatus{
			Message: fmt.Sprintf("NOSE HEAVY! CG %.2f%% < Fwd Limit %.2f%%", cgMAC, limits.FwdLimit),
		}
	}
	if cgMAC > limits.AftLimit {
		return EnvelopeStatus{
			Message: fmt.Sprintf("TAIL HEAVY! CG %.2f%% > Aft Limit %.2f%%", cgMAC, limits.AftLimit),
		}
	}
	return EnvelopeStatus{OK: true, Message: "Within Envelope"}
}
