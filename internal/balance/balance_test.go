package balance

import (
	"math"
	"testing"

	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

var testConfig = AircraftWeightConfig{
	DOW:    100000,
	DOI:    40,
	MACLen: 300,
	LEMAC:  1200,
}

func loadedULD(weight float64, position string, arm float64) *cargo.PackedULD {
	u := cargo.NewPackedULD("T-1", "M", "Q6", "LAX")
	// 120 kg M tare brings the gross to weight + 120.
	u.Add(cargo.Request{ID: "C1", Destination: "LAX", Weight: weight, Volume: 1, Pieces: 1})
	u.AssignedPosition = position
	u.AssignedArm = arm
	return u
}

func TestCalculateCGEmptyLoad(t *testing.T) {
	res := CalculateCG(testConfig, nil)

	// With no payload the CG sits at the assumed 25% MAC DOW arm.
	if res.ZFWKg != testConfig.DOW {
		t.Errorf("ZFWKg = %.1f, want %.1f", res.ZFWKg, testConfig.DOW)
	}
	if math.Abs(res.CGMACPercent-25.0) > 1e-9 {
		t.Errorf("CGMACPercent = %.4f, want 25", res.CGMACPercent)
	}
}

func TestCalculateCGPayloadAtDOWArm(t *testing.T) {
	// Payload placed exactly at the DOW arm keeps the CG at 25% MAC.
	dowArm := testConfig.LEMAC + testConfig.MACLen*0.25
	u := loadedULD(880, "EC", dowArm)

	res := CalculateCG(testConfig, []*cargo.PackedULD{u})
	if got, want := res.PayloadKg, 1000.0; got != want {
		t.Errorf("PayloadKg = %.1f, want %.1f", got, want)
	}
	if math.Abs(res.CGMACPercent-25.0) > 1e-9 {
		t.Errorf("CGMACPercent = %.4f, want 25", res.CGMACPercent)
	}
}

func TestCalculateCGAftPayloadMovesCGAft(t *testing.T) {
	u := loadedULD(9880, "T", 2296)
	res := CalculateCG(testConfig, []*cargo.PackedULD{u})
	if res.CGMACPercent <= 25.0 {
		t.Errorf("aft payload should move CG aft of 25%% MAC, got %.2f", res.CGMACPercent)
	}
}

func TestCalculateCGSkipsUnassigned(t *testing.T) {
	u := loadedULD(880, cargo.PositionUnassigned, 0)
	res := CalculateCG(testConfig, []*cargo.PackedULD{u})
	if res.PayloadKg != 0 {
		t.Errorf("unassigned devices must not count as payload, got %.1f", res.PayloadKg)
	}
}

func TestValidateEnvelope(t *testing.T) {
	limits := EnvelopeLimits{FwdLimit: 10, AftLimit: 33}

	tests := []struct {
		name   string
		cgMAC  float64
		wantOK bool
	}{
		{"within envelope", 25, true},
		{"on forward limit", 10, true},
		{"nose heavy", 9.5, false},
		{"tail heavy", 34, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEnvelope(tt.cgMAC, limits)
			if res.OK != tt.wantOK {
				t.Errorf("OK = %v (%s), want %v", res.OK, res.Message, tt.wantOK)
			}
		})
	}
}
