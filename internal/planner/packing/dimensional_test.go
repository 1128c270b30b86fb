package packing

import (
	"testing"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
)

func TestMaxPiecesPerULD(t *testing.T) {
	tests := []struct {
		name    string
		l, w, h float64
		uldType string
		want    int
	}{
		// M footprint is 317.5 x 243.84 cm under a 244 cm contour:
		// 3x2 boxes per tier, two tiers.
		{"cubes on an M pallet", 100, 100, 100, aircraft.TypeM, 12},
		// Rotating the base matters: 300 cm only fits lengthwise.
		{"long boxes use the better orientation", 300, 60, 100, aircraft.TypeM, 8},
		{"too tall for the Q6 contour", 100, 100, 250, aircraft.TypeM, 0},
		{"fits the taller Q7 contour", 100, 100, 250, aircraft.TypeMQ7, 6},
		{"too long for a K container", 200, 50, 50, aircraft.TypeK, 0},
		{"lower pallet uses the 163 cm cap", 100, 100, 163, aircraft.TypeMLower, 6},
		{"unknown type fits nothing", 10, 10, 10, "XL", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxPiecesPerULD(tt.l, tt.w, tt.h, tt.uldType); got != tt.want {
				t.Errorf("MaxPiecesPerULD(%v,%v,%v,%s) = %d, want %d", tt.l, tt.w, tt.h, tt.uldType, got, tt.want)
			}
		})
	}
}
