// Package packing estimates how many pieces fit one device and minimizes
// device counts for uniform residual cargo via a MIP bin-packing model.
package packing

import "github.com/Joechou2430/b747-load-engine/internal/aircraft"

// MaxPiecesPerULD computes a geometric ceiling on identical boxes of
// l x w x h cm per device of the given type: both base orientations are
// tried on the footprint, the better one is stacked up to the contour
// height. Returns 0 when a single piece does not fit at all.
func MaxPiecesPerULD(l, w, h float64, uldType string) int {
	spec, err := aircraft.ULDSpecFor(uldType)
	if err != nil {
		return 0
	}
	uldL := spec.Length * 2.54
	uldW := spec.Width * 2.54
	uldH := aircraft.StackHeight(uldType)

	if h > uldH || ((l > uldL || w > uldW) && (w > uldL || l > uldW)) {
		return 0
	}

	base1 := int(uldL/l) * int(uldW/w)
	base2 := int(uldL/w) * int(uldW/l)
	best := base1
	if base2 > best {
		best = base2
	}

	tiers := 1
	if h > 0 {
		tiers = int(uldH / h)
	}
	return best * tiers
}
