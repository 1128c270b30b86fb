package policy

// shcConflicts is the IATA segregation table (simplified). The listing is
// intentionally one-directional; CheckMix symmetrizes by testing both
// directions.
var shcConflicts = map[string][]string{
	"RXB": {"GEN", "RCX", "RFL"},
	"AVI": {"RRY", "ICE", "HUM"},
	"HUM": {"EAT", "PES"},
	"EAT": {"HUM", "RPB", "RIS"},
}

// CheckMix reports whether a new special handling code may share a device
// with the already-loaded set. The mix is allowed only if neither the new
// code's conflict list hits the existing set nor any existing code's list
// hits the new one.
func CheckMix(existing map[string]struct{}, newSHC string) bool {
	for _, bad := range shcConflicts[newSHC] {
		if _, ok := existing[bad]; ok {
			return false
		}
	}
	for code := range existing {
		for _, bad := range shcConflicts[code] {
			if bad == newSHC {
				return false
			}
		}
	}
	return true
}

// CompatibleWith reports whether all of a cargo's codes may join the
// device's existing set.
func CompatibleWith(existing map[string]struct{}, codes []string) bool {
	for _, s := range codes {
		if !CheckMix(existing, s) {
			return false
		}
	}
	return true
}
