package cargo

import (
	"errors"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	valid := Request{ID: "C1", Destination: "LAX", Weight: 500, Volume: 2, Pieces: 1}

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"valid", func(r *Request) {}, nil},
		{"zero weight", func(r *Request) { r.Weight = 0 }, ErrNonPositiveWeight},
		{"negative weight", func(r *Request) { r.Weight = -5 }, ErrNonPositiveWeight},
		{"zero volume", func(r *Request) { r.Volume = 0 }, ErrNonPositiveVolume},
		{"zero pieces", func(r *Request) { r.Pieces = 0 }, ErrInvalidPieceCount},
		{"empty destination", func(r *Request) { r.Destination = "" }, ErrEmptyDestination},
		{"zero dim edge", func(r *Request) { r.Dims = []Dimension{{L: 100, W: 0, H: 50}} }, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestMaxHeightAndLargestPiece(t *testing.T) {
	r := Request{
		ID: "C1", Destination: "LAX", Weight: 100, Volume: 1, Pieces: 1,
		Dims: []Dimension{
			{L: 100, W: 100, H: 50},
			{L: 200, W: 150, H: 40},
		},
	}

	if got := r.MaxHeight(); got != 50 {
		t.Errorf("MaxHeight = %.1f, want 50", got)
	}

	piece, ok := r.LargestPiece()
	if !ok || piece.L != 200 {
		t.Errorf("LargestPiece = %+v, want the 200x150x40 box", piece)
	}

	foot, ok := r.LargestFootprint()
	if !ok || foot.L != 200 {
		t.Errorf("LargestFootprint = %+v, want the 200x150x40 box", foot)
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := Request{
		ID: "C1", Destination: "LAX", Weight: 100, Volume: 1, Pieces: 1,
		Dims: []Dimension{{L: 100, W: 100, H: 50}},
		SHC:  []string{"AVI"},
	}

	clone := r.Clone()
	clone.Dims[0].H = 99
	clone.SHC[0] = "RRY"

	if r.Dims[0].H != 50 || r.SHC[0] != "AVI" {
		t.Error("Clone must not share backing arrays with the original")
	}
}

func TestForcedGroupMatches(t *testing.T) {
	g := ForcedGroup{GroupID: "VIP", CargoIDs: []string{"V1", "V2"}}

	tests := []struct {
		cargoID string
		want    bool
	}{
		{"V1", true},
		{"V1-3", true}, // piece clone
		{"V2", true},
		{"V10", false}, // prefix of another id must not match
		{"V10-1", false},
		{"X1", false},
	}

	for _, tt := range tests {
		t.Run(tt.cargoID, func(t *testing.T) {
			if got := g.Matches(tt.cargoID); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.cargoID, got, tt.want)
			}
		})
	}
}

func TestPackedULDAccounting(t *testing.T) {
	u := NewPackedULD("SPL-001", "M", "Q6", "LAX")
	u.Add(Request{ID: "C1", Destination: "LAX", Weight: 500, Volume: 2, Pieces: 1, SHC: []string{"AVI", "GEN"}})
	u.Add(Request{ID: "C2", Destination: "LAX", Weight: 300, Volume: 1, Pieces: 1, SHC: []string{"AVI"}})

	if u.TotalWeight != 800 || u.TotalVolume != 3 {
		t.Errorf("totals = %.1fkg %.1fm3, want 800kg 3m3", u.TotalWeight, u.TotalVolume)
	}
	// M tare is 120 kg.
	if got, want := u.GrossWeight(), 920.0; got != want {
		t.Errorf("GrossWeight = %.1f, want %.1f", got, want)
	}

	shc := u.SortedSHC()
	if len(shc) != 2 || shc[0] != "AVI" || shc[1] != "GEN" {
		t.Errorf("SortedSHC = %v, want [AVI GEN]", shc)
	}

	if u.IsFloating() {
		t.Error("plain device must not report floating")
	}
	u.ShoringNote = FloatingLoadNote
	if !u.IsFloating() {
		t.Error("floating note must report floating")
	}
}
