package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// ManifestCargo is one booking row as submitted by the front-end.
type ManifestCargo struct {
	Dest    string   `json:"dest"`
	Weight  float64  `json:"weight"`
	Volume  float64  `json:"volume"`
	Pieces  int      `json:"pieces"`
	Length  float64  `json:"length,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	SHC     []string `json:"shc,omitempty"`
	ULDType string   `json:"uld_type,omitempty"`
}

// Manifest is the JSON booking payload the CLI consumes.
type Manifest struct {
	FlightID     string              `json:"flight_id"`
	Route        []string            `json:"route"`
	Restrictions []string            `json:"restrictions,omitempty"`
	Cargos       []ManifestCargo     `json:"cargos"`
	ForcedGroups []cargo.ForcedGroup `json:"forced_groups,omitempty"`
}

// LoadManifest reads and decodes a booking manifest file.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("a booking manifest is required (--file)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

// requests converts manifest rows into planner cargo requests, assigning
// sequential ids the way the booking front-end does.
func (m *Manifest) requests() []cargo.Request {
	out := make([]cargo.Request, 0, len(m.Cargos))
	for i, row := range m.Cargos {
		var dims []cargo.Dimension
		if row.Length > 0 {
			dims = []cargo.Dimension{{L: row.Length, W: row.Width, H: row.Height}}
		}
		uldType := row.ULDType
		if uldType == "AUTO" {
			uldType = ""
		}
		out = append(out, cargo.Request{
			ID:            fmt.Sprintf("C-%d", i+1),
			Destination:   row.Dest,
			Weight:        row.Weight,
			Volume:        row.Volume,
			Pieces:        row.Pieces,
			Dims:          dims,
			SHC:           row.SHC,
			ForcedULDType: uldType,
		})
	}
	return out
}
