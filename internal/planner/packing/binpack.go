package packing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

// ErrNoSolution indicates the solver returned neither an optimal nor a
// feasible assignment. The caller falls back to first-fit-decreasing.
var ErrNoSolution = errors.New("bin packing produced no usable solution")

// BinPacker wraps the MIP model that consolidates a homogeneous cargo list
// (one destination, one target device type, no special handling) into the
// minimum number of devices.
type BinPacker struct {
	logger       *slog.Logger
	solveTimeout time.Duration
}

// NewBinPacker creates a bin packer with the given solve budget per batch.
// A zero timeout uses a 10 second default.
func NewBinPacker(logger *slog.Logger, solveTimeout time.Duration) *BinPacker {
	if solveTimeout <= 0 {
		solveTimeout = 10 * time.Second
	}
	return &BinPacker{logger: logger, solveTimeout: solveTimeout}
}

// Optimize assigns every cargo to exactly one device so that per-device
// weight and effective volume caps hold, minimizing the device count.
// Devices are capped at weight = max gross - tare and volume = nominal
// volume after packing loss. The bin upper bound is ceil(1.2 * total
// volume / cap) + 2.
//
// The returned devices carry placeholder ids; the caller renames them into
// its own sequence. On solver failure the error wraps ErrNoSolution and
// the caller is expected to pack the residue heuristically.
func (p *BinPacker) Optimize(ctx context.Context, cargos []cargo.Request, uldType string) ([]*cargo.PackedULD, error) {
	if len(cargos) == 0 {
		return nil, nil
	}

	spec, err := aircraft.ULDSpecFor(uldType)
	if err != nil {
		return nil, err
	}
	capWeight := spec.NetWeight()
	capVolume := spec.EffectiveVolume()

	totalVolume := 0.0
	for _, c := range cargos {
		totalVolume += c.Volume
	}
	maxBins := int(math.Ceil(totalVolume/capVolume*1.2)) + 2

	p.logger.DebugContext(ctx, "Building bin packing model",
		"cargos", len(cargos),
		"uldType", uldType,
		"maxBins", maxBins,
		"capWeight", capWeight,
		"capVolume", capVolume)

	m := mip.NewModel()

	// y[j] = 1 when bin j is opened, x[i][j] = 1 when cargo i lands in j.
	y := make([]mip.Bool, maxBins)
	x := make([][]mip.Bool, len(cargos))
	for j := 0; j < maxBins; j++ {
		y[j] = m.NewBool()
	}
	for i := range cargos {
		x[i] = make([]mip.Bool, maxBins)
		for j := 0; j < maxBins; j++ {
			x[i][j] = m.NewBool()
		}
	}

	// Each cargo lands in exactly one bin.
	for i := range cargos {
		assignment := m.NewConstraint(mip.Equal, 1.0)
		for j := 0; j < maxBins; j++ {
			assignment.NewTerm(1.0, x[i][j])
		}
	}

	// Weight and volume caps apply only to opened bins.
	for j := 0; j < maxBins; j++ {
		weightCap := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		volumeCap := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		for i, c := range cargos {
			weightCap.NewTerm(c.Weight, x[i][j])
			volumeCap.NewTerm(c.Volume, x[i][j])
		}
		weightCap.NewTerm(-capWeight, y[j])
		volumeCap.NewTerm(-capVolume, y[j])
	}

	m.Objective().SetMinimize()
	for j := 0; j < maxBins; j++ {
		m.Objective().NewTerm(1.0, y[j])
	}

	solver, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}

	solveOptions := mip.SolveOptions{}
	solveOptions.Duration = p.solveTimeout

	solution, err := solver.Solve(solveOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}
	if solution == nil || !solution.HasValues() {
		return nil, ErrNoSolution
	}

	p.logger.DebugContext(ctx, "Bin packing solved",
		"optimal", solution.IsOptimal(),
		"objective", solution.ObjectiveValue())

	var results []*cargo.PackedULD
	for j := 0; j < maxBins; j++ {
		if solution.Value(y[j]) < 0.5 {
			continue
		}
		u := cargo.NewPackedULD("TEMP", uldType, spec.Contour, cargos[0].Destination)
		for i, c := range cargos {
			if solution.Value(x[i][j]) > 0.5 {
				u.Add(c)
			}
		}
		if len(u.Items) > 0 {
			results = append(results, u)
		}
	}
	return results, nil
}
