// Package planner implements the multi-phase load planning pipeline: cargo
// explosion, forced-group consolidation, per-cargo admission, batch
// optimization and aircraft position allocation.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
	"github.com/Joechou2430/b747-load-engine/internal/planner/packing"
	"github.com/Joechou2430/b747-load-engine/internal/planner/policy"
)

// shoringReferenceArm is the conservative forward arm (inches) used when
// estimating linear-load shoring before the final position is known.
const shoringReferenceArm = 320.0

// closeThreshold closes a 3D-packed device once its gross weight reaches
// this share of max gross.
const closeThreshold = 0.95

// ErrGrossOverweight indicates a device ended a packing phase over its
// certified max gross. This is an internal inconsistency, not an operator
// problem, so it aborts the planning call.
var ErrGrossOverweight = errors.New("packed ULD exceeds max gross weight")

// Rejection records a cargo the planner could not place at all.
type Rejection struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// batchPacker consolidates a homogeneous cargo list into devices of one
// type. Satisfied by packing.BinPacker.
type batchPacker interface {
	Optimize(ctx context.Context, cargos []cargo.Request, uldType string) ([]*cargo.PackedULD, error)
}

// Engine plans one flight. It is not safe for concurrent use; the sales
// layer serializes calls per flight id.
type Engine struct {
	route      []string
	airMap     *aircraft.Map
	logger     *slog.Logger
	structural *policy.StructuralEngine
	binPacker  batchPacker

	packed         []*cargo.PackedULD
	rejected       []Rejection
	actionRequired []cargo.Feedback
}

// NewEngine creates a planning engine over a per-flight map snapshot.
func NewEngine(route []string, airMap *aircraft.Map, logger *slog.Logger) *Engine {
	return &Engine{
		route:      route,
		airMap:     airMap,
		logger:     logger,
		structural: policy.NewStructuralEngine(airMap),
		binPacker:  packing.NewBinPacker(logger, 10*time.Second),
	}
}

// PlanFlight runs the full pipeline over the given cargo list and forced
// groups and returns the load plan report. Every call is a fresh planning
// pass; prior state is discarded. The input requests are never mutated.
func (e *Engine) PlanFlight(ctx context.Context, cargos []cargo.Request, groups []cargo.ForcedGroup) (*Report, error) {
	e.packed = nil
	e.rejected = nil
	e.actionRequired = nil

	e.logger.InfoContext(ctx, "Starting planning pass",
		"route", e.route,
		"cargos", len(cargos),
		"forcedGroups", len(groups),
		"positions", e.airMap.Len())

	admitted := make([]cargo.Request, 0, len(cargos))
	for _, c := range cargos {
		if err := c.Validate(); err != nil {
			e.reject(c.ID, err.Error())
			continue
		}
		admitted = append(admitted, c.Clone())
	}

	// Phase 0: explode multi-piece requests into per-piece clones.
	exploded := explode(admitted)
	e.logger.DebugContext(ctx, "Exploded cargo list", "pieces", len(exploded))

	// Phase 0.5: forced groups consume their cargos before admission.
	processed := make(map[string]bool)
	for _, group := range groups {
		var groupCargos []cargo.Request
		for _, c := range exploded {
			if group.Matches(c.ID) {
				groupCargos = append(groupCargos, c)
			}
		}
		if len(groupCargos) == 0 {
			continue
		}
		if err := e.packForcedGroup(ctx, group, groupCargos); err != nil {
			return nil, err
		}
		for _, c := range groupCargos {
			processed[c.ID] = true
		}
	}

	// Phase 1: per-cargo admission.
	var stdCargos []cargo.Request
	for _, c := range exploded {
		if processed[c.ID] {
			continue
		}

		doorCheck := policy.ValidateDoorEntry(c)
		if !doorCheck.Pass {
			e.reject(c.ID, doorCheck.Reason)
			continue
		}

		rec := policy.RecommendULDType(c)
		shoring := policy.CalculateShoringNeeds(c, rec.Type, shoringReferenceArm)
		if shoring.Needed {
			c.Weight += shoring.AddedWeight
			if len(c.Dims) > 0 {
				c.Dims[0].H += shoring.AddedHeight
			}
			e.logger.DebugContext(ctx, "Shoring applied",
				"cargo", c.ID,
				"addedWeight", shoring.AddedWeight,
				"addedHeight", shoring.AddedHeight,
				"reasons", shoring.Reasons)
		}

		special := c.ForcedULDType != "" ||
			(rec.Type != aircraft.TypeM && rec.Type != aircraft.TypeMLower && rec.Type != aircraft.TypeK) ||
			len(c.SHC) > 0 ||
			shoring.Needed ||
			rec.Floating

		switch {
		case special:
			if err := e.heuristicPack(ctx, c, rec.Floating); err != nil {
				return nil, err
			}
		case len(c.Dims) > 0:
			if err := e.pack3D(ctx, c, rec.Type); err != nil {
				return nil, err
			}
		default:
			stdCargos = append(stdCargos, c)
		}
	}

	// Phase 2: batch-optimize the uniform residue per deck. Dimension-less
	// cargo rides the main deck.
	var lowerBatch, mainBatch []cargo.Request
	for _, c := range stdCargos {
		if h := c.MaxHeight(); h > 0 && h <= 163 {
			lowerBatch = append(lowerBatch, c)
		} else {
			mainBatch = append(mainBatch, c)
		}
	}
	if err := e.smartBatchOptimize(ctx, lowerBatch, aircraft.TypeMLower); err != nil {
		return nil, err
	}
	if err := e.smartBatchOptimize(ctx, mainBatch, aircraft.TypeM); err != nil {
		return nil, err
	}

	if err := e.checkGrossConsistency(); err != nil {
		return nil, err
	}

	// Phase 3: aircraft allocation.
	e.allocate(ctx)

	// Phase 4: report.
	report := e.generateReport()
	e.logger.InfoContext(ctx, "Planning pass complete",
		"ulds", report.Summary.TotalULDs,
		"totalWeight", report.Summary.TotalWeight,
		"rejected", len(report.Rejected),
		"actionRequired", len(report.ActionRequired),
		"warnings", len(report.Summary.Warnings))
	return report, nil
}

func (e *Engine) reject(id, reason string) {
	e.rejected = append(e.rejected, Rejection{ID: id, Reason: reason})
}

// explode splits each multi-piece request into single-piece clones with
// the weight and volume shared evenly.
func explode(cargos []cargo.Request) []cargo.Request {
	var out []cargo.Request
	for _, c := range cargos {
		if c.Pieces <= 1 {
			out = append(out, c)
			continue
		}
		perWeight := c.Weight / float64(c.Pieces)
		perVolume := c.Volume / float64(c.Pieces)
		for i := 0; i < c.Pieces; i++ {
			clone := c.Clone()
			clone.ID = fmt.Sprintf("%s-%d", c.ID, i+1)
			clone.Weight = perWeight
			clone.Volume = perVolume
			clone.Pieces = 1
			out = append(out, clone)
		}
	}
	return out
}

// packForcedGroup first-fit-decreasing packs the group's cargos into at
// most MaxULDCount devices of the directed type. Overflow becomes an
// action-required entry, never a rejection. Group devices are closed and
// marked pure so later phases cannot merge into them.
func (e *Engine) packForcedGroup(ctx context.Context, group cargo.ForcedGroup, cargos []cargo.Request) error {
	spec, err := aircraft.ULDSpecFor(group.TargetULDType)
	if err != nil {
		return fmt.Errorf("forced group %s: %w", group.GroupID, err)
	}

	capVolume := spec.EffectiveVolume()
	capWeight := spec.NetWeight()

	groupULDs := make([]*cargo.PackedULD, group.MaxULDCount)
	for i := range groupULDs {
		id := fmt.Sprintf("FRC-%s-%d", group.GroupID, i+1)
		groupULDs[i] = cargo.NewPackedULD(id, group.TargetULDType, spec.Contour, cargos[0].Destination)
	}

	sorted := append([]cargo.Request(nil), cargos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		if sorted[i].Volume != sorted[j].Volume {
			return sorted[i].Volume > sorted[j].Volume
		}
		return sorted[i].ID < sorted[j].ID
	})

	var leftovers []cargo.Request
	for _, c := range sorted {
		placed := false
		for _, u := range groupULDs {
			if u.TotalWeight+c.Weight > capWeight || u.TotalVolume+c.Volume > capVolume {
				continue
			}
			if !policy.CompatibleWith(u.SHCCodes, c.SHC) {
				continue
			}
			u.Add(c)
			placed = true
			break
		}
		if !placed {
			leftovers = append(leftovers, c)
		}
	}

	for _, u := range groupULDs {
		if len(u.Items) > 0 {
			u.Status = cargo.StatusClosed
			u.IsPure = true
			e.packed = append(e.packed, u)
		}
	}

	if len(leftovers) > 0 {
		remWeight := 0.0
		for _, c := range leftovers {
			remWeight += c.Weight
		}
		msg := fmt.Sprintf("Group %s overflow: %d pcs (%.1fkg).", group.GroupID, len(leftovers), remWeight)
		e.actionRequired = append(e.actionRequired, cargo.Feedback{
			GroupID:   group.GroupID,
			Message:   msg,
			Remaining: leftovers,
		})
		e.logger.InfoContext(ctx, "Forced group overflow",
			"group", group.GroupID,
			"leftovers", len(leftovers),
			"weight", remWeight)
	}
	return nil
}

// heuristicPack first-fits a special cargo into an open compatible device
// of the same type and destination, opening a new one otherwise. Floating
// loads always get their own closed device.
func (e *Engine) heuristicPack(ctx context.Context, c cargo.Request, floating bool) error {
	rec := policy.RecommendULDType(c)
	targetType := rec.Type
	if c.ForcedULDType != "" {
		targetType = c.ForcedULDType
	}
	spec, err := aircraft.ULDSpecFor(targetType)
	if err != nil {
		return fmt.Errorf("cargo %s: %w", c.ID, err)
	}

	if !floating {
		for _, u := range e.packed {
			if u.ULDType != targetType || u.Status != cargo.StatusOpen || u.Destination != c.Destination {
				continue
			}
			if !policy.CompatibleWith(u.SHCCodes, c.SHC) {
				continue
			}
			if u.GrossWeight()+c.Weight > spec.MaxGross {
				continue
			}
			u.Add(c)
			return nil
		}
	}

	prefix := "SPL"
	if floating {
		prefix = "FLT"
	}
	u := cargo.NewPackedULD(fmt.Sprintf("%s-%03d", prefix, len(e.packed)+1), targetType, spec.Contour, c.Destination)
	if floating {
		u.Status = cargo.StatusClosed
		u.ShoringNote = cargo.FloatingLoadNote
		e.logger.InfoContext(ctx, "Floating load packed alone",
			"cargo", c.ID,
			"weight", c.Weight)
	}
	u.Add(c)
	e.packed = append(e.packed, u)
	return nil
}

// pack3D places a dimensioned piece into a geometry-packed device. Devices
// fill up to the pieces-per-device ceiling and the weight cap; a device
// that reaches the close threshold is sealed. Phase 0 has already exploded
// multi-piece requests, so saturation happens by topping up the open
// geometry devices of the same type and destination.
func (e *Engine) pack3D(ctx context.Context, c cargo.Request, uldType string) error {
	dim := c.Dims[0]

	maxPerULD := packing.MaxPiecesPerULD(dim.L, dim.W, dim.H, uldType)
	if maxPerULD <= 0 {
		e.reject(c.ID, fmt.Sprintf("Dims cannot fit %s", uldType))
		return nil
	}

	spec, err := aircraft.ULDSpecFor(uldType)
	if err != nil {
		return fmt.Errorf("cargo %s: %w", c.ID, err)
	}
	perPieceWeight := c.Weight / float64(c.Pieces)
	if perPieceWeight > spec.NetWeight() {
		e.reject(c.ID, "Single piece too heavy")
		return nil
	}

	piecesLeft := c.Pieces
	for piecesLeft > 0 {
		count := piecesLeft
		if maxPerULD < count {
			count = maxPerULD
		}
		if byWeight := int(spec.NetWeight() / perPieceWeight); byWeight < count {
			count = byWeight
		}

		u := e.openGeometryULD(c, uldType, spec, maxPerULD)
		if u != nil {
			if room := maxPerULD - pieceCount(u); room < count {
				count = room
			}
			if byWeight := int((spec.NetWeight() - u.TotalWeight) / perPieceWeight); byWeight < count {
				count = byWeight
			}
		} else {
			u = cargo.NewPackedULD(fmt.Sprintf("3D-%03d", len(e.packed)+1), uldType, spec.Contour, c.Destination)
			e.packed = append(e.packed, u)
		}

		chunk := c.Clone()
		if count < c.Pieces {
			chunk.ID = fmt.Sprintf("%s (%dp)", c.ID, count)
		}
		chunk.Weight = perPieceWeight * float64(count)
		chunk.Volume = c.Volume / float64(c.Pieces) * float64(count)
		chunk.Pieces = count
		u.Add(chunk)

		if u.TotalWeight+spec.Tare >= spec.MaxGross*closeThreshold || pieceCount(u) >= maxPerULD {
			u.Status = cargo.StatusClosed
		}
		piecesLeft -= count
	}

	e.logger.DebugContext(ctx, "3D packed cargo", "cargo", c.ID, "piecesPerULD", maxPerULD)
	return nil
}

// openGeometryULD finds an open geometry-packed device with room for at
// least one more piece of the cargo.
func (e *Engine) openGeometryULD(c cargo.Request, uldType string, spec aircraft.ULDSpec, maxPerULD int) *cargo.PackedULD {
	perPieceWeight := c.Weight / float64(c.Pieces)
	for _, u := range e.packed {
		if u.Status != cargo.StatusOpen || u.ULDType != uldType || u.Destination != c.Destination {
			continue
		}
		if len(u.ID) < 3 || u.ID[:3] != "3D-" {
			continue
		}
		if pieceCount(u) >= maxPerULD {
			continue
		}
		if u.TotalWeight+perPieceWeight > spec.NetWeight() {
			continue
		}
		return u
	}
	return nil
}

// pieceCount sums the pieces loaded in a device.
func pieceCount(u *cargo.PackedULD) int {
	n := 0
	for _, item := range u.Items {
		n += item.Pieces
	}
	return n
}

// smartBatchOptimize tops up existing open devices of the target type per
// destination, then hands the uniform residue to the MIP bin packer. When
// the solver yields no usable solution the residue is first-fit-decreasing
// packed instead.
func (e *Engine) smartBatchOptimize(ctx context.Context, cargos []cargo.Request, targetType string) error {
	if len(cargos) == 0 {
		return nil
	}

	spec, err := aircraft.ULDSpecFor(targetType)
	if err != nil {
		return err
	}
	capVolume := spec.EffectiveVolume()
	capWeight := spec.NetWeight()

	byDest := make(map[string][]cargo.Request)
	for _, c := range explode(cargos) {
		byDest[c.Destination] = append(byDest[c.Destination], c)
	}
	dests := make([]string, 0, len(byDest))
	for d := range byDest {
		dests = append(dests, d)
	}
	sort.Strings(dests)

	for _, dest := range dests {
		var residue []cargo.Request
		for _, c := range byDest[dest] {
			packed := false
			for _, u := range e.packed {
				if u.Status != cargo.StatusOpen || u.Destination != dest || u.ULDType != targetType {
					continue
				}
				if !policy.CompatibleWith(u.SHCCodes, c.SHC) {
					continue
				}
				if u.TotalWeight+c.Weight > capWeight || u.TotalVolume+c.Volume > capVolume {
					continue
				}
				u.Add(c)
				packed = true
				break
			}
			if !packed {
				residue = append(residue, c)
			}
		}
		if len(residue) == 0 {
			continue
		}

		sort.SliceStable(residue, func(i, j int) bool {
			if residue[i].Weight != residue[j].Weight {
				return residue[i].Weight > residue[j].Weight
			}
			if residue[i].Volume != residue[j].Volume {
				return residue[i].Volume > residue[j].Volume
			}
			return residue[i].ID < residue[j].ID
		})

		optimized, err := e.binPacker.Optimize(ctx, residue, targetType)
		if err != nil {
			e.logger.InfoContext(ctx, "Bin packer unavailable, falling back to first-fit",
				"destination", dest,
				"error", err)
			optimized = firstFitDecreasing(residue, targetType, spec)
		}
		for _, u := range optimized {
			u.ID = fmt.Sprintf("OPT-%03d", len(e.packed)+1)
			e.packed = append(e.packed, u)
		}
	}
	return nil
}

// firstFitDecreasing is the heuristic fallback for the bin packer. The
// input is already sorted by descending weight and volume.
func firstFitDecreasing(cargos []cargo.Request, uldType string, spec aircraft.ULDSpec) []*cargo.PackedULD {
	capVolume := spec.EffectiveVolume()
	capWeight := spec.NetWeight()

	var bins []*cargo.PackedULD
	for _, c := range cargos {
		placed := false
		for _, u := range bins {
			if u.TotalWeight+c.Weight > capWeight || u.TotalVolume+c.Volume > capVolume {
				continue
			}
			if !policy.CompatibleWith(u.SHCCodes, c.SHC) {
				continue
			}
			u.Add(c)
			placed = true
			break
		}
		if !placed {
			u := cargo.NewPackedULD("TEMP", uldType, spec.Contour, c.Destination)
			u.Add(c)
			bins = append(bins, u)
		}
	}
	return bins
}

// checkGrossConsistency verifies no device ended packing over its max
// gross. Floating loads are exempt: they exceed the certified pallet limit
// by definition and are restrained by the airframe, not the device.
func (e *Engine) checkGrossConsistency() error {
	for _, u := range e.packed {
		if u.IsFloating() {
			continue
		}
		spec, err := aircraft.ULDSpecFor(u.ULDType)
		if err != nil {
			return err
		}
		if u.GrossWeight() > spec.MaxGross+1e-6 {
			return fmt.Errorf("%w: %s %.1fkg > %.1fkg", ErrGrossOverweight, u.ID, u.GrossWeight(), spec.MaxGross)
		}
	}
	return nil
}
