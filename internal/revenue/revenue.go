// Package revenue exposes the displacement-cost contract for a future
// yield optimization layer. The core planning pipeline never calls into
// this package; it exists so a revenue system can reason about what a
// booking displaces without re-implementing position geometry.
package revenue

import "sort"

// CargoItem is a revenue-bearing booking line.
type CargoItem struct {
	ID      string
	Weight  float64
	Revenue float64
}

// PricedPosition is a position with the baseline value the yield layer
// assigns to keeping it free.
type PricedPosition struct {
	ID            string
	BaselineValue float64
}

// Placement records one already-loaded cargo.
type Placement struct {
	CargoID  string
	Position string
}

// DisplacementResult evaluates one cargo at one target position.
type DisplacementResult struct {
	CargoID          string
	TargetPosition   string
	BlockedPositions []string
	DisplacementCost float64
	NetProfit        float64
	IsProfitable     bool
	IsLoadable       bool
	RejectionReason  string
}

// ConstraintChecker answers the geometric and structural questions the
// evaluator needs. The planner's allocator logic backs this in practice.
type ConstraintChecker interface {
	// CheckFit reports whether the cargo may occupy the position given
	// the current load, with a reason on refusal.
	CheckFit(c CargoItem, positionID string, current []Placement) (bool, string)
	// BlockedPositions lists the positions that become unusable when the
	// cargo occupies the target.
	BlockedPositions(c CargoItem, positionID string) []string
}

// DisplacementEvaluator is the contract a revenue layer consumes.
type DisplacementEvaluator interface {
	EvaluateDisplacement(c CargoItem, targetPosition string, currentLoad []Placement) DisplacementResult
}

// Evaluator is the default implementation: displacement cost is the summed
// baseline value of every position the placement blocks.
type Evaluator struct {
	positions map[string]PricedPosition
	checker   ConstraintChecker
}

// NewEvaluator builds an evaluator over a priced position set.
func NewEvaluator(positions []PricedPosition, checker ConstraintChecker) *Evaluator {
	m := make(map[string]PricedPosition, len(positions))
	for _, p := range positions {
		m[p.ID] = p
	}
	return &Evaluator{positions: m, checker: checker}
}

// EvaluateDisplacement prices placing the cargo at the target position
// under the current load.
func (e *Evaluator) EvaluateDisplacement(c CargoItem, targetPosition string, currentLoad []Placement) DisplacementResult {
	if _, ok := e.positions[targetPosition]; !ok {
		return DisplacementResult{
			CargoID:         c.ID,
			TargetPosition:  targetPosition,
			RejectionReason: "Invalid position",
		}
	}

	if ok, reason := e.checker.CheckFit(c, targetPosition, currentLoad); !ok {
		return DisplacementResult{
			CargoID:         c.ID,
			TargetPosition:  targetPosition,
			RejectionReason: "Geometric/Structural constraint failed: " + reason,
		}
	}

	blocked := e.checker.BlockedPositions(c, targetPosition)
	cost := 0.0
	for _, id := range blocked {
		cost += e.positions[id].BaselineValue
	}
	profit := c.Revenue - cost

	return DisplacementResult{
		CargoID:          c.ID,
		TargetPosition:   targetPosition,
		BlockedPositions: blocked,
		DisplacementCost: cost,
		NetProfit:        profit,
		IsProfitable:     profit > 0,
		IsLoadable:       true,
	}
}

// OptimizeBookings greedily loads the pending cargos in descending yield
// order (revenue per kg), taking the most profitable feasible position for
// each and retiring blocked positions as it goes. Returns the accepted
// placements.
func (e *Evaluator) OptimizeBookings(pending []CargoItem, current []Placement) []Placement {
	sorted := append([]CargoItem(nil), pending...)
	sort.SliceStable(sorted, func(i, j int) bool {
		yi, yj := sorted[i].Revenue, sorted[j].Revenue
		if sorted[i].Weight > 0 {
			yi = sorted[i].Revenue / sorted[i].Weight
		}
		if sorted[j].Weight > 0 {
			yj = sorted[j].Revenue / sorted[j].Weight
		}
		if yi != yj {
			return yi > yj
		}
		return sorted[i].ID < sorted[j].ID
	})

	available := make([]string, 0, len(e.positions))
	for id := range e.positions {
		available = append(available, id)
	}
	sort.Strings(available)

	load := append([]Placement(nil), current...)
	var accepted []Placement

	for _, c := range sorted {
		var best *DisplacementResult
		for _, pos := range available {
			res := e.EvaluateDisplacement(c, pos, load)
			if !res.IsLoadable || !res.IsProfitable {
				continue
			}
			if best == nil || res.NetProfit > best.NetProfit {
				r := res
				best = &r
			}
		}
		if best == nil {
			continue
		}

		placement := Placement{CargoID: c.ID, Position: best.TargetPosition}
		accepted = append(accepted, placement)
		load = append(load, placement)

		retired := map[string]bool{best.TargetPosition: true}
		for _, b := range best.BlockedPositions {
			retired[b] = true
		}
		kept := available[:0]
		for _, id := range available {
			if !retired[id] {
				kept = append(kept, id)
			}
		}
		available = kept
	}
	return accepted
}
