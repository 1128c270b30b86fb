// Package sales is the integration surface for booking systems: stateless
// loading simulations and per-flight booking confirmation with memoized
// planning state.
package sales

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
	"github.com/Joechou2430/b747-load-engine/internal/planner"
)

// simulationDestination is the placeholder route leg used for stateless
// sales inquiries.
const simulationDestination = "DUMMY_DEST"

// flightState is the memoized per-flight planning state. The planning
// engine is not safe for concurrent use, so each flight carries its own
// mutex and calls for the same flight id are serialized.
type flightState struct {
	mu           sync.Mutex
	route        []string
	restrictions map[string]bool // Accumulated inoperative position ids
}

// Repository memoizes flight state by flight id and runs planning passes
// against per-flight map snapshots. It is safe for concurrent use across
// different flights.
type Repository struct {
	baseMap *aircraft.Map
	logger  *slog.Logger

	mu      sync.Mutex
	flights map[string]*flightState
}

// NewRepository validates the base map once and creates an empty flight
// store. Every flight plans against its own snapshot of this map.
func NewRepository(baseMap *aircraft.Map, logger *slog.Logger) (*Repository, error) {
	if err := baseMap.Validate(); err != nil {
		return nil, err
	}
	return &Repository{
		baseMap: baseMap,
		logger:  logger,
		flights: make(map[string]*flightState),
	}, nil
}

func (r *Repository) flight(flightID string, route []string) *flightState {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[flightID]
	if !ok {
		f = &flightState{route: route, restrictions: make(map[string]bool)}
		r.flights[flightID] = f
	}
	return f
}

// ConfirmBooking plans the submitted cargos for a flight. Restrictions are
// position ids marked inoperative for this flight; they accumulate across
// calls for the same flight id but never affect any other flight. Every
// call is a fresh planning pass over the submitted cargos.
func (r *Repository) ConfirmBooking(ctx context.Context, flightID string, route []string, cargos []cargo.Request, groups []cargo.ForcedGroup, restrictions []string) (*planner.Report, error) {
	f := r.flight(flightID, route)
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range restrictions {
		f.restrictions[id] = true
	}
	disabled := make([]string, 0, len(f.restrictions))
	for id := range f.restrictions {
		disabled = append(disabled, id)
	}

	r.logger.InfoContext(ctx, "Confirming booking",
		"flight", flightID,
		"route", f.route,
		"cargos", len(cargos),
		"inopPositions", len(disabled))

	engine := planner.NewEngine(f.route, r.baseMap.Snapshot(disabled), r.logger)
	return engine.PlanFlight(ctx, cargos, groups)
}

// Evict drops a completed flight's memoized state.
func (r *Repository) Evict(flightID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flights, flightID)
}

// SimulateLoadingNeeds answers a stateless sales inquiry: how many devices
// would this cargo set need? Nothing is persisted and no flight state is
// touched.
func (r *Repository) SimulateLoadingNeeds(ctx context.Context, cargos []cargo.Request) (*planner.Report, error) {
	runID := uuid.NewString()
	r.logger.InfoContext(ctx, "Simulating loading needs",
		"run", runID,
		"cargos", len(cargos))

	engine := planner.NewEngine([]string{simulationDestination}, r.baseMap.Snapshot(nil), r.logger)
	return engine.PlanFlight(ctx, cargos, nil)
}
