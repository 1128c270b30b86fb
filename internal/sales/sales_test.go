package sales

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/cargo"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := NewRepository(aircraft.NewMap(), logger)
	require.NoError(t, err)
	return repo
}

// heavyCargo plans through the heuristic path (special by weight tier),
// keeping the tests independent of the MIP solver.
func heavyCargo(id string) cargo.Request {
	return cargo.Request{ID: id, Destination: "LAX", Weight: 8000, Volume: 10, Pieces: 1}
}

// TestRestrictionsArePerFlight is the regression for the process-global
// disabled-position defect: flight A's inoperative positions must never
// leak into flight B.
func TestRestrictionsArePerFlight(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	// 8000 kg rides a 16-ft R pallet on the main-deck center line; the
	// forward centers refuse it on linear load, so it starts at CC.
	reportA, err := repo.ConfirmBooking(ctx, "CI5148", []string{"TPE", "LAX"},
		[]cargo.Request{heavyCargo("H1")}, nil, []string{"CC"})
	require.NoError(t, err)
	require.Len(t, reportA.ULDs, 1)
	assert.Equal(t, "DC", reportA.ULDs[0].AssignedPosition)

	reportB, err := repo.ConfirmBooking(ctx, "CI5150", []string{"TPE", "NRT"},
		[]cargo.Request{heavyCargo("H1")}, nil, nil)
	require.NoError(t, err)
	require.Len(t, reportB.ULDs, 1)
	assert.Equal(t, "CC", reportB.ULDs[0].AssignedPosition)
}

// TestRestrictionsAccumulatePerFlight verifies repeated confirmations for
// one flight keep earlier restrictions.
func TestRestrictionsAccumulatePerFlight(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	_, err := repo.ConfirmBooking(ctx, "CI5148", []string{"TPE", "LAX"},
		[]cargo.Request{heavyCargo("H1")}, nil, []string{"CC"})
	require.NoError(t, err)

	report, err := repo.ConfirmBooking(ctx, "CI5148", nil,
		[]cargo.Request{heavyCargo("H1")}, nil, []string{"DC"})
	require.NoError(t, err)
	require.Len(t, report.ULDs, 1)
	assert.Equal(t, "EC", report.ULDs[0].AssignedPosition)
}

func TestEvictForgetsFlightState(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	_, err := repo.ConfirmBooking(ctx, "CI5148", []string{"TPE", "LAX"},
		[]cargo.Request{heavyCargo("H1")}, nil, []string{"CC"})
	require.NoError(t, err)

	repo.Evict("CI5148")

	report, err := repo.ConfirmBooking(ctx, "CI5148", []string{"TPE", "LAX"},
		[]cargo.Request{heavyCargo("H1")}, nil, nil)
	require.NoError(t, err)
	require.Len(t, report.ULDs, 1)
	assert.Equal(t, "CC", report.ULDs[0].AssignedPosition)
}

// TestSimulationMatchesPlanning verifies a stateless simulation and a
// fresh flight plan agree on the device count.
func TestSimulationMatchesPlanning(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	cargos := []cargo.Request{
		{ID: "S1", Destination: "SIM", Weight: 8000, Volume: 10, Pieces: 1},
		{ID: "S2", Destination: "SIM", Weight: 500, Volume: 2, Pieces: 1, SHC: []string{"AVI"}},
	}

	sim, err := repo.SimulateLoadingNeeds(ctx, cargos)
	require.NoError(t, err)

	plan, err := repo.ConfirmBooking(ctx, "FRESH-1", []string{"TPE", "SIM"}, cargos, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, sim.Summary.TotalULDs, plan.Summary.TotalULDs)
	assert.Equal(t, sim.Rejected, plan.Rejected)
}
