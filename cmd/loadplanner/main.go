// Command loadplanner plans cargo loads for a B747-400F from a JSON
// booking manifest and prints the resulting load plan.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Joechou2430/b747-load-engine/internal/aircraft"
	"github.com/Joechou2430/b747-load-engine/internal/balance"
	"github.com/Joechou2430/b747-load-engine/internal/planner"
	"github.com/Joechou2430/b747-load-engine/internal/sales"
)

// b747WeightConfig holds representative B747-400F basic weight data for
// the CG readout.
var b747WeightConfig = balance.AircraftWeightConfig{
	DOW:    164100,
	DOI:    45.0,
	MACLen: 327.8,
	LEMAC:  1258.0,
}

var b747Envelope = balance.EnvelopeLimits{FwdLimit: 8.0, AftLimit: 33.0}

func main() {
	var (
		manifestPath string
		verbose      bool
	)

	root := &cobra.Command{
		Use:   "loadplanner",
		Short: "B747-400F cargo load planner",
	}
	root.PersistentFlags().StringVarP(&manifestPath, "file", "f", "", "booking manifest (JSON)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Confirm a booking manifest against its flight and print the load plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, logger, manifest, err := setup(manifestPath, verbose)
			if err != nil {
				return err
			}
			report, err := repo.ConfirmBooking(cmd.Context(), manifest.FlightID, manifest.Route, manifest.requests(), manifest.ForcedGroups, manifest.Restrictions)
			if err != nil {
				return err
			}
			renderReport(os.Stdout, report)
			logger.Info("Plan complete", "flight", manifest.FlightID)
			return nil
		},
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Stateless loading-needs simulation for a sales inquiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, manifest, err := setup(manifestPath, verbose)
			if err != nil {
				return err
			}
			report, err := repo.SimulateLoadingNeeds(cmd.Context(), manifest.requests())
			if err != nil {
				return err
			}
			renderReport(os.Stdout, report)
			return nil
		},
	}

	root.AddCommand(planCmd, simulateCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(manifestPath string, verbose bool) (*sales.Repository, *slog.Logger, *Manifest, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, nil, nil, err
	}

	repo, err := sales.NewRepository(aircraft.NewMap(), logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return repo, logger, manifest, nil
}

// cgFromReport computes the ZFW CG over the allocated plan for the
// summary footer.
func cgFromReport(report *planner.Report) (balance.CGResult, balance.EnvelopeStatus) {
	res := balance.CalculateCG(b747WeightConfig, report.ULDs)
	return res, balance.ValidateEnvelope(res.CGMACPercent, b747Envelope)
}
