package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sawpanic/smartpremium/internal/config"
	"github.com/sawpanic/smartpremium/internal/console"
	applog "github.com/sawpanic/smartpremium/internal/log"
	"github.com/sawpanic/smartpremium/internal/market"
	"github.com/sawpanic/smartpremium/internal/pricing"
	"github.com/sawpanic/smartpremium/internal/telemetry"
)

const (
	appName = "SmartPremium"
	version = "v1.0.0"
)

// app is the state shared by every command once flags are parsed
type app struct {
	cfg       config.Config
	estimator *pricing.Estimator
	metrics   *telemetry.MetricsRegistry
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "smartpremium",
		Short:   "Estimate an insurance premium from age and claim history",
		Version: version,
		Long: `SmartPremium estimates an insurance premium from an applicant's age and the
number of claims filed in the past 5 years.

Run without a subcommand for the interactive estimator. The premium is

  base rate x (1 + risk factor) x market factor

where the risk factor comes from a linear model clamped to [0, 1] and the
market factor is drawn uniformly from [0.92, 1.08].`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file overriding built-in rates")
	pf.Uint64("seed", 0, "Market variation seed (0 = random each run)")
	pf.Float64("base-rate", config.Default().BaseRate, "Base premium before risk and market adjustments")
	pf.String("log-level", "warn", "Log level (trace|debug|info|warn|error)")
	pf.Bool("metrics", false, "Print a metrics summary to stderr when the command finishes")

	rootCmd.Flags().Int("rounds", 2, "Interactive rounds to run")

	rootCmd.AddCommand(newEstimateCmd(a))
	rootCmd.AddCommand(newModelCmd(a))

	return rootCmd
}

// setup resolves configuration (defaults, file, flags) and builds the estimator
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := applog.Setup(cmd.ErrOrStderr(), cfg.LogLevel, !isTerminal(cmd)); err != nil {
		return err
	}

	est, err := pricing.NewEstimator(cfg, market.NewSource(cfg.Seed))
	if err != nil {
		return fmt.Errorf("failed to build estimator: %w", err)
	}

	a.cfg = cfg
	a.estimator = est
	a.metrics = telemetry.NewMetricsRegistry()

	log.Info().
		Str("app", appName).
		Str("version", version).
		Float64("base_rate", cfg.BaseRate).
		Uint64("seed", cfg.Seed).
		Msg("Estimator ready")
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.metrics != nil && a.cfg.ShowStats {
		if err := a.metrics.WriteSummary(cmd.ErrOrStderr()); err != nil {
			log.Warn().Err(err).Msg("Failed to write metrics summary")
		}
	}
}

// runInteractive plays the prompt rounds on the command's stdin and stdout
func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	session := console.NewSession(
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
		a.estimator,
		console.WithMinAge(a.cfg.MinAge),
		console.WithMetrics(a.metrics),
		console.WithColor(isTerminal(cmd)),
	)

	if _, err := session.Run(cmd.Context(), a.cfg.Rounds); err != nil {
		return fmt.Errorf("interactive session interrupted: %w", err)
	}
	return nil
}

// isTerminal reports whether the command reads from an interactive terminal
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
