package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/baraj-doluluk/internal/aggregator"
	"github.com/pfrederiksen/baraj-doluluk/internal/logger"
	"github.com/pfrederiksen/baraj-doluluk/internal/reservoir"
	"github.com/pfrederiksen/baraj-doluluk/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPartial = 2
)

var (
	flagFormat    string
	flagTimeout   time.Duration
	flagKeepGoing bool
	flagVerbose   bool
	flagLogLevel  string
)

// NewRootCmd creates the root command for the default city list
func NewRootCmd() *cobra.Command {
	return newRootCmd(reservoir.DefaultCities())
}

func newRootCmd(cities []reservoir.City) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baraj-doluluk",
		Short: "Print dam occupancy levels for Ankara, Istanbul, Izmir and Trabzon",
		Long: `Fetches the dam occupancy tables published on turkiye.gov.tr, one page per city,
and prints a timestamped snapshot of every reservoir's capacity and fill percentage.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, cities)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", string(FormatJSON), "Output format: json or text")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.Timeout, "Per-request timeout (0 disables)")
	cmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "Record failing cities instead of aborting the run")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and print run metrics")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "Minimum log level: debug, info, warn or error (--verbose forces debug)")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, cities []reservoir.City) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	if flagTimeout < 0 {
		return fmt.Errorf("invalid timeout: %s", flagTimeout)
	}
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}

	stderr := cmd.ErrOrStderr()
	log := logger.New(level, stderr)
	logger.SetDefault(log)
	logger.Info("starting scrape", logger.Fields{"cities": len(cities), "timeout": flagTimeout.String()})

	metrics := logger.NewMetrics()
	agg := aggregator.New(
		scraper.NewFetcher(scraper.WithTimeout(flagTimeout)),
		aggregator.WithProgress(stderr),
		aggregator.WithLogger(log),
		aggregator.WithMetrics(metrics),
		aggregator.KeepGoing(flagKeepGoing),
	)

	snap, runErr := agg.Run(cmd.Context(), cities)
	if flagVerbose {
		logger.Debug("run metrics", logger.Fields{"metrics": metrics.GetSnapshot()})
	}

	var partial *aggregator.PartialError
	if runErr != nil && !errors.As(runErr, &partial) {
		return runErr
	}

	if err := WriteOutput(cmd.OutOrStdout(), snap, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return runErr
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var partial *aggregator.PartialError
	if errors.As(err, &partial) {
		return ExitPartial
	}
	return ExitError
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
