package cmd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/chainguard-dev/clog/slag"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel slag.Level
	flagSeed     int64
)

var rootCmd = &cobra.Command{
	Use:   "sbom-forge",
	Short: "Synthetic SBOM generation engine",
	Long: `sbom-forge fabricates SPDX 2.2 and CycloneDX 1.6 SBOM documents at
arbitrary scale for load testing SBOM-ingestion pipelines.

The documents are structurally plausible but semantically synthetic:
package versions, checksums and vulnerabilities are made up. Three modes
are available:

  synthetic  — random components drawn from built-in ecosystem catalogs
  generate   — components resolved from a JSON config file, optionally
               against the local package manager
  batch      — many independent SBOMs generated across a worker pool`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			Level:           charmlog.Level(flagLogLevel),
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().Var(&flagLogLevel, "log-level", "log level (e.g. debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed for reproducible output (0 = derive from current time)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// seedValue resolves the --seed flag: explicit seeds reproduce runs
// exactly, the zero default gives every run fresh randomness.
func seedValue() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(seedValue()))
}
