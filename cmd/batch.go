package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/repo-posture/sbom-forge/internal/batch"
)

var (
	flagBatchCount     int
	flagBatchSBOMs     int
	flagBatchWorkers   int
	flagBatchRatio     float64
	flagBatchFormat    string
	flagBatchOutputDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate many SBOMs in parallel",
	Long: `Generate many independent SBOMs across a bounded worker pool. Each job
synthesizes its own component configuration, builds its document in a
private workspace and places the artifact into the output directory as
sbom_<format>_<count>_<n>.json, numbered by submission order.

A failing job is reported in the summary and never affects the others.

Examples:
  sbom-forge batch --count 1000 --sboms 100 --workers 4
  sbom-forge batch --count 100000 --sboms 1 --format spdx`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&flagBatchCount, "count", "c", 1000, "Number of components per SBOM")
	batchCmd.Flags().IntVar(&flagBatchSBOMs, "sboms", 1, "Number of SBOMs to generate")
	batchCmd.Flags().IntVarP(&flagBatchWorkers, "workers", "w", runtime.NumCPU(), "Number of concurrent workers")
	batchCmd.Flags().Float64Var(&flagBatchRatio, "installed-ratio", 0.7, "Ratio of installed components (vs. custom)")
	batchCmd.Flags().StringVarP(&flagBatchFormat, "format", "f", "cyclonedx", "SBOM format: cyclonedx or spdx")
	batchCmd.Flags().StringVar(&flagBatchOutputDir, "output-dir", "sboms", "Directory to store generated SBOMs")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	if flagBatchFormat != "spdx" && flagBatchFormat != "cyclonedx" {
		return fmt.Errorf("unsupported format %q (supported: cyclonedx, spdx)", flagBatchFormat)
	}
	if flagBatchCount < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", flagBatchCount)
	}
	if flagBatchSBOMs < 1 {
		return fmt.Errorf("--sboms must be at least 1, got %d", flagBatchSBOMs)
	}
	if flagBatchWorkers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", flagBatchWorkers)
	}
	if flagBatchRatio < 0 || flagBatchRatio > 1 {
		return fmt.Errorf("--installed-ratio must be between 0.0 and 1.0, got %g", flagBatchRatio)
	}

	if err := os.MkdirAll(flagBatchOutputDir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", flagBatchOutputDir, err)
	}

	log.Infof("generating %d SBOMs with %d components each using %d workers",
		flagBatchSBOMs, flagBatchCount, flagBatchWorkers)

	orch := batch.New(batch.Config{
		ComponentCount: flagBatchCount,
		Format:         flagBatchFormat,
		InstalledRatio: flagBatchRatio,
		OutputDir:      flagBatchOutputDir,
		Workers:        flagBatchWorkers,
		Seed:           seedValue(),
	})

	start := time.Now()
	outcomes := orch.Run(ctx, flagBatchSBOMs)
	total := time.Since(start)

	succeeded := 0
	for _, out := range outcomes {
		if out.Success {
			succeeded++
			log.Infof("SBOM %d/%d completed in %.2fs: %s",
				out.Seq, flagBatchSBOMs, out.Elapsed.Seconds(), out.OutputPath)
		} else {
			log.Warnf("SBOM %d/%d failed: %s", out.Seq, flagBatchSBOMs, out.Diagnostic)
		}
	}

	log.Infof("generated %d/%d SBOMs in %.2fs (output directory: %s)",
		succeeded, flagBatchSBOMs, total.Seconds(), flagBatchOutputDir)
	return nil
}
