package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/output"
	"github.com/repo-posture/sbom-forge/internal/synth"
)

var (
	flagSynFormat     string
	flagSynCount      int
	flagSynComplexity int
	flagSynOutput     string
	flagSynOutputDir  string
	flagSynVulns      bool
)

var syntheticCmd = &cobra.Command{
	Use:   "synthetic",
	Short: "Generate a random SBOM from the built-in catalogs",
	Long: `Generate an SBOM whose components are drawn at random from built-in
ecosystem catalogs (npm, maven, pypi, golang, nuget).

Examples:
  sbom-forge synthetic --format spdx --count 5000
  sbom-forge synthetic --format cyclonedx --count 100 --complexity 3 --output xml
  sbom-forge synthetic --format cyclonedx --count 50 --vulnerabilities --seed 7`,
	RunE: runSynthetic,
}

func init() {
	syntheticCmd.Flags().StringVarP(&flagSynFormat, "format", "f", "spdx", "SBOM format: spdx or cyclonedx")
	syntheticCmd.Flags().IntVarP(&flagSynCount, "count", "c", 100, "Number of components to include")
	syntheticCmd.Flags().IntVar(&flagSynComplexity, "complexity", 1, "Complexity level: 1=basic, 2=standard, 3=advanced")
	syntheticCmd.Flags().StringVarP(&flagSynOutput, "output", "o", "json", "Output format: json or xml (xml only for cyclonedx)")
	syntheticCmd.Flags().StringVar(&flagSynOutputDir, "output-dir", "sboms", "Directory to write the SBOM into")
	syntheticCmd.Flags().BoolVar(&flagSynVulns, "vulnerabilities", false,
		"Inject fabricated CVE records into roughly 30% of components (cyclonedx only)")

	rootCmd.AddCommand(syntheticCmd)
}

// resolveOutputFormat applies the xml-for-spdx fallback: XML output exists
// only for CycloneDX, so spdx+xml degrades to json instead of failing.
func resolveOutputFormat(format, outputFormat string) (string, bool) {
	if outputFormat == "xml" && format == "spdx" {
		return "json", true
	}
	return outputFormat, false
}

func runSynthetic(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	if flagSynFormat != "spdx" && flagSynFormat != "cyclonedx" {
		return fmt.Errorf("unsupported format %q (supported: spdx, cyclonedx)", flagSynFormat)
	}
	if flagSynCount < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", flagSynCount)
	}
	tier, err := model.ParseTier(flagSynComplexity)
	if err != nil {
		return err
	}
	if flagSynOutput != "json" && flagSynOutput != "xml" {
		return fmt.Errorf("unsupported output format %q (supported: json, xml)", flagSynOutput)
	}

	outputFormat, fellBack := resolveOutputFormat(flagSynFormat, flagSynOutput)
	if fellBack {
		log.Warnf("XML output is only available for CycloneDX format, using JSON instead")
	}

	rng := newRNG()
	factory := synth.NewFactory(rng)
	comps := factory.SynthesizeAll(flagSynCount, tier > model.TierBasic)
	rels := synth.BuildGraph(rng, flagSynCount, tier)

	if err := os.MkdirAll(flagSynOutputDir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", flagSynOutputDir, err)
	}
	path := filepath.Join(flagSynOutputDir,
		fmt.Sprintf("synthetic_%s_%d_c%d.%s", flagSynFormat, flagSynCount, flagSynComplexity, outputFormat))

	switch flagSynFormat {
	case "spdx":
		if flagSynVulns {
			log.Warnf("vulnerability injection is only available for CycloneDX format, ignoring")
		}
		if err := output.WriteJSON(output.BuildSPDX(rng, comps, rels, tier), path); err != nil {
			return fmt.Errorf("failed to write SPDX output: %w", err)
		}
	case "cyclonedx":
		doc := output.BuildCycloneDX(rng, comps, rels, tier, flagSynVulns)
		if outputFormat == "xml" {
			err = output.WriteXML(output.ProjectXML(doc), path)
		} else {
			err = output.WriteJSON(doc, path)
		}
		if err != nil {
			return fmt.Errorf("failed to write CycloneDX output: %w", err)
		}
	}

	log.Infof("generated %s SBOM with %d components (complexity level %d): %s",
		flagSynFormat, flagSynCount, flagSynComplexity, path)
	return nil
}
