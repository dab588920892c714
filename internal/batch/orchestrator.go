// Package batch fans SBOM generation out across a bounded worker pool.
// Every job is fully independent: it synthesizes its own component
// configuration, assembles its document in a job-private workspace, and
// only on success moves the artifact into the shared output directory.
// A failing job is recorded in its own outcome and never disturbs its
// siblings; there are no retries.
package batch

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repo-posture/sbom-forge/internal/catalog"
	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/output"
	"github.com/repo-posture/sbom-forge/internal/pkgcatalog"
	"github.com/repo-posture/sbom-forge/internal/synth"
)

// Config holds the per-job generation parameters shared by the whole batch.
type Config struct {
	ComponentCount int
	Format         string  // "cyclonedx" or "spdx"
	InstalledRatio float64 // share of "installed" vs "custom" entries
	OutputDir      string
	Workers        int
	Seed           int64

	// Provider resolves "installed" entries. Nil means each job builds a
	// seeded static provider of its own.
	Provider pkgcatalog.Provider
}

// Outcome reports one job's result. Seq is assigned at submission time
// (1..J), so output filenames never depend on completion order.
type Outcome struct {
	Seq        int
	Success    bool
	Elapsed    time.Duration
	OutputPath string
	Diagnostic string
}

// Orchestrator runs J independent generation jobs over W workers.
type Orchestrator struct {
	cfg Config

	// pipeline generates one job's document and returns the placed
	// artifact path. Swapped out in tests to inject failures.
	pipeline func(ctx context.Context, seq int) (string, error)
}

// New creates an Orchestrator for cfg.
func New(cfg Config) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	o := &Orchestrator{cfg: cfg}
	o.pipeline = o.generate
	return o
}

// Run submits jobs 1..jobCount to the worker pool, waits for all of them
// and returns every outcome ordered by sequence number. Worker goroutines
// never return errors: failures are contained in the failing job's
// outcome, so one broken job cannot cancel the rest of the batch.
func (o *Orchestrator) Run(ctx context.Context, jobCount int) []Outcome {
	outcomes := make([]Outcome, jobCount)

	var g errgroup.Group
	g.SetLimit(o.cfg.Workers)
	for seq := 1; seq <= jobCount; seq++ {
		g.Go(func() error {
			outcomes[seq-1] = o.runJob(ctx, seq)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	return outcomes
}

// OutputName returns the deterministic artifact filename for one job.
func (o *Orchestrator) OutputName(seq int) string {
	return fmt.Sprintf("sbom_%s_%d_%d.json", o.cfg.Format, o.cfg.ComponentCount, seq)
}

func (o *Orchestrator) runJob(ctx context.Context, seq int) (out Outcome) {
	start := time.Now()
	out = Outcome{
		Seq:        seq,
		OutputPath: filepath.Join(o.cfg.OutputDir, o.OutputName(seq)),
	}
	defer func() {
		if r := recover(); r != nil {
			out.Success = false
			out.Diagnostic = fmt.Sprintf("job panicked: %v", r)
		}
		out.Elapsed = time.Since(start)
	}()

	if _, err := o.pipeline(ctx, seq); err != nil {
		out.Diagnostic = err.Error()
		return out
	}
	out.Success = true
	return out
}

// generate is the full per-job pipeline: component configuration,
// resolution, assembly, and atomic placement of the artifact.
func (o *Orchestrator) generate(ctx context.Context, seq int) (string, error) {
	// Every job derives its own RNG from the batch seed and its sequence
	// number, so jobs are reproducible and never share random state.
	rng := rand.New(rand.NewSource(o.cfg.Seed + int64(seq)))

	provider := o.cfg.Provider
	if provider == nil {
		provider = pkgcatalog.NewStaticProvider(rng)
	}

	specs, err := o.buildSpecs(ctx, rng, provider)
	if err != nil {
		return "", err
	}

	comps, err := synth.ResolveSpecs(ctx, rng, provider, specs)
	if err != nil {
		return "", err
	}
	rels := synth.BuildGraph(rng, len(comps), model.TierStandard)

	// Job-private workspace inside the output directory, so the final
	// rename stays on one filesystem and is atomic.
	workspace, err := os.MkdirTemp(o.cfg.OutputDir, fmt.Sprintf(".job%d-", seq))
	if err != nil {
		return "", fmt.Errorf("creating job workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	staged := filepath.Join(workspace, "sbom.json")
	switch o.cfg.Format {
	case "spdx":
		if err := output.WriteJSON(output.BuildSPDX(rng, comps, rels, model.TierStandard), staged); err != nil {
			return "", err
		}
	case "cyclonedx":
		if err := output.WriteJSON(output.BuildCycloneDX(rng, comps, rels, model.TierStandard, false), staged); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported batch format %q", o.cfg.Format)
	}

	final := filepath.Join(o.cfg.OutputDir, o.OutputName(seq))
	if err := os.Rename(staged, final); err != nil {
		return "", fmt.Errorf("placing artifact: %w", err)
	}
	return final, nil
}

// buildSpecs synthesizes a job's component configuration: installed names
// drawn without replacement from the provider's catalog (topped up with
// the common package pool, then fakes), custom entries with fabricated
// versions and licenses, shuffled together.
func (o *Orchestrator) buildSpecs(ctx context.Context, rng *rand.Rand, provider pkgcatalog.Provider) ([]model.ComponentSpec, error) {
	installedCount := int(float64(o.cfg.ComponentCount) * o.cfg.InstalledRatio)
	customCount := o.cfg.ComponentCount - installedCount

	installed, err := provider.ListInstalled(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing installed packages: %w", err)
	}

	pool := make([]string, 0, len(installed))
	for name := range installed {
		pool = append(pool, name)
	}
	sort.Strings(pool) // map order is nondeterministic; seeded runs must not be
	if len(pool) < installedCount {
		seen := make(map[string]struct{}, len(pool))
		for _, name := range pool {
			seen[name] = struct{}{}
		}
		for _, name := range catalog.CommonPackages {
			if _, dup := seen[name]; !dup {
				pool = append(pool, name)
			}
		}
	}

	specs := make([]model.ComponentSpec, 0, o.cfg.ComponentCount)
	for i := 0; i < installedCount; i++ {
		if len(pool) > 0 {
			j := rng.Intn(len(pool))
			specs = append(specs, model.ComponentSpec{Type: model.SpecInstalled, Name: pool[j]})
			pool = append(pool[:j], pool[j+1:]...)
		} else {
			// Pool exhausted: fabricate a name. It will miss the catalog
			// lookup and be skipped downstream, same as any other miss.
			specs = append(specs, model.ComponentSpec{
				Type: model.SpecInstalled,
				Name: fmt.Sprintf("package-%d", 1000+rng.Intn(9000)),
			})
		}
	}
	for i := 0; i < customCount; i++ {
		specs = append(specs, model.ComponentSpec{
			Type:    model.SpecCustom,
			Name:    fmt.Sprintf("custom-library-%d", i+1),
			Version: fmt.Sprintf("%d.%d.%d", rng.Intn(6), rng.Intn(10), rng.Intn(10)),
			License: catalog.CommonLicenses[rng.Intn(len(catalog.CommonLicenses))],
		})
	}

	rng.Shuffle(len(specs), func(i, j int) {
		specs[i], specs[j] = specs[j], specs[i]
	})
	return specs, nil
}
