package synth

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/chainguard-dev/clog"
	"github.com/package-url/packageurl-go"

	"github.com/repo-posture/sbom-forge/internal/catalog"
	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/pkgcatalog"
)

// ResolveSpecs turns a catalog-driven component list into package records.
//
// "installed" entries are resolved against the provider: the version comes
// from ListInstalled and the license from Describe when it has one. An
// entry missing from the provider's catalog is skipped with a warning and
// generation continues. "custom" entries carry their own version; one
// without a version is a configuration error and is likewise skipped, not
// silently completed.
//
// Sequence indices are assigned after skips so they stay dense 0..N-1.
func ResolveSpecs(ctx context.Context, rng *rand.Rand, provider pkgcatalog.Provider, specs []model.ComponentSpec) ([]model.Component, error) {
	log := clog.FromContext(ctx)

	var installed map[string]string
	for _, s := range specs {
		if s.Type == model.SpecInstalled {
			var err error
			installed, err = provider.ListInstalled(ctx)
			if err != nil {
				return nil, fmt.Errorf("listing installed packages: %w", err)
			}
			break
		}
	}

	comps := make([]model.Component, 0, len(specs))
	for _, s := range specs {
		switch s.Type {
		case model.SpecInstalled:
			version, ok := installed[s.Name]
			if !ok {
				log.Warnf("skipping installed component %q: not found in package catalog", s.Name)
				continue
			}
			license := ""
			if info, err := provider.Describe(ctx, s.Name); err == nil {
				license = info.License
			}
			if license == "" || license == "UNKNOWN" {
				license = pick(rng, catalog.CommonLicenses)
			}
			comps = append(comps, resolved(rng, len(comps), packageurl.TypePyPi, s.Name, version, license))

		case model.SpecCustom:
			if s.Version == "" {
				log.Warnf("skipping custom component %q: missing version", s.Name)
				continue
			}
			license := s.License
			if license == "" {
				license = pick(rng, catalog.CommonLicenses)
			}
			comps = append(comps, resolved(rng, len(comps), packageurl.TypeGeneric, s.Name, s.Version, license))
		}
	}
	return comps, nil
}

func resolved(rng *rand.Rand, index int, ecosystem, name, version, license string) model.Component {
	purl := packageurl.NewPackageURL(ecosystem, "", name, version, nil, "").ToString()
	return model.Component{
		SequenceIndex:    index,
		Ecosystem:        ecosystem,
		Name:             name,
		Version:          version,
		PURL:             purl,
		CPE:              CPE(name, version),
		Checksum:         Checksum(rng),
		LicenseConcluded: license,
		LicenseDeclared:  license,
		Supplier:         pick(rng, catalog.Suppliers),
	}
}
