package pkgcatalog

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/repo-posture/sbom-forge/internal/catalog"
)

// StaticProvider serves the catalog's common package list with fabricated
// versions and licenses. It backs generation runs on machines without pip
// and keeps orchestrator tests hermetic.
type StaticProvider struct {
	installed map[string]string
	info      map[string]PackageInfo
}

// NewStaticProvider fabricates a catalog over the common package names,
// drawing versions and licenses from rng.
func NewStaticProvider(rng *rand.Rand) *StaticProvider {
	p := &StaticProvider{
		installed: make(map[string]string, len(catalog.CommonPackages)),
		info:      make(map[string]PackageInfo, len(catalog.CommonPackages)),
	}
	for _, name := range catalog.CommonPackages {
		version := fmt.Sprintf("%d.%d.%d", rng.Intn(6), rng.Intn(10), rng.Intn(10))
		p.installed[name] = version
		p.info[name] = PackageInfo{
			License:  catalog.CommonLicenses[rng.Intn(len(catalog.CommonLicenses))],
			Location: "/usr/lib/python3/dist-packages/" + name,
		}
	}
	return p
}

// ListInstalled returns the fabricated name → version mapping.
func (p *StaticProvider) ListInstalled(context.Context) (map[string]string, error) {
	out := make(map[string]string, len(p.installed))
	for name, version := range p.installed {
		out[name] = version
	}
	return out, nil
}

// Describe returns the fabricated metadata for name.
func (p *StaticProvider) Describe(_ context.Context, name string) (PackageInfo, error) {
	info, ok := p.info[name]
	if !ok {
		return PackageInfo{}, fmt.Errorf("package %q not in catalog", name)
	}
	return info, nil
}
