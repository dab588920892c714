// Package synth implements the component synthesis engine: random package
// records, the acyclic dependency relation over them, and the optional
// vulnerability records. Every function takes an explicit *rand.Rand so a
// fixed seed reproduces the exact same output; nothing here touches the
// process-global random state.
package synth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/repo-posture/sbom-forge/internal/catalog"
	"github.com/repo-posture/sbom-forge/internal/model"
)

// maxUniqueAttempts bounds the re-pick loop when uniqueness is requested.
// Once the ceiling is hit the duplicate is accepted — small catalogs simply
// cannot yield N distinct pairs for large N, and a duplicate component is
// preferable to an error in a load-testing generator.
const maxUniqueAttempts = 10

// Factory synthesizes package records from the static catalog tables.
// Not safe for concurrent use; each generation job owns its own Factory.
type Factory struct {
	rng  *rand.Rand
	seen map[string]struct{}
	next int
}

// NewFactory creates a Factory drawing randomness from rng.
func NewFactory(rng *rand.Rand) *Factory {
	return &Factory{
		rng:  rng,
		seen: make(map[string]struct{}),
	}
}

// Synthesize produces the next component: a uniformly chosen ecosystem,
// a name from that ecosystem's list, a fabricated version, and the derived
// purl/cpe/checksum fields. When unique is set it re-picks up to
// maxUniqueAttempts times to avoid an already-seen (ecosystem, name) pair
// and then accepts the duplicate.
func (f *Factory) Synthesize(unique bool) model.Component {
	ecosystem, name := f.pickName()
	if unique {
		for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
			if _, dup := f.seen[ecosystem+":"+name]; !dup {
				break
			}
			ecosystem, name = f.pickName()
		}
	}
	f.seen[ecosystem+":"+name] = struct{}{}

	version := f.Version()
	comp := model.Component{
		SequenceIndex:    f.next,
		Ecosystem:        ecosystem,
		Name:             name,
		Version:          version,
		PURL:             PackageURL(ecosystem, name, version),
		CPE:              CPE(name, version),
		Checksum:         Checksum(f.rng),
		LicenseConcluded: pick(f.rng, catalog.Licenses),
		LicenseDeclared:  pick(f.rng, catalog.Licenses),
		Supplier:         pick(f.rng, catalog.Suppliers),
	}
	f.next++
	return comp
}

// SynthesizeAll produces n components in sequence order.
func (f *Factory) SynthesizeAll(n int, unique bool) []model.Component {
	comps := make([]model.Component, 0, n)
	for i := 0; i < n; i++ {
		comps = append(comps, f.Synthesize(unique))
	}
	return comps
}

func (f *Factory) pickName() (ecosystem, name string) {
	ecosystem = pick(f.rng, catalog.EcosystemNames())
	name = pick(f.rng, catalog.Ecosystems[ecosystem])
	return ecosystem, name
}

// Version fabricates a version string from one of five fixed templates:
// a three-part semantic form, a two-part form, "-beta.N" and "-rc.N"
// pre-releases, and a year-based calendar form. Fields are independently
// random within small fixed ranges; no ordering semantics are implied.
func (f *Factory) Version() string {
	switch f.rng.Intn(5) {
	case 0:
		return fmt.Sprintf("%d.%d.%d", f.intIn(0, 10), f.intIn(0, 20), f.intIn(0, 99))
	case 1:
		return fmt.Sprintf("%d.%d", f.intIn(0, 5), f.intIn(0, 15))
	case 2:
		return fmt.Sprintf("%d.%d.%d-beta.%d", f.intIn(1, 3), f.intIn(0, 10), f.intIn(0, 30), f.intIn(1, 5))
	case 3:
		return fmt.Sprintf("%d.%d.%d-rc.%d", f.intIn(0, 2), f.intIn(0, 9), f.intIn(0, 20), f.intIn(1, 3))
	default:
		return fmt.Sprintf("%d.%d.%d", f.intIn(20, 23), f.intIn(1, 12), f.intIn(1, 30))
	}
}

// intIn returns a uniform random int in [lo, hi], both ends inclusive.
func (f *Factory) intIn(lo, hi int) int {
	return lo + f.rng.Intn(hi-lo+1)
}

// PackageURL builds the purl for a component. Maven names carry their
// group as "group:artifact" and map to pkg:maven/<group>/<artifact>@<ver>;
// every other known ecosystem maps to pkg:<ecosystem>/<name>@<ver>.
func PackageURL(ecosystem, name, version string) string {
	switch ecosystem {
	case "maven":
		group, artifact, ok := strings.Cut(name, ":")
		if ok {
			return fmt.Sprintf("pkg:maven/%s/%s@%s", group, artifact, version)
		}
		return fmt.Sprintf("pkg:maven/%s@%s", name, version)
	case "npm", "pypi", "golang", "nuget":
		return fmt.Sprintf("pkg:%s/%s@%s", ecosystem, name, version)
	default:
		return fmt.Sprintf("pkg:generic/%s@%s", name, version)
	}
}

// CPE builds a CPE 2.3 identifier. The vendor and product are taken from
// splitting the name on ":"; names without a colon use the full name for
// both. All remaining fields are wildcards.
func CPE(name, version string) string {
	vendor, product := name, name
	if v, p, ok := strings.Cut(name, ":"); ok {
		vendor, product = v, p
	}
	return fmt.Sprintf("cpe:2.3:a:%s:%s:%s:*:*:*:*:*:*:*", vendor, product, version)
}

// Checksum returns a hex SHA-256 digest of 32 random bytes. It is a
// synthetic placeholder: not a content hash of any real artifact, and
// not verifiable against anything.
func Checksum(rng *rand.Rand) string {
	buf := make([]byte, 32)
	rng.Read(buf) // never fails for math/rand sources
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}
