package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/repo-posture/sbom-forge/internal/catalog"
)

// vulnChance is the probability that a component gets a vulnerability
// when injection is enabled.
const vulnChance = 0.3

// Vulnerability is one fabricated CVE record. The identifier, score and
// reference URLs are synthetic and never correspond to a real advisory.
type Vulnerability struct {
	ID          string
	Description string
	Severity    string
	Score       float64
	References  []string
}

// SynthesizeVulnerability returns a fabricated vulnerability for roughly
// 30% of calls and nil for the rest. The record is built from one of the
// catalog's CVE templates, filled with the component's name and version
// and a CVSS score uniform in the template's range.
func SynthesizeVulnerability(rng *rand.Rand, name, version string) *Vulnerability {
	if rng.Float64() >= vulnChance {
		return nil
	}

	tmpl := catalog.CVETemplates[rng.Intn(len(catalog.CVETemplates))]
	id := fmt.Sprintf("%s%d", tmpl.IDPrefix, 1000+rng.Intn(9000))
	score := tmpl.ScoreMin + rng.Float64()*(tmpl.ScoreMax-tmpl.ScoreMin)

	return &Vulnerability{
		ID:          id,
		Description: fmt.Sprintf(tmpl.Description, name, version),
		Severity:    tmpl.Severity,
		Score:       math.Round(score*10) / 10,
		References: []string{
			"https://nvd.nist.gov/vuln/detail/" + id,
			"https://cve.mitre.org/cgi-bin/cvename.cgi?name=" + id,
		},
	}
}
