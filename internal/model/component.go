// Package model defines the internal data structures used by the SBOM engine.
package model

import "fmt"

// Component is one synthesized package record. SequenceIndex is unique
// within a document and equals creation order (0-based); PURL and CPE are
// pure functions of (Ecosystem, Name, Version).
type Component struct {
	SequenceIndex    int    // Position in the document, 0-based
	Ecosystem        string // npm, maven, pypi, golang, nuget (or generic)
	Name             string // Package name; maven names are "group:artifact"
	Version          string // Fabricated version string
	PURL             string // Package URL (pkg:npm/react@2.4.1)
	CPE              string // CPE 2.3 identifier string
	Checksum         string // Hex SHA-256 of random bytes — placeholder, verifies nothing
	LicenseConcluded string
	LicenseDeclared  string
	Supplier         string
}

// Key returns the (ecosystem, name) pair used for uniqueness tracking.
func (c Component) Key() string {
	return c.Ecosystem + ":" + c.Name
}

// RelDependsOn is the only relationship kind the generator emits.
const RelDependsOn = "DEPENDS_ON"

// Relationship is one directed dependency edge between two components,
// identified by sequence index. Target < Source always holds, which makes
// the relation a DAG by construction: component 0 never depends on anything.
type Relationship struct {
	Source int
	Target int
	Kind   string // always RelDependsOn
}

// Tier is the complexity tier gating how many optional fields and
// relationships a generated document includes.
type Tier int

const (
	// TierBasic produces components only: purl references, no
	// relationships, no descriptive fields.
	TierBasic Tier = 1
	// TierStandard adds cpe/website references, descriptive fields and
	// exactly one dependency per component.
	TierStandard Tier = 2
	// TierAdvanced raises the dependency fan-out to 1-3 per component.
	TierAdvanced Tier = 3
)

// ParseTier validates an integer complexity level.
func ParseTier(level int) (Tier, error) {
	if level < 1 || level > 3 {
		return 0, fmt.Errorf("invalid complexity level %d (must be 1, 2 or 3)", level)
	}
	return Tier(level), nil
}
