package synth

import (
	"math/rand"

	"github.com/repo-posture/sbom-forge/internal/model"
)

// BuildGraph constructs the dependency relation over componentCount
// components. Every edge points from a component to one with a strictly
// smaller sequence index, so the relation is acyclic by construction and
// component 0 never depends on anything.
//
// Tier 1 documents (and single-component documents) have no relationships.
// At tier 2 every component from index 1 up depends on exactly one earlier
// component; at tier 3 the fan-out is uniform in [1, min(3, i)].
//
// Duplicate targets for the same source are kept as emitted. The edge
// count per source is part of the generator's contract, so the slots are
// not deduplicated.
func BuildGraph(rng *rand.Rand, componentCount int, tier model.Tier) []model.Relationship {
	if tier <= model.TierBasic || componentCount <= 1 {
		return nil
	}

	var rels []model.Relationship
	for source := 1; source < componentCount; source++ {
		depCount := 1
		if tier > model.TierStandard {
			depCount = 1 + rng.Intn(min(3, source))
		}
		for slot := 0; slot < depCount; slot++ {
			rels = append(rels, model.Relationship{
				Source: source,
				Target: rng.Intn(source),
				Kind:   model.RelDependsOn,
			})
		}
	}
	return rels
}
