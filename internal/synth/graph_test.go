package synth

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/repo-posture/sbom-forge/internal/model"
)

func TestBuildGraphBasicTierEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if rels := BuildGraph(rng, 100, model.TierBasic); rels != nil {
		t.Errorf("tier 1 produced %d relationships, want none", len(rels))
	}
	if rels := BuildGraph(rng, 1, model.TierAdvanced); rels != nil {
		t.Errorf("single component produced %d relationships, want none", len(rels))
	}
	if rels := BuildGraph(rng, 0, model.TierAdvanced); rels != nil {
		t.Errorf("zero components produced %d relationships, want none", len(rels))
	}
}

func TestBuildGraphStandardTier(t *testing.T) {
	const n = 50
	rels := BuildGraph(rand.New(rand.NewSource(2)), n, model.TierStandard)

	// Exactly one dependency per component from index 1 up.
	if len(rels) != n-1 {
		t.Fatalf("relationship count = %d, want %d", len(rels), n-1)
	}
	for i, r := range rels {
		if r.Source != i+1 {
			t.Errorf("rels[%d].Source = %d, want %d", i, r.Source, i+1)
		}
	}
	assertAcyclic(t, rels, n)
}

func TestBuildGraphAdvancedTier(t *testing.T) {
	const n = 80
	rels := BuildGraph(rand.New(rand.NewSource(3)), n, model.TierAdvanced)

	perSource := make(map[int]int)
	for _, r := range rels {
		perSource[r.Source]++
	}
	for source := 1; source < n; source++ {
		count := perSource[source]
		limit := min(3, source)
		if count < 1 || count > limit {
			t.Errorf("source %d has %d dependencies, want 1..%d", source, count, limit)
		}
	}
	assertAcyclic(t, rels, n)
}

func TestBuildGraphDeterminism(t *testing.T) {
	a := BuildGraph(rand.New(rand.NewSource(9)), 40, model.TierAdvanced)
	b := BuildGraph(rand.New(rand.NewSource(9)), 40, model.TierAdvanced)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different graphs")
	}
}

// assertAcyclic checks the structural DAG invariant: every edge points to
// a strictly smaller index and stays in range.
func assertAcyclic(t *testing.T, rels []model.Relationship, n int) {
	t.Helper()
	for _, r := range rels {
		if r.Target >= r.Source {
			t.Errorf("edge %d -> %d violates target < source", r.Source, r.Target)
		}
		if r.Target < 0 || r.Source >= n {
			t.Errorf("edge %d -> %d references an index outside 0..%d", r.Source, r.Target, n-1)
		}
		if r.Kind != model.RelDependsOn {
			t.Errorf("edge %d -> %d has kind %q, want %q", r.Source, r.Target, r.Kind, model.RelDependsOn)
		}
	}
}
