package output

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	spdxjson "github.com/spdx/tools-golang/json"
	"github.com/stretchr/testify/require"

	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/synth"
)

func buildComponents(t *testing.T, n int) []model.Component {
	t.Helper()
	return synth.NewFactory(rand.New(rand.NewSource(17))).SynthesizeAll(n, false)
}

func TestBuildSPDXBasicTier(t *testing.T) {
	comps := buildComponents(t, 5)
	doc := BuildSPDX(rand.New(rand.NewSource(1)), comps, nil, model.TierBasic)

	require.Equal(t, "SPDX-2.2", doc.SPDXVersion)
	require.Equal(t, "CC0-1.0", doc.DataLicense)
	require.Equal(t, "SPDXRef-DOCUMENT", doc.SPDXID)
	require.Len(t, doc.Packages, 5)

	for i, pkg := range doc.Packages {
		require.Equal(t, "SPDXRef-Package-"+strconv.Itoa(i), pkg.SPDXID)
		require.Len(t, pkg.ExternalRefs, 1, "tier 1 carries the purl reference only")
		require.Equal(t, "purl", pkg.ExternalRefs[0].ReferenceType)
		require.Len(t, pkg.Checksums, 1)
		require.Equal(t, "SHA256", pkg.Checksums[0].Algorithm)
		require.False(t, pkg.FilesAnalyzed)
		require.Empty(t, pkg.Description)
		require.Empty(t, pkg.AttributionTexts)
		require.True(t, strings.HasPrefix(pkg.Supplier, "Organization: "))
	}

	// A tier 1 document must not serialize a relationships key at all.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var asMap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &asMap))
	require.NotContains(t, asMap, "relationships")
}

func TestBuildSPDXFieldsGrowWithTier(t *testing.T) {
	comps := buildComponents(t, 10)
	rels := synth.BuildGraph(rand.New(rand.NewSource(2)), len(comps), model.TierAdvanced)

	basic := BuildSPDX(rand.New(rand.NewSource(3)), comps, rels, model.TierBasic)
	standard := BuildSPDX(rand.New(rand.NewSource(3)), comps, rels, model.TierStandard)
	advanced := BuildSPDX(rand.New(rand.NewSource(3)), comps, rels, model.TierAdvanced)

	require.Empty(t, basic.Relationships)
	require.Len(t, standard.Relationships, len(rels))
	require.Len(t, advanced.Relationships, len(rels))

	for _, doc := range []*SPDXDocument{standard, advanced} {
		for _, pkg := range doc.Packages {
			require.Len(t, pkg.ExternalRefs, 3)
			require.Equal(t, "cpe23Type", pkg.ExternalRefs[1].ReferenceType)
			require.Equal(t, "website", pkg.ExternalRefs[2].ReferenceType)
			require.NotEmpty(t, pkg.Description)
			require.Contains(t, pkg.CopyrightText, "Copyright")
			require.Len(t, pkg.AttributionTexts, 1)
		}
	}
}

func TestBuildSPDXRelationships(t *testing.T) {
	comps := buildComponents(t, 30)
	rels := synth.BuildGraph(rand.New(rand.NewSource(4)), len(comps), model.TierAdvanced)
	doc := BuildSPDX(rand.New(rand.NewSource(5)), comps, rels, model.TierAdvanced)

	require.Len(t, doc.Relationships, len(rels))
	for _, r := range doc.Relationships {
		require.Equal(t, "DEPENDS_ON", r.RelationshipType)
		source := refIndex(t, r.SpdxElementID)
		target := refIndex(t, r.RelatedSpdxElement)
		require.Greater(t, source, target, "dependency edges must point backwards")
	}
}

func refIndex(t *testing.T, ref string) int {
	t.Helper()
	suffix, ok := strings.CutPrefix(ref, "SPDXRef-Package-")
	require.True(t, ok, "unexpected ref %q", ref)
	n, err := strconv.Atoi(suffix)
	require.NoError(t, err)
	return n
}

// TestSPDXParsesWithTooling feeds the serialized document through the
// SPDX reference tooling, the same path an ingestion pipeline would take.
func TestSPDXParsesWithTooling(t *testing.T) {
	comps := buildComponents(t, 20)
	rels := synth.BuildGraph(rand.New(rand.NewSource(6)), len(comps), model.TierStandard)
	doc := BuildSPDX(rand.New(rand.NewSource(7)), comps, rels, model.TierStandard)

	raw, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	parsed, err := spdxjson.Read(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "Synthetic SPDX SBOM", parsed.DocumentName)
	require.Len(t, parsed.Packages, 20)
}
