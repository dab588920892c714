package output

import (
	"encoding/xml"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/synth"
)

func TestProjectXML(t *testing.T) {
	comps := buildComponents(t, 8)
	rels := synth.BuildGraph(rand.New(rand.NewSource(1)), len(comps), model.TierStandard)
	doc := BuildCycloneDX(rand.New(rand.NewSource(2)), comps, rels, model.TierStandard, false)

	bom := ProjectXML(doc)

	require.Equal(t, cdx14Namespace, bom.Namespace)
	require.Equal(t, doc.SerialNumber, bom.SerialNumber)
	require.Equal(t, doc.Version, bom.Version)
	require.Equal(t, doc.Metadata.Component.BOMRef, bom.Metadata.Component.BOMRef)
	require.Len(t, bom.Metadata.Tools.Tools, 1)
	require.Equal(t, ToolName, bom.Metadata.Tools.Tools[0].Name)

	require.Len(t, bom.Components.Components, len(doc.Components))
	for i, c := range bom.Components.Components {
		src := doc.Components[i]
		require.Equal(t, src.BOMRef, c.BOMRef)
		require.Equal(t, src.PURL, c.PURL)
		require.Equal(t, src.CPE, c.CPE)

		// The checksum moves from the external reference into hashes/hash.
		require.NotNil(t, c.Hashes)
		require.Len(t, c.Hashes.Hashes, 1)
		require.Equal(t, "SHA-1", c.Hashes.Hashes[0].Alg)
		require.Equal(t, src.ExternalReferences[0].Hashes[0].Content, c.Hashes.Hashes[0].Content)

		require.NotNil(t, c.Licenses)
		require.Equal(t, src.Licenses[0].License.ID, c.Licenses.Licenses[0].ID)
	}

	require.NotNil(t, bom.Dependencies)
	require.Len(t, bom.Dependencies.Dependencies, len(doc.Dependencies))
}

func TestProjectXMLDropsJSONOnlyFields(t *testing.T) {
	comps := buildComponents(t, 5)
	doc := BuildCycloneDX(rand.New(rand.NewSource(3)), comps, nil, model.TierStandard, false)

	raw, err := xml.MarshalIndent(ProjectXML(doc), "", "  ")
	require.NoError(t, err)
	text := string(raw)

	require.Contains(t, text, `xmlns="http://cyclonedx.org/schema/bom/1.4"`)
	require.NotContains(t, text, "$schema")
	require.NotContains(t, text, "properties")
	require.NotContains(t, text, "externalReferences")
	require.NotContains(t, text, "<group>")
}

func TestProjectXMLRoundTrip(t *testing.T) {
	comps := buildComponents(t, 10)
	rels := synth.BuildGraph(rand.New(rand.NewSource(4)), len(comps), model.TierAdvanced)
	doc := BuildCycloneDX(rand.New(rand.NewSource(5)), comps, rels, model.TierAdvanced, false)

	raw, err := xml.MarshalIndent(ProjectXML(doc), "", "  ")
	require.NoError(t, err)

	var decoded XMLBOM
	require.NoError(t, xml.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Components.Components, 10)
	require.NotNil(t, decoded.Dependencies)
	for _, dep := range decoded.Dependencies.Dependencies {
		require.True(t, strings.Contains(dep.Ref, "?package-id="))
		require.NotEmpty(t, dep.DependsOn)
	}
}

func TestProjectXMLNoDependencies(t *testing.T) {
	comps := buildComponents(t, 3)
	doc := BuildCycloneDX(rand.New(rand.NewSource(6)), comps, nil, model.TierBasic, false)

	bom := ProjectXML(doc)
	require.Nil(t, bom.Dependencies, "basic tier must omit the dependencies element")

	raw, err := xml.Marshal(bom)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "<dependencies>")
}
