package output

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/repo-posture/sbom-forge/internal/model"
)

// ---- SPDX 2.2 JSON schema types ----

type SPDXDocument struct {
	SPDXVersion       string             `json:"spdxVersion"`
	DataLicense       string             `json:"dataLicense"`
	SPDXID            string             `json:"SPDXID"`
	Name              string             `json:"name"`
	DocumentNamespace string             `json:"documentNamespace"`
	CreationInfo      SPDXCreationInfo   `json:"creationInfo"`
	Packages          []SPDXPackage      `json:"packages"`
	Relationships     []SPDXRelationship `json:"relationships,omitempty"`
}

type SPDXCreationInfo struct {
	Created  string   `json:"created"`
	Creators []string `json:"creators"`
	Comment  string   `json:"comment"`
}

type SPDXPackage struct {
	SPDXID           string            `json:"SPDXID"`
	Name             string            `json:"name"`
	VersionInfo      string            `json:"versionInfo"`
	Supplier         string            `json:"supplier"`
	LicenseConcluded string            `json:"licenseConcluded"`
	LicenseDeclared  string            `json:"licenseDeclared"`
	DownloadLocation string            `json:"downloadLocation"`
	FilesAnalyzed    bool              `json:"filesAnalyzed"`
	ExternalRefs     []SPDXExternalRef `json:"externalRefs"`
	Checksums        []SPDXChecksum    `json:"checksums"`
	Description      string            `json:"description,omitempty"`
	CopyrightText    string            `json:"copyrightText,omitempty"`
	AttributionTexts []string          `json:"attributionTexts,omitempty"`
}

type SPDXExternalRef struct {
	ReferenceCategory string `json:"referenceCategory"`
	ReferenceType     string `json:"referenceType"`
	ReferenceLocator  string `json:"referenceLocator"`
}

type SPDXChecksum struct {
	Algorithm     string `json:"algorithm"`
	ChecksumValue string `json:"checksumValue"`
}

type SPDXRelationship struct {
	SpdxElementID      string `json:"spdxElementId"`
	RelatedSpdxElement string `json:"relatedSpdxElement"`
	RelationshipType   string `json:"relationshipType"`
}

// BuildSPDX assembles an SPDX 2.2 document from synthesized components and
// their dependency relation. The complexity tier gates field presence:
// tier 1 carries purl references only, tier 2 adds cpe/website references
// and descriptive fields, and relationships appear from tier 2 up. The
// document gets a fresh UUID namespace on every call.
func BuildSPDX(rng *rand.Rand, comps []model.Component, rels []model.Relationship, tier model.Tier) *SPDXDocument {
	pkgs := make([]SPDXPackage, 0, len(comps))
	for _, c := range comps {
		refs := []SPDXExternalRef{{
			ReferenceCategory: "PACKAGE-MANAGER",
			ReferenceType:     "purl",
			ReferenceLocator:  c.PURL,
		}}
		if tier > model.TierBasic {
			refs = append(refs,
				SPDXExternalRef{
					ReferenceCategory: "SECURITY",
					ReferenceType:     "cpe23Type",
					ReferenceLocator:  c.CPE,
				},
				SPDXExternalRef{
					ReferenceCategory: "OTHER",
					ReferenceType:     "website",
					ReferenceLocator:  fmt.Sprintf("https://%s.example.org/package/%s", c.Ecosystem, c.Name),
				},
			)
		}

		pkg := SPDXPackage{
			SPDXID:           spdxRef(c.SequenceIndex),
			Name:             c.Name,
			VersionInfo:      c.Version,
			Supplier:         "Organization: " + c.Supplier,
			LicenseConcluded: c.LicenseConcluded,
			LicenseDeclared:  c.LicenseDeclared,
			DownloadLocation: fmt.Sprintf("https://%s.example.org/download/%s/%s", c.Ecosystem, c.Name, c.Version),
			FilesAnalyzed:    false,
			ExternalRefs:     refs,
			Checksums: []SPDXChecksum{{
				Algorithm:     "SHA256",
				ChecksumValue: c.Checksum,
			}},
		}

		if tier >= model.TierStandard {
			pkg.Description = fmt.Sprintf("This is a synthetic %s package for %s.", c.Ecosystem, c.Name)
			pkg.CopyrightText = fmt.Sprintf("Copyright %d Example Organization", 2010+rng.Intn(14))
			pkg.AttributionTexts = []string{fmt.Sprintf("Attribution for %s goes to its original authors.", c.Name)}
		}

		pkgs = append(pkgs, pkg)
	}

	doc := &SPDXDocument{
		SPDXVersion:       "SPDX-2.2",
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              "Synthetic SPDX SBOM",
		DocumentNamespace: "http://spdx.org/spdxdocs/synthetic-sbom-" + uuid.NewString(),
		CreationInfo: SPDXCreationInfo{
			Created:  time.Now().UTC().Format(time.RFC3339),
			Creators: []string{"Tool: " + ToolName, "Organization: " + ToolAuthor},
			Comment:  "This SBOM was generated for performance testing purposes",
		},
		Packages: pkgs,
	}

	// Tier 1 documents must not carry a relationships key at all.
	if tier > model.TierBasic && len(rels) > 0 {
		doc.Relationships = make([]SPDXRelationship, 0, len(rels))
		for _, r := range rels {
			doc.Relationships = append(doc.Relationships, SPDXRelationship{
				SpdxElementID:      spdxRef(r.Source),
				RelatedSpdxElement: spdxRef(r.Target),
				RelationshipType:   r.Kind,
			})
		}
	}
	return doc
}

func spdxRef(index int) string {
	return fmt.Sprintf("SPDXRef-Package-%d", index)
}
