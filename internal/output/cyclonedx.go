// Package output assembles the SBOM document models and serializes them.
package output

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/synth"
)

// Tool identity embedded in every generated document.
const (
	ToolName    = "sbom-forge"
	ToolVersion = "2.0.0"
	ToolAuthor  = "Performance Testing Team"
)

// ---- CycloneDX 1.6 JSON schema types ----

type CDXDocument struct {
	Schema          string             `json:"$schema"`
	BOMFormat       string             `json:"bomFormat"`
	SpecVersion     string             `json:"specVersion"`
	SerialNumber    string             `json:"serialNumber"`
	Version         int                `json:"version"`
	Metadata        CDXMetadata        `json:"metadata"`
	Components      []CDXComponent     `json:"components"`
	Dependencies    []CDXDependency    `json:"dependencies,omitempty"`
	Vulnerabilities []CDXVulnerability `json:"vulnerabilities,omitempty"`
}

type CDXMetadata struct {
	Timestamp string           `json:"timestamp"`
	Tools     CDXTools         `json:"tools"`
	Component CDXRootComponent `json:"component"`
}

type CDXTools struct {
	Components []CDXToolComponent `json:"components"`
}

type CDXToolComponent struct {
	Type    string `json:"type"`
	Author  string `json:"author"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type CDXRootComponent struct {
	BOMRef  string `json:"bom-ref"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type CDXComponent struct {
	BOMRef             string                 `json:"bom-ref"`
	Type               string                 `json:"type"`
	Name               string                 `json:"name"`
	Version            string                 `json:"version"`
	PURL               string                 `json:"purl"`
	Group              string                 `json:"group,omitempty"`
	CPE                string                 `json:"cpe"`
	Licenses           []CDXLicenseChoice     `json:"licenses,omitempty"`
	ExternalReferences []CDXExternalReference `json:"externalReferences"`
	Properties         []CDXProperty          `json:"properties"`
}

type CDXLicenseChoice struct {
	License CDXLicense `json:"license"`
}

type CDXLicense struct {
	ID string `json:"id"`
}

type CDXExternalReference struct {
	URL    string    `json:"url"`
	Hashes []CDXHash `json:"hashes"`
	Type   string    `json:"type"`
}

type CDXHash struct {
	Alg     string `json:"alg"`
	Content string `json:"content"`
}

type CDXProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CDXDependency struct {
	Ref       string   `json:"ref"`
	DependsOn []string `json:"dependsOn"`
}

type CDXVulnerability struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Ratings     []CDXRating    `json:"ratings"`
	Advisories  []CDXAdvisory  `json:"advisories"`
	Affects     []CDXAffectRef `json:"affects"`
}

type CDXRating struct {
	Score    float64 `json:"score"`
	Severity string  `json:"severity"`
	Method   string  `json:"method"`
}

type CDXAdvisory struct {
	URL string `json:"url"`
}

type CDXAffectRef struct {
	Ref string `json:"ref"`
}

// BuildCycloneDX assembles a CycloneDX 1.6 document. Licenses appear from
// tier 2 up; the scanner-style properties block and the single external
// reference are always present. Dependencies mirror the relationship graph
// through bom-ref strings; component 0 is never a dependency source.
//
// withVulns enables the optional vulnerability injection: roughly 30% of
// components get a fabricated CVE record referencing their bom-ref.
func BuildCycloneDX(rng *rand.Rand, comps []model.Component, rels []model.Relationship, tier model.Tier, withVulns bool) *CDXDocument {
	components := make([]CDXComponent, 0, len(comps))
	var vulns []CDXVulnerability

	for _, c := range comps {
		// Maven names carry the group as "group:artifact"; the group moves
		// to its own field while bom-ref and properties keep the full name.
		name := c.Name
		group := ""
		if c.Ecosystem == "maven" {
			if g, artifact, ok := strings.Cut(c.Name, ":"); ok {
				group, name = g, artifact
			}
		}

		bomRef := c.PURL + "?package-id=" + packageID(c.Name+":"+c.Version)

		comp := CDXComponent{
			BOMRef:  bomRef,
			Type:    "library",
			Name:    name,
			Version: c.Version,
			PURL:    c.PURL,
			Group:   group,
			CPE:     c.CPE,
			ExternalReferences: []CDXExternalReference{{
				URL: "",
				// The alg label says SHA-1 but the content is the
				// component's SHA-256-derived checksum. The mismatch is
				// present in the scanner output this generator imitates
				// and ingestion pipelines expect it verbatim.
				Hashes: []CDXHash{{Alg: "SHA-1", Content: c.Checksum}},
				Type:   "build-meta",
			}},
			Properties: properties(c),
		}

		if tier >= model.TierStandard {
			comp.Licenses = []CDXLicenseChoice{{License: CDXLicense{ID: c.LicenseConcluded}}}
		}

		components = append(components, comp)

		if withVulns {
			if v := synth.SynthesizeVulnerability(rng, c.Name, c.Version); v != nil {
				vulns = append(vulns, CDXVulnerability{
					ID:          v.ID,
					Description: v.Description,
					Ratings: []CDXRating{{
						Score:    v.Score,
						Severity: strings.ToLower(v.Severity),
						Method:   "CVSSv3",
					}},
					Advisories: advisories(v.References),
					Affects:    []CDXAffectRef{{Ref: bomRef}},
				})
			}
		}
	}

	doc := &CDXDocument{
		Schema:       "http://cyclonedx.org/schema/bom-1.6.schema.json",
		BOMFormat:    "CycloneDX",
		SpecVersion:  "1.6",
		SerialNumber: "urn:uuid:" + uuid.NewString(),
		Version:      1,
		Metadata: CDXMetadata{
			Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
			Tools: CDXTools{Components: []CDXToolComponent{{
				Type:    "application",
				Author:  ToolAuthor,
				Name:    ToolName,
				Version: ToolVersion,
			}}},
			Component: CDXRootComponent{
				BOMRef:  packageID("root-component"),
				Type:    "application",
				Name:    "Synthetic Application",
				Version: "1.0.0",
			},
		},
		Components:      components,
		Vulnerabilities: vulns,
	}

	if tier > model.TierBasic && len(rels) > 0 {
		doc.Dependencies = dependencies(components, rels)
	}
	return doc
}

// dependencies mirrors the index-based relationship graph as bom-ref
// entries, one per source, with slot order preserved (duplicates included).
func dependencies(components []CDXComponent, rels []model.Relationship) []CDXDependency {
	dependsOn := make(map[int][]string)
	order := make([]int, 0, len(components))
	for _, r := range rels {
		if _, seen := dependsOn[r.Source]; !seen {
			order = append(order, r.Source)
		}
		dependsOn[r.Source] = append(dependsOn[r.Source], components[r.Target].BOMRef)
	}

	deps := make([]CDXDependency, 0, len(order))
	for _, source := range order {
		deps = append(deps, CDXDependency{
			Ref:       components[source].BOMRef,
			DependsOn: dependsOn[source],
		})
	}
	return deps
}

// properties mirrors the property schema of a third-party scanner so the
// generated documents exercise the same ingestion code paths.
func properties(c model.Component) []CDXProperty {
	language := c.Ecosystem
	if language == "maven" {
		language = "java"
	}
	return []CDXProperty{
		{Name: "syft:package:foundBy", Value: c.Ecosystem + "-cataloger"},
		{Name: "syft:package:language", Value: language},
		{Name: "syft:package:type", Value: c.Ecosystem},
		{Name: "syft:package:metadataType", Value: c.Ecosystem},
		{Name: "syft:cpe23", Value: c.CPE},
		{Name: "syft:location:0:path", Value: fmt.Sprintf("/packages/%s/%s/%s", c.Ecosystem, c.Name, c.Version)},
	}
}

func advisories(urls []string) []CDXAdvisory {
	advs := make([]CDXAdvisory, 0, len(urls))
	for _, u := range urls {
		advs = append(advs, CDXAdvisory{URL: u})
	}
	return advs
}

// packageID is the 16-hex-char MD5 prefix CycloneDX bom-refs carry to
// disambiguate colliding purls.
func packageID(seed string) string {
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])[:16]
}
