package output

// XML projection of the CycloneDX document model. The projection is
// deliberately lossy: only the fields enumerated below survive, and
// everything else ($schema, properties, external references beyond their
// hash, group) is silently dropped. Consumers of the XML flavor depend on
// this exact shape, so the projection must stay lossy.

import "encoding/xml"

// cdx14Namespace is the namespace the XML flavor is pinned to. The JSON
// model is 1.6; the XML projection keeps the older namespace on purpose.
const cdx14Namespace = "http://cyclonedx.org/schema/bom/1.4"

type XMLBOM struct {
	XMLName      xml.Name         `xml:"bom"`
	Namespace    string           `xml:"xmlns,attr"`
	SerialNumber string           `xml:"serialNumber,attr"`
	Version      int              `xml:"version,attr"`
	Metadata     xmlMetadata      `xml:"metadata"`
	Components   xmlComponents    `xml:"components"`
	Dependencies *xmlDependencies `xml:"dependencies,omitempty"`
}

type xmlMetadata struct {
	Timestamp string       `xml:"timestamp"`
	Tools     xmlTools     `xml:"tools"`
	Component xmlComponent `xml:"component"`
}

type xmlTools struct {
	Tools []xmlTool `xml:"tool"`
}

type xmlTool struct {
	Author  string `xml:"author"`
	Name    string `xml:"name"`
	Version string `xml:"version"`
}

type xmlComponents struct {
	Components []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	Type        string       `xml:"type,attr"`
	BOMRef      string       `xml:"bom-ref,attr,omitempty"`
	Name        string       `xml:"name,omitempty"`
	Version     string       `xml:"version,omitempty"`
	Description string       `xml:"description,omitempty"`
	PURL        string       `xml:"purl,omitempty"`
	CPE         string       `xml:"cpe,omitempty"`
	Licenses    *xmlLicenses `xml:"licenses,omitempty"`
	Hashes      *xmlHashes   `xml:"hashes,omitempty"`
}

type xmlLicenses struct {
	Licenses []xmlLicense `xml:"license"`
}

type xmlLicense struct {
	ID string `xml:"id"`
}

type xmlHashes struct {
	Hashes []xmlHash `xml:"hash"`
}

type xmlHash struct {
	Alg     string `xml:"alg,attr"`
	Content string `xml:",chardata"`
}

type xmlDependencies struct {
	Dependencies []xmlDependency `xml:"dependency"`
}

type xmlDependency struct {
	Ref       string   `xml:"ref,attr"`
	DependsOn []string `xml:"dependsOn"`
}

// ProjectXML maps a CycloneDX document model into its XML tree. The
// mapping is structural and deterministic: same document in, same tree
// out. XML is defined only for CycloneDX; SPDX documents have no
// projection and callers must fall back to JSON.
func ProjectXML(doc *CDXDocument) *XMLBOM {
	bom := &XMLBOM{
		Namespace:    cdx14Namespace,
		SerialNumber: doc.SerialNumber,
		Version:      doc.Version,
		Metadata: xmlMetadata{
			Timestamp: doc.Metadata.Timestamp,
			Component: xmlComponent{
				Type:    doc.Metadata.Component.Type,
				BOMRef:  doc.Metadata.Component.BOMRef,
				Name:    doc.Metadata.Component.Name,
				Version: doc.Metadata.Component.Version,
			},
		},
	}

	for _, tool := range doc.Metadata.Tools.Components {
		bom.Metadata.Tools.Tools = append(bom.Metadata.Tools.Tools, xmlTool{
			Author:  tool.Author,
			Name:    tool.Name,
			Version: tool.Version,
		})
	}

	bom.Components.Components = make([]xmlComponent, 0, len(doc.Components))
	for _, c := range doc.Components {
		bom.Components.Components = append(bom.Components.Components, projectComponent(c))
	}

	if len(doc.Dependencies) > 0 {
		deps := &xmlDependencies{Dependencies: make([]xmlDependency, 0, len(doc.Dependencies))}
		for _, d := range doc.Dependencies {
			deps.Dependencies = append(deps.Dependencies, xmlDependency{
				Ref:       d.Ref,
				DependsOn: d.DependsOn,
			})
		}
		bom.Dependencies = deps
	}

	return bom
}

func projectComponent(c CDXComponent) xmlComponent {
	out := xmlComponent{
		Type:    c.Type,
		BOMRef:  c.BOMRef,
		Name:    c.Name,
		Version: c.Version,
		PURL:    c.PURL,
		CPE:     c.CPE,
	}

	if len(c.Licenses) > 0 {
		lics := &xmlLicenses{}
		for _, l := range c.Licenses {
			lics.Licenses = append(lics.Licenses, xmlLicense{ID: l.License.ID})
		}
		out.Licenses = lics
	}

	// The component's only hash rides on its external reference in the
	// JSON model; the XML flavor hoists it into hashes/hash.
	var hashes []xmlHash
	for _, ref := range c.ExternalReferences {
		for _, h := range ref.Hashes {
			hashes = append(hashes, xmlHash{Alg: h.Alg, Content: h.Content})
		}
	}
	if len(hashes) > 0 {
		out.Hashes = &xmlHashes{Hashes: hashes}
	}

	return out
}
