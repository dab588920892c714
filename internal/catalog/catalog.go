// Package catalog holds the static tables the synthesizer draws from:
// ecosystems with real-world package names, SPDX license identifiers,
// supplier organizations and CVE templates. Every table is read-only
// after init, so it is safe to share across concurrent generation jobs.
package catalog

import "sort"

// Licenses is the pool of license identifiers assigned to synthesized
// components. Mostly real SPDX IDs plus two non-SPDX placeholders.
var Licenses = []string{
	"MIT", "Apache-2.0", "GPL-3.0", "GPL-2.0", "LGPL-2.1", "BSD-3-Clause", "BSD-2-Clause",
	"MPL-2.0", "EPL-2.0", "AGPL-3.0", "Unlicense", "ISC", "WTFPL", "CC0-1.0",
	"CC-BY-4.0", "CC-BY-SA-4.0", "Artistic-2.0", "Proprietary", "Custom",
}

// Suppliers is the pool of supplier organization names.
var Suppliers = []string{
	"Example Inc", "Open Source Foundation", "Tech Corp", "Community Project",
}

// Ecosystems maps each supported package ecosystem to a fixed list of
// package names taken from that ecosystem's most downloaded packages.
// Maven names are "group:artifact" pairs.
var Ecosystems = map[string][]string{
	"npm": {"react", "axios", "lodash", "express", "moment", "chalk", "redux", "vue", "webpack", "jquery"},
	"maven": {
		"org.springframework:spring-core", "com.fasterxml.jackson.core:jackson-databind",
		"org.apache.commons:commons-lang3", "org.hibernate:hibernate-core",
		"com.google.guava:guava", "junit:junit", "log4j:log4j", "ch.qos.logback:logback-classic",
	},
	"pypi": {
		"requests", "numpy", "pandas", "flask", "django", "pytest", "scikit-learn",
		"tensorflow", "sqlalchemy", "beautifulsoup4", "matplotlib", "pillow",
	},
	"golang": {
		"github.com/stretchr/testify", "github.com/gin-gonic/gin", "github.com/gorilla/mux",
		"github.com/spf13/cobra", "github.com/prometheus/client_golang", "go.uber.org/zap",
	},
	"nuget": {
		"Newtonsoft.Json", "Microsoft.AspNetCore", "Serilog", "AutoMapper",
		"Dapper", "Microsoft.EntityFrameworkCore", "xunit", "NLog",
	},
}

// ecosystemNames is the sorted key set of Ecosystems. Map iteration order
// is randomized by the runtime, so a sorted slice is required for seeded
// runs to be reproducible.
var ecosystemNames []string

func init() {
	ecosystemNames = make([]string, 0, len(Ecosystems))
	for name := range Ecosystems {
		ecosystemNames = append(ecosystemNames, name)
	}
	sort.Strings(ecosystemNames)
}

// EcosystemNames returns the supported ecosystem names in sorted order.
// Callers must not modify the returned slice.
func EcosystemNames() []string {
	return ecosystemNames
}

// CVETemplate describes one family of synthesized vulnerabilities. IDPrefix
// is completed with a random four-digit suffix; Description is completed
// with a component name and version.
type CVETemplate struct {
	IDPrefix    string
	Description string // fmt template: %s = component name, %s = version
	Severity    string
	ScoreMin    float64
	ScoreMax    float64
}

// CVETemplates is the pool of vulnerability shapes used when vulnerability
// injection is enabled. The IDs and scores are fabricated and never
// correspond to real advisories.
var CVETemplates = []CVETemplate{
	{"CVE-2021-", "Buffer overflow in %s versions before %s allows attackers to execute arbitrary code.", "HIGH", 7.0, 9.5},
	{"CVE-2022-", "Cross-site scripting vulnerability in %s version %s allows attackers to inject malicious code.", "MEDIUM", 4.0, 6.9},
	{"CVE-2023-", "Information disclosure in %s before %s allows attackers to access sensitive data.", "MEDIUM", 3.0, 6.5},
	{"CVE-2020-", "SQL injection vulnerability in %s version %s allows attackers to modify database queries.", "CRITICAL", 8.0, 10.0},
	{"CVE-2019-", "Denial of service vulnerability in %s affects versions %s and earlier.", "LOW", 2.0, 3.9},
}

// CommonPackages is the fallback name pool for "installed" components when
// no package catalog provider is available (or it comes up short).
var CommonPackages = []string{
	"requests", "numpy", "pandas", "matplotlib", "flask", "django", "sqlalchemy",
	"pytest", "pillow", "tensorflow", "torch", "boto3", "scikit-learn", "scipy",
	"beautifulsoup4", "pyyaml", "cryptography", "psycopg2", "fastapi", "aiohttp",
	"jinja2", "celery", "click", "pydantic", "pymongo", "redis", "marshmallow",
	"httpx", "attrs", "tqdm", "seaborn", "streamlit", "networkx", "nltk", "dash",
}

// CommonLicenses is the license pool for custom components in the
// catalog-driven mode. A strict SPDX-only subset of Licenses.
var CommonLicenses = []string{
	"MIT", "Apache-2.0", "GPL-3.0", "BSD-3-Clause", "LGPL-2.1",
	"MPL-2.0", "BSD-2-Clause", "AGPL-3.0", "ISC", "Unlicense", "CC0-1.0",
}
