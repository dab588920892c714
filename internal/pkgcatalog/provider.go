// Package pkgcatalog defines the package catalog collaborator the
// catalog-driven generation mode consumes: something that can list
// installed packages and describe one of them. The pip-backed
// implementation shells out; the static one serves fixed tables and is
// the fallback when no real package manager is available.
package pkgcatalog

import "context"

// PackageInfo is the metadata Describe returns for one package.
type PackageInfo struct {
	License  string
	Location string
}

// Provider exposes an installed-package catalog.
type Provider interface {
	// ListInstalled returns a name → version mapping of installed packages.
	ListInstalled(ctx context.Context) (map[string]string, error)

	// Describe returns license and install location for a single package.
	Describe(ctx context.Context, name string) (PackageInfo, error)
}
