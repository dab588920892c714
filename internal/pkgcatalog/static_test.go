package pkgcatalog

import (
	"context"
	"math/rand"
	"testing"

	"github.com/repo-posture/sbom-forge/internal/catalog"
)

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	p := NewStaticProvider(rand.New(rand.NewSource(1)))

	installed, err := p.ListInstalled(ctx)
	if err != nil {
		t.Fatalf("ListInstalled: %v", err)
	}
	if len(installed) != len(catalog.CommonPackages) {
		t.Fatalf("catalog size = %d, want %d", len(installed), len(catalog.CommonPackages))
	}

	for _, name := range catalog.CommonPackages {
		version, ok := installed[name]
		if !ok || version == "" {
			t.Errorf("package %q missing or without version", name)
			continue
		}
		info, err := p.Describe(ctx, name)
		if err != nil {
			t.Errorf("Describe(%q): %v", name, err)
			continue
		}
		if info.License == "" || info.Location == "" {
			t.Errorf("Describe(%q) = %+v, want license and location", name, info)
		}
	}

	if _, err := p.Describe(ctx, "no-such-package"); err == nil {
		t.Error("Describe of an unknown package must fail")
	}
}

func TestStaticProviderListCopies(t *testing.T) {
	ctx := context.Background()
	p := NewStaticProvider(rand.New(rand.NewSource(2)))

	first, _ := p.ListInstalled(ctx)
	for name := range first {
		delete(first, name)
	}
	second, _ := p.ListInstalled(ctx)
	if len(second) == 0 {
		t.Error("mutating a returned map must not affect the provider")
	}
}

func TestStaticProviderDeterminism(t *testing.T) {
	ctx := context.Background()
	a, _ := NewStaticProvider(rand.New(rand.NewSource(3))).ListInstalled(ctx)
	b, _ := NewStaticProvider(rand.New(rand.NewSource(3))).ListInstalled(ctx)

	for name, version := range a {
		if b[name] != version {
			t.Errorf("package %q: %q vs %q for the same seed", name, version, b[name])
		}
	}
}
