package synth

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/chainguard-dev/clog/slogtest"
	"github.com/stretchr/testify/require"

	"github.com/repo-posture/sbom-forge/internal/model"
	"github.com/repo-posture/sbom-forge/internal/pkgcatalog"
)

type fakeProvider struct {
	installed map[string]string
	infos     map[string]pkgcatalog.PackageInfo
	listErr   error
}

func (f *fakeProvider) ListInstalled(context.Context) (map[string]string, error) {
	return f.installed, f.listErr
}

func (f *fakeProvider) Describe(_ context.Context, name string) (pkgcatalog.PackageInfo, error) {
	info, ok := f.infos[name]
	if !ok {
		return pkgcatalog.PackageInfo{}, errors.New("not found")
	}
	return info, nil
}

func TestResolveSpecs(t *testing.T) {
	ctx := slogtest.Context(t)
	provider := &fakeProvider{
		installed: map[string]string{"requests": "2.28.0"},
		infos:     map[string]pkgcatalog.PackageInfo{"requests": {License: "Apache-2.0", Location: "/site-packages/requests"}},
	}

	specs := []model.ComponentSpec{
		{Type: model.SpecInstalled, Name: "requests"},
		{Type: model.SpecInstalled, Name: "ghost-package"}, // lookup miss: skipped
		{Type: model.SpecCustom, Name: "custom-library-1", Version: "1.2.0", License: "MIT"},
		{Type: model.SpecCustom, Name: "custom-library-2"}, // missing version: skipped
	}

	comps, err := ResolveSpecs(ctx, rand.New(rand.NewSource(1)), provider, specs)
	require.NoError(t, err)
	require.Len(t, comps, 2)

	require.Equal(t, 0, comps[0].SequenceIndex)
	require.Equal(t, "requests", comps[0].Name)
	require.Equal(t, "2.28.0", comps[0].Version)
	require.Equal(t, "pkg:pypi/requests@2.28.0", comps[0].PURL)
	require.Equal(t, "Apache-2.0", comps[0].LicenseConcluded)

	require.Equal(t, 1, comps[1].SequenceIndex, "indices must stay dense after skips")
	require.Equal(t, "custom-library-1", comps[1].Name)
	require.Equal(t, "MIT", comps[1].LicenseDeclared)
}

func TestResolveSpecsProviderFailure(t *testing.T) {
	ctx := slogtest.Context(t)
	provider := &fakeProvider{listErr: errors.New("pip exploded")}

	specs := []model.ComponentSpec{{Type: model.SpecInstalled, Name: "requests"}}
	_, err := ResolveSpecs(ctx, rand.New(rand.NewSource(1)), provider, specs)
	require.ErrorContains(t, err, "pip exploded")
}

func TestResolveSpecsCustomOnlySkipsProvider(t *testing.T) {
	ctx := slogtest.Context(t)
	// A config without installed entries must never hit the provider.
	provider := &fakeProvider{listErr: errors.New("should not be called")}

	specs := []model.ComponentSpec{{Type: model.SpecCustom, Name: "lib", Version: "0.1.0"}}
	comps, err := ResolveSpecs(ctx, rand.New(rand.NewSource(1)), provider, specs)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	require.NotEmpty(t, comps[0].LicenseConcluded, "missing license must be filled from the pool")
}
