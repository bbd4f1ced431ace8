package pnpm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnprune/internal/adapters/pnpm"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestPrune_LegacyPatches(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm-patch.yaml")
	pruned, err := lockfile.Prune([]string{"packages/a"}, []string{
		"/is-odd/3.0.1_nrrwwz7lemethtlvvm75r5bmhq",
		"/is-number/6.0.0",
		"/@babel/core/7.20.12_3hyn7hbvzkemudbydlwjmrb65y",
		"/moleculer/0.14.28_5pk7ojv7qbqha75ozglk4y4f74_kumip57h7zlinbhp4gz3jrbqry",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"patches/@babel__core@7.20.12.patch",
		"patches/is-odd@3.0.1.patch",
		"patches/moleculer@0.14.28.patch",
	}, pruned.Patches())
	assert.ElementsMatch(t, []string{".", "packages/a"}, domain.SortedKeys(pruned.Importers))
	assert.Len(t, pruned.Packages, 4)
}

func TestPrune_ModernPatches(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm-patch-v6.yaml")
	pruned, err := lockfile.Prune([]string{"packages/a"}, []string{
		"/lodash@4.17.21(patch_hash=lgum37zgng4nfkynzh3cs7wdeq)",
		"/@babel/helper-string-parser@7.19.4(patch_hash=wjhgmpzh47qmycrzgpeyoyh3ce)(@babel/core@7.21.0)",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"patches/@babel__helper-string-parser@7.19.4.patch",
		"patches/lodash@4.17.21.patch",
	}, pruned.Patches())
}

func TestPrune_PatchHashMismatch(t *testing.T) {
	t.Parallel()

	lockfile, err := pnpm.DecodeLockfile([]byte(`lockfileVersion: '6.0'
patchedDependencies:
  lodash@4.17.21:
    hash: aaaaaaaaaaaaaaaaaaaaaaaaaa
    path: patches/lodash@4.17.21.patch
importers:
  .: {}
packages:
  /lodash@4.17.21(patch_hash=bbbbbbbbbbbbbbbbbbbbbbbbbb):
    resolution: {integrity: sha512-lodash}
`))
	require.NoError(t, err)

	pruned, err := lockfile.Prune(nil, []string{"/lodash@4.17.21(patch_hash=bbbbbbbbbbbbbbbbbbbbbbbbbb)"})
	require.NoError(t, err)
	assert.Nil(t, pruned.PatchedDependencies)
	assert.Empty(t, pruned.Patches())
}

func TestPrune_IsRestrictive(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm7-workspace.yaml")
	requested := []string{"/react/17.0.2", "/loose-envify/1.4.0", "/js-tokens/4.0.0", "/object-assign/4.1.1"}

	pruned, err := lockfile.Prune([]string{"packages/ui", "apps/missing"}, requested)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{".", "packages/ui"}, domain.SortedKeys(pruned.Importers))
	assert.ElementsMatch(t, requested, domain.SortedKeys(pruned.Packages))
	assert.Equal(t, lockfile.LockfileVersion, pruned.LockfileVersion)
	assert.Equal(t, lockfile.Importers["packages/ui"], pruned.Importers["packages/ui"])
	assert.Equal(t, lockfile.Packages["/react/17.0.2"], pruned.Packages["/react/17.0.2"])
}

func TestPrune_IsIdempotent(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm-patch.yaml")
	workspaces := []string{"packages/a"}
	packages := []string{"/is-odd/3.0.1_nrrwwz7lemethtlvvm75r5bmhq", "/is-number/6.0.0"}

	first, err := lockfile.Prune(workspaces, packages)
	require.NoError(t, err)
	second, err := first.Prune(workspaces, packages)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPrune_InjectedDependency(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm-injected.yaml")
	require.NotEmpty(t, lockfile.Time)

	pruned, err := lockfile.Prune([]string{"apps/web"}, []string{"/react@18.2.0", "/loose-envify@1.4.0"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"/loose-envify@1.4.0",
		"/react@18.2.0",
		"file:packages/ui(react@18.2.0)",
	}, domain.SortedKeys(pruned.Packages))
	assert.Nil(t, pruned.Time)
}

func TestPrune_UnresolvedInjectedDependency(t *testing.T) {
	t.Parallel()

	lockfile, err := pnpm.DecodeLockfile([]byte(`lockfileVersion: '6.0'
importers:
  .: {}
  apps/web:
    dependenciesMeta:
      ui:
        injected: true
packages:
  /react@18.2.0:
    resolution: {integrity: sha512-react}
`))
	require.NoError(t, err)

	pruned, err := lockfile.Prune([]string{"apps/web"}, []string{"/react@18.2.0"})
	require.Error(t, err)
	assert.Nil(t, pruned)
	assert.ErrorContains(t, err, domain.ErrUnresolvedInjectedDependency.Error())
}

func TestPrune_InjectedDependencyWithoutPackage(t *testing.T) {
	t.Parallel()

	lockfile, err := pnpm.DecodeLockfile([]byte(`lockfileVersion: '6.0'
importers:
  .: {}
  apps/web:
    dependencies:
      ui:
        specifier: workspace:*
        version: file:packages/ui
    dependenciesMeta:
      ui:
        injected: true
`))
	require.NoError(t, err)

	pruned, err := lockfile.Prune([]string{"apps/web"}, nil)
	require.Error(t, err)
	assert.Nil(t, pruned)
	assert.ErrorContains(t, err, domain.ErrMissingPackage.Error())
}

func TestPrune_MissingPackage(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm8.yaml")
	pruned, err := lockfile.Prune([]string{"packages/a"}, []string{"/is-odd@3.0.1", "/left-pad@1.3.0"})
	require.Error(t, err)
	assert.Nil(t, pruned)
	assert.ErrorContains(t, err, domain.ErrMissingPackage.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "/left-pad@1.3.0", zErr.Metadata()["key"])
}

func TestPrune_EmptyPackagesAreOmitted(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm8.yaml")
	pruned, err := lockfile.Prune([]string{"packages/c"}, nil)
	require.NoError(t, err)
	assert.Nil(t, pruned.Packages)

	out, err := pruned.Bytes()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "packages:")

	reparsed, err := pnpm.DecodeLockfile(out)
	require.NoError(t, err)
	assert.Equal(t, pruned, reparsed)
}

func TestPrune_SharesNoState(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm-override.yaml")
	key := "/hardhat-deploy-ethers/0.3.0-beta.13_yab2ug5tvye2kp6e24l5x3z7uy"

	pruned, err := lockfile.Prune([]string{"config/hardhat"}, []string{key, "/ethers/5.7.2"})
	require.NoError(t, err)

	pruned.Overrides["lodash"] = "1.0.0"
	pruned.Packages[key].Dependencies["ethers"] = "6.0.0"
	pruned.Packages[key].Other["peerDependencies"].(map[string]any)["hardhat"] = "*"
	legacy, ok := pruned.Importers["config/hardhat"].Dependencies.(*pnpm.LegacyDependencies)
	require.True(t, ok)
	legacy.Specifiers["ethers"] = "^6.0.0"

	assert.NotContains(t, lockfile.Overrides, "lodash")
	assert.Equal(t, "5.7.2", lockfile.Packages[key].Dependencies["ethers"])
	assert.Equal(t, "^2.0.0", lockfile.Packages[key].Other["peerDependencies"].(map[string]any)["hardhat"])
	specifier, version, found := lockfile.Importers["config/hardhat"].Dependencies.FindResolution("ethers")
	require.True(t, found)
	assert.Equal(t, "^5.7.2", specifier)
	assert.Equal(t, "5.7.2", version)
}

func TestSubgraph_ReturnsLockfile(t *testing.T) {
	t.Parallel()

	lockfile := loadFixture(t, "pnpm-override.yaml")
	sub, err := lockfile.Subgraph([]string{"config/hardhat"}, []string{"/ethers/5.7.2"})
	require.NoError(t, err)

	pruned, ok := sub.(*pnpm.Lockfile)
	require.True(t, ok)
	assert.Equal(t, lockfile.Overrides, pruned.Overrides)
	assert.False(t, lockfile.GlobalChange(sub))

	sub, err = lockfile.Subgraph(nil, []string{"/missing/1.0.0"})
	require.Error(t, err)
	assert.Nil(t, sub)
}
