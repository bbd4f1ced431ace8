package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnprune/internal/adapters/config"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/pnprune/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func newMonorepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), `
packages:
  - "apps/*"
  - "packages/**"
  - "!**/fixtures/**"
`)
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo", "devDependencies": {"turbo": "latest"}}`)
	writeFile(t, filepath.Join(root, "apps/web/package.json"), `{
  "name": "web",
  "version": "1.0.0",
  "dependencies": {"ui": "workspace:*", "next": "13.0.4"},
  "devDependencies": {"typescript": "^4.5.3"}
}`)
	writeFile(t, filepath.Join(root, "apps/docs/package.json"), `{"name": "docs", "dependencies": {"ui": "workspace:*"}}`)
	writeFile(t, filepath.Join(root, "packages/ui/package.json"), `{
  "name": "ui",
  "version": "0.0.0",
  "optionalDependencies": {"fsevents": "^2.3.2"}
}`)
	writeFile(t, filepath.Join(root, "packages/config/tsconfig/package.json"), `{"name": "tsconfig"}`)
	writeFile(t, filepath.Join(root, "packages/ui/fixtures/package.json"), `{"name": "ui-fixture"}`)
	writeFile(t, filepath.Join(root, "packages/ui/node_modules/react/package.json"), `{"name": "react"}`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "apps/empty"), domain.DirPerm))

	return root
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	root := newMonorepo(t)
	g, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, g.Root())

	var paths []string
	for w := range g.Walk() {
		paths = append(paths, w.Path)
	}
	assert.Equal(t, []string{".", "apps/docs", "apps/web", "packages/config/tsconfig", "packages/ui"}, paths)

	web, ok := g.Workspace("web")
	require.True(t, ok)
	assert.Equal(t, "apps/web", web.Path)
	assert.Equal(t, "1.0.0", web.Version)
	assert.Equal(t, map[string]string{"ui": "workspace:*", "next": "13.0.4"}, web.Dependencies)
	assert.Equal(t, map[string]string{"typescript": "^4.5.3"}, web.DevDependencies)

	root0, ok := g.Lookup(".")
	require.True(t, ok)
	assert.Equal(t, "monorepo", root0.Name)
	assert.True(t, root0.IsRoot())
}

func TestLoader_Load_NoWorkspaceFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "single"}`)

	g, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestLoader_Load_MissingRootManifest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("package.json missing at workspace root").Times(1)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages: []\n")

	g, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)

	w, ok := g.Lookup(".")
	require.True(t, ok)
	assert.Equal(t, ".", w.Name)
}

func TestLoader_Load_UnnamedWorkspace(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("package.json in packages/anon has no name, skipping").Times(1)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages: [packages/*]\n")
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo"}`)
	writeFile(t, filepath.Join(root, "packages/anon/package.json"), `{"version": "1.0.0"}`)

	g, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setup       func(t *testing.T, root string)
		errContains string
		metadata    map[string]any
	}{
		{
			name: "duplicate workspace name",
			setup: func(t *testing.T, root string) {
				t.Helper()
				writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages: [packages/*]\n")
				writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo"}`)
				writeFile(t, filepath.Join(root, "packages/a/package.json"), `{"name": "shared"}`)
				writeFile(t, filepath.Join(root, "packages/b/package.json"), `{"name": "shared"}`)
			},
			errContains: domain.ErrDuplicateWorkspaceName.Error(),
		},
		{
			name: "invalid package.json",
			setup: func(t *testing.T, root string) {
				t.Helper()
				writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages: [packages/*]\n")
				writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo"}`)
				writeFile(t, filepath.Join(root, "packages/a/package.json"), `{"name": `)
			},
			errContains: domain.ErrManifestParseFailed.Error(),
			metadata:    map[string]any{"directory": "packages/a"},
		},
		{
			name: "invalid workspace file",
			setup: func(t *testing.T, root string) {
				t.Helper()
				writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages: {a: [\n")
				writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo"}`)
			},
			errContains: domain.ErrConfigParseFailed.Error(),
			metadata:    map[string]any{"file": "pnpm-workspace.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

			root := t.TempDir()
			tt.setup(t, root)

			g, err := config.NewLoader(mockLogger).Load(root)
			require.Error(t, err)
			assert.Nil(t, g)
			require.ErrorContains(t, err, tt.errContains)

			if tt.metadata != nil {
				zErr, ok := err.(*zerr.Error)
				require.True(t, ok, "expected *zerr.Error, got %T", err)
				meta := zErr.Metadata()
				for k, v := range tt.metadata {
					assert.Equal(t, v, meta[k], "metadata %s", k)
				}
			}
		})
	}
}

func TestLoader_DiscoverRoot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	t.Run("workspace file wins over nearer lockfile", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages: [apps/*]\n")
		writeFile(t, filepath.Join(root, "apps/web/pnpm-lock.yaml"), "lockfileVersion: '6.0'\n")
		deep := filepath.Join(root, "apps/web/src/components")
		require.NoError(t, os.MkdirAll(deep, domain.DirPerm))

		found, err := loader.DiscoverRoot(deep)
		require.NoError(t, err)
		assert.Equal(t, root, found)
	})

	t.Run("falls back to nearest lockfile", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pnpm-lock.yaml"), "lockfileVersion: '6.0'\n")
		deep := filepath.Join(root, "src")
		require.NoError(t, os.MkdirAll(deep, domain.DirPerm))

		found, err := loader.DiscoverRoot(deep)
		require.NoError(t, err)
		assert.Equal(t, root, found)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := loader.DiscoverRoot(dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrWorkspaceRootNotFound.Error())
	})
}

func TestLoader_LoadSettings(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		settings, err := loader.LoadSettings(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, ports.Settings{}, settings)
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pnprune.yaml"), `
outDir: dist/pruned
lockfile: pnpm-lock.yaml
docker: true
production: true
cache: false
`)
		settings, err := loader.LoadSettings(root)
		require.NoError(t, err)
		assert.Equal(t, ports.Settings{
			OutDir:     "dist/pruned",
			Lockfile:   "pnpm-lock.yaml",
			Docker:     true,
			Production: true,
			NoCache:    true,
		}, settings)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pnprune.yaml"), "docker: [\n")
		_, err := loader.LoadSettings(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})
}
