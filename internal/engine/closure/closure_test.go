package closure_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnprune/internal/adapters/pnpm"
	"go.trai.ch/pnprune/internal/adapters/telemetry"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/pnprune/internal/core/ports/mocks"
	"go.trai.ch/pnprune/internal/engine/closure"
	"go.uber.org/mock/gomock"
)

func loadFixture(t *testing.T, name string) *pnpm.Lockfile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "adapters", "pnpm", "testdata", name))
	require.NoError(t, err)
	lockfile, err := pnpm.DecodeLockfile(data)
	require.NoError(t, err)
	return lockfile
}

func newEngine(t *testing.T) *closure.Engine {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return closure.New(logger, telemetry.NewNoOpTracer())
}

var (
	root = domain.Workspace{
		Name:            "monorepo",
		Path:            domain.RootImporter,
		DevDependencies: map[string]string{"turbo": "^1.10.3"},
	}
	workspaceA = domain.Workspace{
		Name: "a",
		Path: "packages/a",
		Dependencies: map[string]string{
			"b":      "workspace:*",
			"c":      "workspace:*",
			"is-odd": "^3.0.1",
		},
	}
	workspaceB = domain.Workspace{
		Name: "b",
		Path: "packages/b",
		Dependencies: map[string]string{
			"c":       "workspace:*",
			"is-even": "^1.0.0",
		},
	}
	workspaceC = domain.Workspace{
		Name:         "c",
		Path:         "packages/c",
		Dependencies: map[string]string{"lodash": "^4.17.21"},
	}
)

func TestEngine_Closure(t *testing.T) {
	lockfile := loadFixture(t, "pnpm8.yaml")

	tests := []struct {
		name       string
		workspaces []domain.Workspace
		opts       closure.Options
		want       []string
	}{
		{
			name:       "single workspace",
			workspaces: []domain.Workspace{workspaceA},
			want:       []string{"/is-number@6.0.0", "/is-odd@3.0.1"},
		},
		{
			name:       "transitive chain",
			workspaces: []domain.Workspace{workspaceB},
			want: []string{
				"/is-buffer@1.1.6",
				"/is-even@1.0.0",
				"/is-number@3.0.0",
				"/is-odd@0.1.2",
				"/kind-of@3.2.2",
			},
		},
		{
			name:       "root follows optional dependencies",
			workspaces: []domain.Workspace{root},
			want:       []string{"/turbo-darwin-64@1.10.3", "/turbo@1.10.3"},
		},
		{
			name:       "production skips dev dependencies",
			workspaces: []domain.Workspace{root},
			opts:       closure.Options{Production: true},
			want:       []string{},
		},
		{
			name:       "union of workspaces",
			workspaces: []domain.Workspace{workspaceA, workspaceC},
			want:       []string{"/is-number@6.0.0", "/is-odd@3.0.1", "/lodash@4.17.21"},
		},
		{
			name:       "no workspaces",
			workspaces: nil,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(t).Closure(context.Background(), lockfile, tt.workspaces, tt.opts)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
			assert.IsNonDecreasing(t, got)
		})
	}
}

func TestEngine_Closure_UnknownWorkspace(t *testing.T) {
	lockfile := loadFixture(t, "pnpm8.yaml")
	ws := domain.Workspace{
		Name:         "ghost",
		Path:         "packages/ghost",
		Dependencies: map[string]string{"is-odd": "^3.0.1"},
	}

	_, err := newEngine(t).Closure(context.Background(), lockfile, []domain.Workspace{ws}, closure.Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrClosureFailed.Error())
	assert.ErrorContains(t, err, domain.ErrMissingWorkspace.Error())
}

func TestEngine_Closure_Canceled(t *testing.T) {
	lockfile := loadFixture(t, "pnpm8.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t).Closure(ctx, lockfile, []domain.Workspace{workspaceA}, closure.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Closure_MissingDependencyIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	lockfile := mocks.NewMockLockfile(ctrl)

	ws := domain.Workspace{
		Name: "web",
		Path: "apps/web",
		Dependencies: map[string]string{
			"react": "^18.2.0",
			"ui":    "workspace:^",
		},
	}
	react := domain.Package{Key: "/react@18.2.0", Version: "18.2.0", Found: true}

	lockfile.EXPECT().ResolvePackage("apps/web", "react", "^18.2.0").Return(react, nil)
	lockfile.EXPECT().AllDependencies("/react@18.2.0").Return(map[string]string{"loose-envify": "1.4.0"}, true)
	lockfile.EXPECT().LookupPackage("loose-envify", "1.4.0").Return(domain.NotFound)
	logger.EXPECT().Debug("apps/web: loose-envify@1.4.0 required by /react@18.2.0 is not in the lockfile")

	engine := closure.New(logger, telemetry.NewNoOpTracer())
	got, err := engine.Closure(context.Background(), lockfile, []domain.Workspace{ws}, closure.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/react@18.2.0"}, got)
}

func TestEngine_Closure_Tracing(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	lockfile := loadFixture(t, "pnpm8.yaml")

	tracer.EXPECT().Start(gomock.Any(), "Computing closure", gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		})
	tracer.EXPECT().Start(gomock.Any(), "packages/a", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		})
	span.EXPECT().SetAttribute("pnprune.packages", 2).Times(2)
	span.EXPECT().End().Times(2)

	engine := closure.New(logger, tracer)
	_, err := engine.Closure(context.Background(), lockfile, []domain.Workspace{workspaceA}, closure.Options{})
	require.NoError(t, err)
}
