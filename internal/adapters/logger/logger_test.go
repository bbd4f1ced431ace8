package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnprune/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{name: "simple message", msg: "some message", goldenName: "info_basic"},
		{name: "multiline message", msg: "line1\nline2", goldenName: "info_multiline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("package.json missing at workspace root")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Debug(t *testing.T) {
	t.Run("hidden by default", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Debug("dependency not found in lockfile")

		assert.Empty(t, buf.String())
	})

	t.Run("shown when verbose", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.SetVerbose(true)
		lg.Debug("dependency not found in lockfile")

		g := goldie.New(t)
		g.Assert(t, "debug_verbose", buf.Bytes())
	})

	t.Run("verbose survives format switch", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.SetVerbose(true)
		lg.SetJSON(true)
		lg.Debug("resolving")

		assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	})

	t.Run("verbose can be turned off", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.SetVerbose(true)
		lg.SetVerbose(false)
		lg.Debug("resolving")

		assert.Empty(t, buf.String())
	})
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 30: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(fs.ErrNotExist, "failed to read lockfile"),
				"failed to prune lockfile",
			),
			goldenName: "error_chain_zerr",
		},
		{
			name: "stdlib chain",
			err: fmt.Errorf("failed to prune: %w",
				fmt.Errorf("failed to read lockfile: %w", errors.New("connection refused"))),
			goldenName: "error_chain_stdlib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_WithMetadata(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name: "metadata on main error",
			err: zerr.With(
				zerr.Wrap(fs.ErrNotExist, "failed to read lockfile"),
				"path", "pnpm-lock.yaml",
			),
			goldenName: "error_metadata_main",
		},
		{
			name: "metadata on every level",
			err: func() error {
				inner := zerr.With(zerr.New("package not found in lockfile"), "key", "/is-odd/3.0.1")
				outer := zerr.Wrap(inner, "failed to prune lockfile")
				return zerr.With(outer, "workspace", "apps/web")
			}(),
			goldenName: "error_metadata_partial",
		},
		{
			name: "sorted metadata keys",
			err: func() error {
				err := zerr.New("invalid dependency key")
				err = zerr.With(err, "reason", "unbalanced parentheses")
				return zerr.With(err, "key", "/foo/1.0.0_(")
			}(),
			goldenName: "error_metadata_sorted",
		},
		{
			name:       "metadata on standard error",
			err:        zerr.With(os.ErrPermission, "directory", "apps/web"),
			goldenName: "error_metadata_stdlib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.Wrap(errors.New("connection refused"), "failed to read lockfile"), "path", "pnpm-lock.yaml"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error"`)
	assert.Contains(t, out, "failed to read lockfile")
	assert.Contains(t, out, "pnpm-lock.yaml")
	assert.NotContains(t, out, "✗")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("pretty"))
	pretty := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("json"))
	jsonOut := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))
	prettyAgain := buf.String()

	assert.Contains(t, pretty, "✗")
	assert.Contains(t, jsonOut, `"error":"json"`)
	assert.NotContains(t, jsonOut, "✗")
	assert.Contains(t, prettyAgain, "✗ Error: pretty again")
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch i % 4 {
			case 0:
				lg.Info("concurrent info")
			case 1:
				lg.Warn("concurrent warn")
			case 2:
				lg.SetJSON(i%8 == 2)
			default:
				lg.SetVerbose(true)
				lg.Debug("concurrent debug")
			}
		}()
	}
	wg.Wait()
}
