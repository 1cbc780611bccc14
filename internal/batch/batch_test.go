package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samcharles93/bspconv/internal/convert"
	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.bsp"))
	touch(t, filepath.Join(dir, "a.BSP"))
	touch(t, filepath.Join(dir, "a.bsp.new"))
	touch(t, filepath.Join(dir, "a.bsp.0000.bsp_lump"))
	touch(t, filepath.Join(dir, "sub", "c.bsp"))
	other := filepath.Join(t.TempDir(), "other.map")
	touch(t, other)

	got, err := Discover([]string{dir, other}, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{filepath.Join(dir, "a.BSP"), filepath.Join(dir, "b.bsp"), other}, got)

	got, err = Discover([]string{dir, filepath.Join(dir, "b.bsp")}, true)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.BSP"),
		filepath.Join(dir, "b.bsp"),
		filepath.Join(dir, "sub", "c.bsp"),
	}, got)

	_, err = Discover([]string{filepath.Join(dir, "nope")}, false)
	require.True(t, rbsp.IsIO(err))
}

type fakeConverter struct {
	fail  map[string]error
	calls []string
}

func (f *fakeConverter) ConvertFile(_ context.Context, path string) (*convert.Report, error) {
	f.calls = append(f.calls, path)
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	return &convert.Report{Input: path}, nil
}

func TestRunContinuesPastFailures(t *testing.T) {
	t.Parallel()

	fc := &fakeConverter{fail: map[string]error{"b.bsp": rbsp.DataErrorf("boom")}}
	res, err := Run(context.Background(), fc, []string{"a.bsp", "b.bsp", "c.bsp"}, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, []string{"a.bsp", "b.bsp", "c.bsp"}, fc.calls)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Reports, 2)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc := &fakeConverter{}
	_, err := Run(ctx, fc, []string{"a.bsp"}, logger.Discard())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, fc.calls)
}
