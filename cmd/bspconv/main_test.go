package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/bspconv/internal/convert"
	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"pack: true",
		"recursive: false",
		"report: /tmp/run.json",
		"log_level: debug",
		"server_address: 0.0.0.0:9000",
	}, "\n")), 0o644))

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Pack)
	require.True(t, *cfg.Pack)
	require.NotNil(t, cfg.Recursive)
	require.False(t, *cfg.Recursive)
	require.Nil(t, cfg.FromContainer)
	require.Equal(t, "/tmp/run.json", cfg.Report)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "0.0.0.0:9000", cfg.ServerAddress)

	require.NoError(t, os.WriteFile(path, []byte("pack: [nope"), 0o644))
	_, err = loadConfigFile(path)
	require.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	h := rbsp.Header{Magic: rbsp.Magic, Version: 49, LastLump: 0x7F}
	h.Lumps[rbsp.LumpGameLump] = rbsp.Lump{Offset: rbsp.HeaderSize, Length: 28, Version: 1}
	s := rbsp.Summarize(&h, rbsp.HeaderSize+28)

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, s, false))
	require.Contains(t, buf.String(), "version:   49")
	require.Contains(t, buf.String(), "GAME_LUMP")
	require.Contains(t, buf.String(), "0x23")

	buf.Reset()
	require.NoError(t, printSummary(&buf, s, true))
	var got rbsp.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, s, got)
}

func TestRunConvertWritesReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := rbsp.Header{Magic: rbsp.Magic, Version: 47, LastLump: 0x7F}
	h.Lumps[rbsp.LumpPlanes] = rbsp.Lump{Offset: rbsp.HeaderSize, Length: 4}
	mapPath := filepath.Join(dir, "mp_box.bsp")
	require.NoError(t, os.WriteFile(mapPath, append(rbsp.EncodeHeader(h), "abcd"...), 0o644))
	require.NoError(t, os.WriteFile(rbsp.LumpPath(mapPath, rbsp.LumpPlanes), []byte("abcd"), 0o644))

	ctx := logger.WithContext(context.Background(), logger.Discard())
	reportPath := filepath.Join(dir, "report.json")
	require.NoError(t, runConvert(ctx, []string{dir}, convert.Options{Pack: true}, false, reportPath))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var reports []convert.Report
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 1)
	require.Equal(t, mapPath, reports[0].Input)
	require.True(t, reports[0].Packed)

	// The second run must not pick up the first run's output.
	require.NoError(t, runConvert(ctx, []string{dir}, convert.Options{}, false, ""))
	_, err = os.Stat(rbsp.NewPath(rbsp.NewPath(mapPath)))
	require.True(t, os.IsNotExist(err))
}
