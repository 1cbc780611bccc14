// Package batch finds containers on disk and converts them one after
// another.
package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/samcharles93/bspconv/internal/convert"
	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// Ext is the container file extension.
const Ext = ".bsp"

// Converter is the part of convert.Converter a batch needs.
type Converter interface {
	ConvertFile(ctx context.Context, path string) (*convert.Report, error)
}

// Discover expands paths into the containers to convert. Files are taken
// as given; directories contribute their "*.bsp" entries, descending into
// subdirectories when recursive is set. The result is sorted and free of
// duplicates.
func Discover(paths []string, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, rbsp.WrapIO(err, "stat %s", root)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if isContainer(d.Name()) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, rbsp.WrapIO(err, "scan %s", root)
		}
	}
	sort.Strings(out)
	return out, nil
}

func isContainer(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}

// Result is the outcome of a batch.
type Result struct {
	Reports []*convert.Report
	Failed  int
}

// Run converts files in order. A failing file is logged and counted and
// the batch moves on; only cancellation stops it early.
func Run(ctx context.Context, c Converter, files []string, log logger.Logger) (Result, error) {
	var res Result
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		log.Info("converting file", "path", path, "n", i+1, "of", len(files))
		rep, err := c.ConvertFile(ctx, path)
		if rep != nil {
			res.Reports = append(res.Reports, rep)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return res, err
			}
			res.Failed++
			log.Error("failed to convert file", "path", path, "err", err)
			continue
		}
		if rep.Failed() {
			res.Failed++
		}
	}
	return res, nil
}
