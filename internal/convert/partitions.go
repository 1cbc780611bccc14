package convert

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/brushmodel"
	"github.com/samcharles93/bspconv/pkg/entities"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// ConvertPartitionFile migrates the brush models of one standalone
// partition and writes the result next to it with the ".new" suffix.
// It returns the number of migrated brush models.
func ConvertPartitionFile(path string, expectHeader bool) (int, error) {
	p, err := entities.ReadFile(path, expectHeader)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", path)
	}
	n, err := brushmodel.MigratePartition(p)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", path)
	}
	if err := entities.WriteFile(rbsp.NewPath(path), p); err != nil {
		return n, err
	}
	return n, nil
}

// partitionTable loads the ENTITY_PARTITIONS lump of the container.
func (c *Converter) partitionTable(bspPath string, data []byte, h *rbsp.Header) ([]byte, error) {
	if c.opts.FromContainer {
		region, ok := rbsp.Region(data, h.Lumps[rbsp.LumpEntityPartitions])
		if !ok {
			return nil, rbsp.FormatErrorf("entity partition lump is outside the container")
		}
		return region, nil
	}
	table, err := os.ReadFile(rbsp.LumpPath(bspPath, rbsp.LumpEntityPartitions))
	if err != nil {
		return nil, rbsp.WrapIO(err, "read entity partition lump")
	}
	return table, nil
}

// convertPartitions converts every standalone partition the container
// lists. A partition that fails is reported and the rest still run.
func (c *Converter) convertPartitions(ctx context.Context, bspPath string, data []byte, h *rbsp.Header, log logger.Logger) []PartitionReport {
	table, err := c.partitionTable(bspPath, data, h)
	if err != nil {
		log.Warn("failed to load entity partition lump", "err", err)
		return nil
	}
	names, err := entities.ParsePartitionTable(table)
	if err != nil {
		log.Error("failed to parse entity partition lump", "err", err)
		return nil
	}

	reports := make([]PartitionReport, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		path := rbsp.PartitionPath(bspPath, name)
		pr := PartitionReport{Name: name, Path: path}
		n, err := ConvertPartitionFile(path, true)
		if err != nil {
			log.Error("failed to convert entity partition", "partition", name, "err", err)
			pr.Error = err.Error()
		} else {
			pr.Output = rbsp.NewPath(path)
			pr.BrushModels = n
			log.Info("converted entity partition", "partition", name, "brush_models", n)
		}
		reports = append(reports, pr)
	}
	return reports
}
