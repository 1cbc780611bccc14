package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bspconv/internal/batch"
	"github.com/samcharles93/bspconv/internal/convert"
	"github.com/samcharles93/bspconv/internal/logger"
)

func convertCmd() *cli.Command {
	var (
		pack          bool
		fromContainer bool
		recursive     bool
		reportPath    string
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert maps, or directories of maps, to version 47",
		ArgsUsage: "<map.bsp|dir>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pack",
				Aliases:     []string{"p"},
				Usage:       "write lump payloads into the output map instead of .new lump files",
				Destination: &pack,
			},
			&cli.BoolFlag{
				Name:        "from-container",
				Usage:       "read lump payloads from the map itself (requires --pack)",
				Destination: &fromContainer,
			},
			&cli.BoolFlag{
				Name:        "recursive",
				Aliases:     []string{"r"},
				Usage:       "descend into subdirectories",
				Destination: &recursive,
			},
			&cli.StringFlag{
				Name:        "report",
				Usage:       "write a JSON run report to this path",
				Destination: &reportPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errors.New("convert: at least one map or directory is required")
			}
			applyConvertConfig(cmd, cfg, &pack, &fromContainer, &recursive, &reportPath)
			opts := convert.Options{
				Pack:          pack,
				FromContainer: fromContainer,
				Logger:        logger.FromContext(ctx),
			}
			return runConvert(ctx, cmd.Args().Slice(), opts, recursive, reportPath)
		},
	}
}

func runConvert(ctx context.Context, paths []string, opts convert.Options, recursive bool, reportPath string) error {
	log := logger.FromContext(ctx)
	conv, err := convert.New(opts)
	if err != nil {
		return err
	}
	files, err := batch.Discover(paths, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Newf("no maps found in %v", paths)
	}

	res, runErr := batch.Run(ctx, conv, files, log)
	if reportPath != "" {
		if err := writeReportFile(reportPath, res.Reports); err != nil {
			return err
		}
		log.Info("wrote report", "path", reportPath)
	}
	if runErr != nil {
		return runErr
	}
	if res.Failed > 0 {
		return errors.Newf("%d of %d maps had failures", res.Failed, len(files))
	}
	return nil
}

func writeReportFile(path string, reports []*convert.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	if err := convert.WriteReports(f, reports); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write report")
	}
	return f.Close()
}
