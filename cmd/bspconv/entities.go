package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bspconv/internal/convert"
	"github.com/samcharles93/bspconv/internal/logger"
)

func entitiesCmd() *cli.Command {
	var noHeader bool

	return &cli.Command{
		Name:      "entities",
		Usage:     "Convert standalone entity partition files",
		ArgsUsage: "<file.ent>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "no-header",
				Usage:       "files have no ENTITIES header line",
				Destination: &noHeader,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errors.New("entities: at least one file is required")
			}
			log := logger.FromContext(ctx)
			failed := 0
			for _, path := range cmd.Args().Slice() {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				n, err := convert.ConvertPartitionFile(path, !noHeader)
				if err != nil {
					log.Error("failed to convert entity partition", "path", path, "err", err)
					failed++
					continue
				}
				log.Info("converted entity partition", "path", path, "brush_models", n)
			}
			if failed > 0 {
				return errors.Newf("%d of %d files failed", failed, cmd.NArg())
			}
			return nil
		},
	}
}
