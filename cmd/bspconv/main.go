package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bspconv/internal/convert"
	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/internal/version"
)

func main() {
	app := &cli.Command{
		Name:      "bspconv",
		Usage:     "Convert rBSP maps to version 47",
		ArgsUsage: "[map.bsp [pack]]",
		Version:   version.String(),
		Flags:     loggingFlags(),
		Before:    setupLogging,
		// "bspconv <map> [anything]" converts one map; a second argument
		// selects packed output.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return cli.ShowAppHelp(cmd)
			}
			opts := convert.Options{Pack: cmd.NArg() > 1, Logger: logger.FromContext(ctx)}
			return runConvert(ctx, []string{cmd.Args().First()}, opts, false, "")
		},
		Commands: []*cli.Command{
			convertCmd(),
			entitiesCmd(),
			inspectCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
