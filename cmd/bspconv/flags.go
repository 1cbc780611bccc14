package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bspconv/internal/logger"
)

var (
	logLevel  string
	logFormat string
	debug     bool

	// cfg is loaded once before any command runs.
	cfg Config
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// setupLogging loads the config file and installs the logger in ctx.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg = LoadConfig()
	applyLogConfig(cmd, cfg)
	level := logLevel
	if debug {
		level = "debug"
	}
	return logger.WithContext(ctx, logger.Open(os.Stderr, logFormat, level)), nil
}
