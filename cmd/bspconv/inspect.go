package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header and lump table of a map",
		ArgsUsage: "<map.bsp>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("inspect: exactly one map is required")
			}
			path := cmd.Args().First()
			bf, err := rbsp.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = bf.Close() }()
			return printSummary(os.Stdout, rbsp.Summarize(&bf.Header, int64(len(bf.Data))), asJSON)
		},
	}
}

func printSummary(w io.Writer, s rbsp.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	_, _ = fmt.Fprintf(w, "version:   %d\n", s.Version)
	_, _ = fmt.Fprintf(w, "flags:     %#x\n", s.Flags)
	_, _ = fmt.Fprintf(w, "last lump: %#x\n", s.LastLump)
	_, _ = fmt.Fprintf(w, "size:      %d\n", s.Size)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Index", "Name", "Offset", "Length", "Version", "Packed"})
	for _, l := range s.Lumps {
		tbl.Append([]string{
			fmt.Sprintf("%#04x", l.Index),
			l.Name,
			fmt.Sprintf("%#x", l.Offset),
			strconv.Itoa(int(l.Length)),
			strconv.Itoa(int(l.Version)),
			strconv.FormatBool(l.Packed),
		})
	}
	tbl.Render()
	return nil
}
