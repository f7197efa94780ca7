package main

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/osrmreader/internal/geojson"
	"github.com/samcharles93/osrmreader/internal/logger"
	"github.com/samcharles93/osrmreader/pkg/osrm"
)

func geojsonCmd() *cli.Command {
	var (
		outPath    string
		limit      int64
		properties bool
	)

	return &cli.Command{
		Name:      "geojson",
		Usage:     "Convert the edges of a routing-graph file to GeoJSON line strings",
		ArgsUsage: "<file>",
		Flags: append(readerFlags(),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (- for stdout)",
				Value:       "-",
				Destination: &outPath,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "stop after this many features (0 for all)",
				Destination: &limit,
			},
			&cli.BoolFlag{
				Name:        "properties",
				Usage:       "add source, target and weight properties",
				Destination: &properties,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			if limit < 0 {
				return cli.Exit("limit must not be negative", 1)
			}
			applyReaderConfig(cmd, cfg)
			opts, err := readerOptions(log)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			f, err := osrm.Open(path, opts...)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer func() { _ = f.Close() }()

			entries, err := f.Entries()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			var w io.Writer = cmd.Root().Writer
			if outPath != "-" {
				out, err := os.Create(outPath)
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				defer func() { _ = out.Close() }()
				w = out
			}

			res, err := geojson.Convert(ctx, entries, w, geojson.Options{
				Limit:      int(limit),
				Properties: properties,
				Logger:     log,
			})
			if err != nil {
				if outPath != "-" {
					_ = os.Remove(outPath)
				}
				return cli.Exit(err.Error(), 1)
			}
			log.Info("geojson written", "features", res.Features, "nodes", res.Nodes, "skipped", res.Skipped)
			return nil
		},
	}
}
