package main

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/osrmreader/internal/inspect"
	"github.com/samcharles93/osrmreader/internal/logger"
	"github.com/samcharles93/osrmreader/pkg/osrm"
)

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "List the sections of a routing-graph file",
		ArgsUsage: "<file>",
		Flags: append(readerFlags(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the summary as JSON",
				Destination: &asJSON,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			applyReaderConfig(cmd, cfg)
			opts, err := readerOptions(log)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			f, err := osrm.Open(path, append(opts, osrm.WithUnknownSections(true))...)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer func() { _ = f.Close() }()

			sum, err := inspect.Summarize(f.Reader)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			log.Debug("inspected", "path", path, "sections", len(sum.Sections), "discarded", sum.Stats.Discarded)

			out := cmd.Root().Writer
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			return sum.Write(out)
		},
	}
}
