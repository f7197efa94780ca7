package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/osrmreader/internal/logger"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "osrmreader",
		Usage: "Read OSRM routing-graph files",
		Flags: loggingFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			c, err := loadConfig(configPath())
			if err != nil {
				return ctx, cli.Exit(err.Error(), 1)
			}
			cfg = c
			applyLoggingConfig(cmd, cfg)

			level := logger.ParseLevel(logLevel)
			if debug {
				level = logger.ParseLevel("debug")
			}
			log, err := logger.Build(logFormat, level, cmd.Root().ErrWriter)
			if err != nil {
				return ctx, cli.Exit(err.Error(), 1)
			}
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			geojsonCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}
