package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/osrmreader/internal/logger"
	"github.com/samcharles93/osrmreader/pkg/osrm"
)

var (
	logLevel      string
	logFormat     string
	debug         bool
	containerName string
	formatVersion int64
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

func readerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "container",
			Usage:       "container encoding (auto, sections, tar)",
			Value:       "auto",
			Destination: &containerName,
		},
		&cli.Int64Flag{
			Name:        "format-version",
			Usage:       "require this format version (0 accepts any supported version)",
			Destination: &formatVersion,
		},
	}
}

// readerOptions turns the reader flags into osrm options. The scan is traced
// through log at debug level.
func readerOptions(log logger.Logger) ([]osrm.Option, error) {
	kind, ok := osrm.ParseContainer(containerName)
	if !ok {
		return nil, fmt.Errorf("unknown container %q", containerName)
	}
	if formatVersion < 0 || formatVersion > math.MaxUint32 {
		return nil, fmt.Errorf("format version %d out of range", formatVersion)
	}
	return []osrm.Option{
		osrm.WithContainer(kind),
		osrm.WithVersion(uint32(formatVersion)),
		osrm.WithLogger(slog.New(logger.Handler(log))),
	}, nil
}

func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", cli.Exit(fmt.Sprintf("usage: %s %s %s", cmd.Root().Name, cmd.Name, cmd.ArgsUsage), 1)
	}
	return cmd.Args().First(), nil
}
