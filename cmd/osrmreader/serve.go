package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/osrmreader/internal/logger"
	"github.com/samcharles93/osrmreader/internal/server"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve summary, GeoJSON and metrics for one file over HTTP",
		ArgsUsage: "<file>",
		Flags: append(readerFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			applyServeConfig(cmd, cfg, &addr)
			opts, err := readerOptions(log)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.New(path, log, opts...).Register(e)

			log.Info("starting server", "address", addr, "file", path)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
