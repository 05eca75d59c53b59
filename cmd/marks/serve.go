package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/live"
)

func serveCmd(g *globalOptions) *cobra.Command {
	var (
		port   int
		host   string
		watch  bool
		noLoop bool
		paused bool
	)

	cmd := &cobra.Command{
		Use:   "serve DATASET",
		Short: "Preview a dataset live in the browser",
		Long: `Serve plays a dataset in the browser. Frames advance on the configured
interval and marks animate between them; every change is streamed to
the page as a patch over WebSocket.

Features:
  • Reload on dataset change (--watch)
  • POST /frames to push new data
  • Prometheus metrics at /metrics

Examples:
  marks serve frames.yaml
  marks serve frames.yaml --port=8080 --watch
  marks serve frames.json --paused`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g)
			if err != nil {
				return err
			}
			if port > 0 {
				a.cfg.Server.Port = port
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			return runServe(cmd, a, args[0], watch, !noLoop, !paused)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the dataset when it changes")
	cmd.Flags().BoolVar(&noLoop, "no-loop", false, "Stop at the last frame")
	cmd.Flags().BoolVar(&paused, "paused", false, "Do not advance frames automatically")

	return cmd
}

func runServe(cmd *cobra.Command, a *app, datasetPath string, watch, loop, autoplay bool) error {
	ds, err := dataset.Load(datasetPath)
	if err != nil {
		return err
	}
	line, err := a.newLine(true)
	if err != nil {
		return err
	}
	interval, err := a.cfg.FrameInterval()
	if err != nil {
		return errors.New("M103").Wrap(err)
	}

	srv := live.New(a.newPlayer(ds, line),
		live.WithLogger(a.logger),
		live.WithRegistry(a.registry),
		live.WithConfig(live.Config{
			FPS:           a.cfg.Server.FPS,
			FrameInterval: interval,
			Autoplay:      autoplay,
			Loop:          loop,
			DatasetPath:   datasetPath,
			Watch:         watch,
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	success(cmd, "Serving %s at %s", datasetPath, a.cfg.ServerURL())
	if watch {
		info(cmd, "Watching %s for changes", datasetPath)
	}
	return srv.ListenAndServe(ctx, a.cfg.ServerAddress())
}
