package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/marks/internal/config"
	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/playback"
	"github.com/vango-dev/marks/pkg/scatter"
	"github.com/vango-dev/marks/pkg/symbol"
	"github.com/vango-dev/marks/pkg/transition"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	config  string
	verbose bool
	noColor bool
	quiet   bool
}

// app bundles what a command needs after flags are parsed.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
}

func loadApp(opts *globalOptions) (*app, error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return nil, err
	}
	if cfg.Path() != "" {
		logger.Debug("config loaded", "path", cfg.Path())
	}

	return &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}, nil
}

// loadConfig accepts a file, a directory, or nothing (working directory).
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadOrDefault(".")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New("M101").WithLocation(path, 0).Wrap(err)
	}
	if info.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(path)
}

// newLine builds the scatter line described by the config. Animated lines
// get a transition scheduler; static renders apply positions immediately.
func (a *app) newLine(animated bool) (*scatter.Line[float64], error) {
	shape, err := symbol.ParseShape(a.cfg.Symbol.Shape)
	if err != nil {
		return nil, errors.New("M103").Wrap(err)
	}
	opts := []symbol.Option{
		symbol.WithShape(shape),
		symbol.WithSize(a.cfg.Symbol.Size),
		symbol.WithFill(a.cfg.Symbol.Fill),
	}
	if a.cfg.Symbol.Stroke != "" {
		opts = append(opts, symbol.WithStroke(a.cfg.Symbol.Stroke, 1))
	}
	sym := symbol.New[float64](opts...)

	lineOpts := []scatter.Option[float64]{
		scatter.WithLogger[float64](a.logger),
		scatter.WithMetrics[float64](scatter.NewMetrics(scatter.WithRegistry(a.registry))),
	}
	if animated {
		d, err := a.cfg.TransitionDuration()
		if err != nil {
			return nil, errors.New("M103").Wrap(err)
		}
		ease, _ := transition.EaseByName(a.cfg.Transition.Ease)
		lineOpts = append(lineOpts, scatter.WithScheduler[float64](
			transition.NewScheduler(transition.WithDuration(d), transition.WithEase(ease)),
		))
	}

	line := scatter.New(lineOpts...)
	if a.cfg.Label.Enabled {
		labelOpts := []symbol.LabelOption[float64]{}
		if a.cfg.Label.FontSize > 0 {
			labelOpts = append(labelOpts, symbol.WithFontSize[float64](a.cfg.Label.FontSize))
		}
		label := symbol.NewLabel(labelOpts...)
		line.SetPlot(&scatter.RendererSpec[float64]{
			Renderer: label,
			Plot:     scatter.Spec[float64](sym),
		})
		line.SetLayoutHeight(sym.LayoutHeight() + label.LayoutHeight())
	} else {
		line.SetRenderer(sym)
	}
	if a.cfg.LayoutHeight > 0 {
		line.SetLayoutHeight(a.cfg.LayoutHeight)
	}
	return line, nil
}

func (a *app) newPlayer(ds *dataset.Dataset, line *scatter.Line[float64]) *playback.Player {
	opts := []playback.Option{
		playback.WithWidth(a.cfg.Width),
		playback.WithBackground(a.cfg.Background),
		playback.WithLogger(a.logger),
	}
	if a.cfg.Title != "" {
		opts = append(opts, playback.WithTitle(a.cfg.Title))
	}
	return playback.New(ds, line, opts...)
}

// frameFile names the output for frame i: out.svg becomes out-003.svg.
func frameFile(out string, i int) string {
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), i, ext)
}
