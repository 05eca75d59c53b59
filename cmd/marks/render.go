package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/publish"
	"github.com/vango-dev/marks/pkg/raster"
)

func renderCmd(g *globalOptions) *cobra.Command {
	var (
		output string
		every  bool
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "render DATASET",
		Short: "Render a dataset to SVG or PNG",
		Long: `Render plays every frame of a dataset through the reconciler and
writes the final chart. With --every, one file per frame is written
instead, numbered after the output name.

The output format follows the file extension (.svg or .png).

Examples:
  marks render frames.yaml -o chart.svg
  marks render frames.json -o chart.png --scale 2
  marks render frames.yaml -o out/frame.svg --every`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, args[0], output, every, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "chart.svg", "Output file (.svg or .png)")
	cmd.Flags().BoolVar(&every, "every", false, "Write one file per frame")
	cmd.Flags().Float64Var(&scale, "scale", 1, "PNG pixel density")

	return cmd
}

func formatOf(path string) (publish.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return publish.SVG, nil
	case ".png":
		return publish.PNG, nil
	}
	return "", errors.New("M303").WithLocation(path, 0)
}

func runRender(cmd *cobra.Command, g *globalOptions, datasetPath, output string, every bool, scale float64) error {
	a, err := loadApp(g)
	if err != nil {
		return err
	}
	format, err := formatOf(output)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(datasetPath)
	if err != nil {
		return err
	}
	line, err := a.newLine(false)
	if err != nil {
		return err
	}
	player := a.newPlayer(ds, line)

	painter := raster.NewPainter()
	painter.Scale = scale
	painter.Background = a.cfg.Background
	pub := publish.NewPublisher(nil).WithPainter(painter)

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.New("M301").WithLocation(dir, 0).Wrap(err)
		}
	}

	write := func(path string) error {
		body, err := pub.Encode(player.Chart(), format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, body, 0644); err != nil {
			return errors.FromError(err, "M301").WithLocation(path, 0)
		}
		return nil
	}

	ctx := context.Background()
	for player.Next(ctx, false) {
		if every {
			path := frameFile(output, player.Frame())
			if err := write(path); err != nil {
				return err
			}
			info(cmd, "%s", path)
		}
	}
	if every {
		success(cmd, "Rendered %d frames", player.Len())
		return nil
	}

	if err := write(output); err != nil {
		return err
	}
	success(cmd, "Rendered %s (%d frames)", output, player.Len())
	return nil
}
