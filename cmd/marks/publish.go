package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/publish"
)

func publishCmd(g *globalOptions) *cobra.Command {
	var (
		name    string
		dir     string
		bucket  string
		prefix  string
		formats []string
		every   bool
	)

	cmd := &cobra.Command{
		Use:   "publish DATASET",
		Short: "Publish rendered snapshots to a directory or S3",
		Long: `Publish renders the final frame of a dataset (or every frame with
--every) and stores the result. A bucket publishes to S3 using the
AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables;
otherwise files are written to a local directory.

Examples:
  marks publish frames.yaml --dir site/charts
  marks publish frames.yaml --bucket charts --prefix nightly/
  marks publish frames.yaml --format svg --every`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g)
			if err != nil {
				return err
			}
			if dir != "" {
				a.cfg.Publish.Dir = dir
			}
			if bucket != "" {
				a.cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				a.cfg.Publish.Prefix = prefix
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			return runPublish(cmd, a, args[0], name, formats, every)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Snapshot name (default: dataset file name)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Local output directory")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "S3 key prefix")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"svg", "png"}, "Formats to publish")
	cmd.Flags().BoolVar(&every, "every", false, "Publish one snapshot per frame")

	return cmd
}

func (a *app) newStore() (publish.Store, error) {
	p := a.cfg.Publish
	switch {
	case p.Bucket != "":
		client := publish.NewS3Client(p.Region, p.Endpoint)
		return publish.NewS3Store(client, p.Bucket, p.Prefix), nil
	case p.Dir != "":
		store, err := publish.NewFileStore(p.Dir)
		if err != nil {
			return nil, errors.New("M401").WithLocation(p.Dir, 0).Wrap(err)
		}
		return store, nil
	}
	return nil, errors.New("M402").WithSuggestion("Pass --dir or --bucket")
}

func runPublish(cmd *cobra.Command, a *app, datasetPath, name string, formats []string, every bool) error {
	store, err := a.newStore()
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

	fs := make([]publish.Format, len(formats))
	for i, f := range formats {
		fs[i] = publish.Format(strings.ToLower(f))
	}
	pub := publish.NewPublisher(store).WithFormats(fs...)

	ctx := context.Background()
	publishFrame := func(key string) error {
		locs, err := pub.Publish(ctx, key, player.Chart())
		for _, loc := range locs {
			info(cmd, "%s", loc)
		}
		return err
	}

	for player.Next(ctx, false) {
		if every {
			if err := publishFrame(frameFile(name, player.Frame())); err != nil {
				return err
			}
		}
	}
	if !every {
		if err := publishFrame(name); err != nil {
			return err
		}
	}
	a.logger.Debug("published", "name", name, "frames", player.Len())
	success(cmd, "Published %s", name)
	return nil
}
