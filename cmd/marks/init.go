package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/marks/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		templateName string
		title        string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a marks config and a sample dataset",
		Long: `Init writes a config file and a sample frames.yaml into DIR
(default: the working directory).

Templates:
  basic     One row of circles over a few frames (default)
  labelled  Several labelled rows of diamonds

Examples:
  marks init
  marks init charts --template labelled --title "Deploys"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			tmpl, err := templates.Get(templateName)
			if err != nil {
				return err
			}
			if title == "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return err
				}
				title = strings.ReplaceAll(filepath.Base(abs), "-", " ")
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			written, err := tmpl.Create(dir, templates.Config{Title: title}, force)
			if err != nil {
				return err
			}
			for _, path := range written {
				info(cmd, "%s", path)
			}
			success(cmd, "Created %s project in %s", tmpl.Name, dir)
			info(cmd, "Next: marks serve %s", filepath.Join(dir, "frames.yaml"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "basic", "Project template")
	cmd.Flags().StringVar(&title, "title", "", "Chart title (default: directory name)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}
