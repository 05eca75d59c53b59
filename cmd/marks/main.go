package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/marks/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		quiet, _ := cmd.PersistentFlags().GetBool("quiet")
		printError(os.Stderr, err, quiet)
		os.Exit(1)
	}
}

// printError writes err for a terminal, or as one line when compact is set.
func printError(w io.Writer, err error, compact bool) {
	var coded *errors.Error
	switch {
	case stderrors.As(err, &coded) && compact:
		fmt.Fprintln(w, coded.FormatCompact())
	case stderrors.As(err, &coded):
		fmt.Fprint(w, coded.Format())
	case compact:
		fmt.Fprintln(w, err)
	default:
		fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "marks",
		Short: "Render and animate data-driven scatter lines",
		Long: `marks reconciles rows of symbols with frames of data.

Each frame of a dataset is joined to the marks already on screen:
new values enter, vanished values exit, and values that persist
move from their old position to the new one.

  • render frames to SVG or PNG
  • preview transitions live in the browser
  • publish snapshots to a directory or S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "Config file or directory (default: marks.json/marks.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored error output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print only errors, each on one line")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(&opts),
		serveCmd(&opts),
		publishCmd(&opts),
		versionCmd(),
	)
	return rootCmd
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	if quiet(cmd) {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	if quiet(cmd) {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", fmt.Sprintf(format, args...))
}
