// ABOUTME: CLI command that runs the pipeline and reports table sizes.
// ABOUTME: Useful as a dry run to validate input files and configuration.
package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the pipeline and report table sizes",
	Long: `Load every input file, run the pipeline, and print the row count of each
derived table together with the dataset fingerprint.

The fingerprint is derived from the input file contents, so it only changes
when the data does.

EXAMPLES:

  pitchside build                    # Use the configured data directory
  pitchside build -d ./exports       # Read CSVs from ./exports`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		fmt.Fprintln(out, color.GreenString("✓ Built dataset %s", result.DatasetID))
		counts := result.TableCounts()
		for _, name := range pipeline.TableNames {
			fmt.Fprintf(out, "  %s %s\n", padRight(name, 18), faint.Sprintf("%s rows", humanize.Comma(int64(counts[name]))))
		}

		if seasons := result.LoadSeasons(); len(seasons) > 0 {
			fmt.Fprintf(out, "  %s %v\n", padRight("load seasons", 18), seasons)
		}
		if seasons := result.RecoverySeasons(); len(seasons) > 0 {
			fmt.Fprintf(out, "  %s %v\n", padRight("recovery seasons", 18), seasons)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
