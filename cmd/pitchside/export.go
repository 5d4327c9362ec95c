// ABOUTME: CLI command for exporting the derived tables.
// ABOUTME: Supports JSON, YAML, Markdown, CSV, and SQLite export formats.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/export"
	"github.com/harperreed/pitchside/internal/pipeline"
)

var (
	exportOutput string
	exportPlayer int
	exportSeason string
	exportTable  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the derived tables",
	Long: `Export the derived tables in various formats.

FORMATS:

  json       Every table in one JSON document
  yaml       Per-player YAML (profile, matches, load, 7-day recovery)
  markdown   Per-player report with tables
  csv        One table as CSV (choose with --table)
  sqlite     Every table into a SQLite database (requires --output)

TABLES (csv):

  players, last_matches, load, recovery_daily, recovery_heatmap,
  recovery_weekly, recovery_summary

OPTIONS:

  --output, -o   Write to file instead of stdout
  --player, -p   Only include one player
  --season, -s   Only include one season (load and recovery views)
  --table, -t    Table to write (csv only, default load)

Exports carry no timestamp, so the same inputs always produce the same bytes.

EXAMPLES:

  pitchside export json -o tables.json
  pitchside export yaml --player 7
  pitchside export csv --table recovery_weekly --season 2024/2025
  pitchside export sqlite -o pitchside.db`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "csv", "sqlite"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		filter := export.Filter{PlayerID: exportPlayer, Season: exportSeason}

		if format == "sqlite" {
			return exportSQLite(cmd)
		}

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = export.JSON(result, filter)
		case "yaml":
			data, err = export.YAML(result, filter)
		case "markdown", "md":
			data = []byte(export.Markdown(result, filter))
		case "csv":
			if !pipeline.IsTable(exportTable) {
				return fmt.Errorf("unknown table: %s", exportTable)
			}
			var buf bytes.Buffer
			err = export.CSV(&buf, result, exportTable, filter)
			data = buf.Bytes()
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, csv, or sqlite)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func exportSQLite(cmd *cobra.Command) error {
	if exportOutput == "" {
		return fmt.Errorf("sqlite export requires --output")
	}
	db, err := export.Open(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.WriteResult(cmd.Context(), result); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	log.Info("wrote sqlite export", "path", db.Path(), "dataset_id", result.DatasetID.String())
	color.Green("✓ Exported to %s", db.Path())
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().IntVarP(&exportPlayer, "player", "p", 0, "only include this player id")
	exportCmd.Flags().StringVarP(&exportSeason, "season", "s", "", "only include this season")
	exportCmd.Flags().StringVarP(&exportTable, "table", "t", pipeline.TableLoad, "table to export (csv only)")
	rootCmd.AddCommand(exportCmd)
}
