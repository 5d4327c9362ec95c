// ABOUTME: CLI command for a player's recovery views.
// ABOUTME: Prints the 7-day summary, daily pivot, weekly means, or monthly heatmap.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/models"
)

var (
	recoveryView   string
	recoverySeason string
)

var recoveryCmd = &cobra.Command{
	Use:     "recovery <id>",
	Aliases: []string{"rec"},
	Short:   "Show a player's recovery status",
	Long: `Show one of a player's recovery views.

VIEWS:

  summary   Last 7 days: composites weighted by completeness, other
            metrics as a plain mean. "/" means no data.
  daily     Subjective, sleep, and soreness composites per day
  weekly    Weekly means of the six recovery composites
  heatmap   Emboss baseline score per calendar day, one row per month

Composites whose completeness is 0.2 or lower are left out of the daily,
weekly, and heatmap views.

EXAMPLES:

  pitchside recovery 7                              # 7-day summary
  pitchside recovery 7 --view daily -s 2024/2025    # Daily pivot for a season
  pitchside recovery 7 --view heatmap`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPlayer(args[0])
		if err != nil {
			return err
		}

		switch strings.ToLower(recoveryView) {
		case "summary", "":
			printSummary(cmd, result.Summary(p.PlayerID))
		case "daily":
			printDaily(cmd, result.Daily(p.PlayerID, recoverySeason))
		case "weekly":
			printWeekly(cmd, result.Weekly(p.PlayerID, recoverySeason))
		case "heatmap":
			printHeatmap(cmd, result.Heatmap(p.PlayerID, recoverySeason))
		default:
			return fmt.Errorf("unknown view: %s (use summary, daily, weekly, or heatmap)", recoveryView)
		}
		return nil
	},
}

func printSummary(cmd *cobra.Command, rows []models.RecoverySummary) {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No recovery data found.")
		return
	}
	faint := color.New(color.Faint)
	for _, r := range rows {
		avg := r.Avg
		if avg == models.NoData {
			avg = faint.Sprint(avg)
		}
		fmt.Fprintf(out, "  %s %s %s\n", padRight(r.Metric, 28), padRight(string(r.AvgType), 9), avg)
	}
}

func printDaily(cmd *cobra.Command, rows []models.DailyRecovery) {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No recovery data found.")
		return
	}
	faint := color.New(color.Faint)
	header := []string{padRight("DATE", 10)}
	for _, m := range models.DailyMetrics {
		header = append(header, padRight(strings.ToUpper(models.BaseMetric(m)), 22))
	}
	fmt.Fprintln(out, faint.Sprint(strings.Join(header, "  ")))
	for _, r := range rows {
		cells := []string{models.FormatDay(r.SessionDate)}
		for _, m := range models.DailyMetrics {
			cell := "-"
			if v, ok := r.Values[m]; ok {
				cell = fmt.Sprintf("%.2f", v)
			}
			cells = append(cells, padRight(cell, 22))
		}
		fmt.Fprintln(out, strings.Join(cells, "  "))
	}
}

func printWeekly(cmd *cobra.Command, rows []models.WeeklyRecovery) {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No recovery data found.")
		return
	}
	for _, r := range rows {
		val := "-"
		if r.Value != nil {
			val = fmt.Sprintf("%.2f", *r.Value)
		}
		fmt.Fprintf(out, "%s  %s  %s %s\n", r.YearWeek, models.FormatDay(r.WeekDate), padRight(r.Metric, 38), val)
	}
}

func printHeatmap(cmd *cobra.Command, rows []models.HeatmapRow) {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No recovery data found.")
		return
	}
	faint := color.New(color.Faint)
	for _, r := range rows {
		fmt.Fprintln(out, color.New(color.Bold).Sprintf("%s (%s)", r.Month, r.SeasonName))
		days := daysIn(r.MonthStart)
		var cells []string
		for d := 1; d <= days; d++ {
			if v, ok := r.Days[d]; ok {
				cells = append(cells, fmt.Sprintf("%2d:%5.2f", d, v))
			} else {
				cells = append(cells, faint.Sprintf("%2d:    -", d))
			}
			if d%7 == 0 || d == days {
				fmt.Fprintln(out, "  "+strings.Join(cells, "  "))
				cells = cells[:0]
			}
		}
	}
}

func init() {
	recoveryCmd.Flags().StringVarP(&recoveryView, "view", "v", "summary", "view: summary, daily, weekly, heatmap")
	recoveryCmd.Flags().StringVarP(&recoverySeason, "season", "s", "", "filter by season (ignored by summary)")
	rootCmd.AddCommand(recoveryCmd)
}
