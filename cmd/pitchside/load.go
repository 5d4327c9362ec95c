// ABOUTME: CLI command for a player's training load table.
// ABOUTME: Shows TRIMP, acute/chronic load, and ACWR coloured by risk zone.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/models"
)

var (
	loadSeason string
	loadLimit  int
)

var loadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Show a player's training load",
	Long: `Show a player's training load records, oldest first.

OUTPUT FORMAT:

  DATE  TYPE  KM  TRIMP  ACUTE  CHRONIC  ACWR  STATUS

  TYPE is MD on match days and TR otherwise. ACWR is coloured by risk zone:
  yellow under 0.8, green 0.8 to 1.5, red above 1.5. Injury periods are
  listed after the table.

EXAMPLES:

  pitchside load 7                         # Last 28 records, all seasons
  pitchside load 7 --season 2024/2025      # One season
  pitchside load 7 -n 0                    # Every record`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPlayer(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		records := result.Load(p.PlayerID, loadSeason)
		if len(records) == 0 {
			fmt.Fprintln(out, "No load records found.")
			return nil
		}
		if loadLimit > 0 && len(records) > loadLimit {
			records = records[len(records)-loadLimit:]
		}

		faint := color.New(color.Faint)
		fmt.Fprintln(out, faint.Sprint("DATE        TYPE     KM  TRIMP  ACUTE  CHRONIC  ACWR  STATUS"))
		for _, r := range records {
			kind := "TR"
			if r.IsMatchDay {
				kind = "MD"
			}
			status := r.Status
			if r.Status == models.StatusInjured {
				status = color.RedString(status)
			}
			fmt.Fprintf(out, "%s  %s  %5.1f  %5.0f  %5.1f  %7.1f  %s  %s\n",
				models.FormatDay(r.Date),
				padRight(kind, 4),
				r.DistanceKM,
				r.TRIMPEdwards,
				r.AcuteLoad,
				r.ChronicLoad,
				riskColor(r.RiskZone).Sprintf("%4.2f", r.ACWR),
				status)
		}

		if bands := result.UnavailabilityBands(p.PlayerID, loadSeason); len(bands) > 0 {
			fmt.Fprintln(out)
			for _, b := range bands {
				fmt.Fprintf(out, "%s %s to %s: %s %s\n",
					color.YellowString("⚠ Unavailable"),
					models.FormatDay(b.From), models.FormatDay(b.To),
					b.Injury.BodyPart, b.Injury.InjuryName)
			}
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadSeason, "season", "s", "", "filter by season (e.g. 2024/2025)")
	loadCmd.Flags().IntVarP(&loadLimit, "limit", "n", 28, "show only the most recent N records (0 = all)")
	rootCmd.AddCommand(loadCmd)
}
