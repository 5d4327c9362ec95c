// ABOUTME: CLI commands for listing players and showing one player's profile.
// ABOUTME: The profile includes recent matches, latest load, and recovery summary.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/models"
)

var playersCmd = &cobra.Command{
	Use:     "players",
	Aliases: []string{"ls"},
	Short:   "List players",
	Long: `List every player with shirt number, position group, and age.

OUTPUT FORMAT:

  Each line shows: ID  #NUMBER  NAME  GROUP  AGE

EXAMPLES:

  pitchside players`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		players := result.Players()
		if len(players) == 0 {
			fmt.Fprintln(out, "No players found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range players {
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(p.PlayerID), 6)),
				padRight("#"+p.Number, 4),
				padRight(truncate(p.Name, 24), 24),
				padRight(p.Group, 12),
				faint.Sprintf("%d", p.Age))
		}
		return nil
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show a player's profile",
	Long: `Show one player's profile card: details, season stats, last matches,
latest training load, and the last 7 days of recovery.

EXAMPLES:

  pitchside player 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPlayer(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		fmt.Fprintln(out, bold.Sprintf("%s #%s", p.Name, p.Number))
		fmt.Fprintf(out, "  Group:    %s\n", p.Group)
		fmt.Fprintf(out, "  Age:      %d\n", p.Age)
		if p.Foot != "" {
			fmt.Fprintf(out, "  Foot:     %s\n", p.Foot)
		}
		if p.Height != nil {
			fmt.Fprintf(out, "  Height:   %.0f cm\n", *p.Height)
		}
		if p.Weight != nil {
			fmt.Fprintf(out, "  Weight:   %.0f kg\n", *p.Weight)
		}
		for _, k := range sortedKeys(p.Stats) {
			fmt.Fprintf(out, "  %s %g\n", padRight(k+":", 9), p.Stats[k])
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, bold.Sprint("Last matches"))
		matches := result.LastMatches(p.PlayerID)
		if len(matches) == 0 {
			fmt.Fprintln(out, faint.Sprint("  No recent matches."))
		}
		for _, m := range matches {
			printMatch(cmd, m)
		}

		if load := result.Load(p.PlayerID, ""); len(load) > 0 {
			last := load[len(load)-1]
			fmt.Fprintln(out)
			fmt.Fprintln(out, bold.Sprint("Latest load"))
			fmt.Fprintf(out, "  %s  ACWR %s  acute %.1f  chronic %.1f  %s\n",
				models.FormatDay(last.Date),
				riskColor(last.RiskZone).Sprintf("%.2f", last.ACWR),
				last.AcuteLoad, last.ChronicLoad, last.Status)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, bold.Sprint("Recovery, last 7 days"))
		printSummary(cmd, result.Summary(p.PlayerID))
		return nil
	},
}

func printMatch(cmd *cobra.Command, m models.MatchHistoryRow) {
	venue := "A"
	if m.IsHome {
		venue = "H"
	}
	score := m.Score
	if score == "" {
		score = "-"
	}
	res := string(m.Result)
	if res == "" {
		res = "?"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s %s %s %3.0f'  G%d A%d\n",
		models.FormatDay(m.MatchDate),
		venue,
		padRight(truncate(m.OpponentName, 20), 20),
		padRight(score, 7),
		resultColor(m.Result).Sprint(res),
		m.MinutesPlayed, m.Goals, m.Assists)
}

func init() {
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
}
