// ABOUTME: Names of the output tables shared by every export format.
// ABOUTME: Exporters and the SQLite sink key their output by these names.
package pipeline

// Output table names.
const (
	TablePlayers         = "players"
	TableLastMatches     = "last_matches"
	TableLoad            = "load"
	TableRecoveryDaily   = "recovery_daily"
	TableRecoveryHeatmap = "recovery_heatmap"
	TableRecoveryWeekly  = "recovery_weekly"
	TableRecoverySummary = "recovery_summary"
)

// TableNames lists the output tables in pipeline order.
var TableNames = []string{
	TablePlayers,
	TableLastMatches,
	TableLoad,
	TableRecoveryDaily,
	TableRecoveryHeatmap,
	TableRecoveryWeekly,
	TableRecoverySummary,
}

// IsTable reports whether name is an output table.
func IsTable(name string) bool {
	for _, t := range TableNames {
		if t == name {
			return true
		}
	}
	return false
}
