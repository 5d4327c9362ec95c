// ABOUTME: Shared helpers for CLI commands.
// ABOUTME: Player id parsing, column padding, and risk-zone colouring.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/pitchside/internal/models"
)

// parsePlayerID parses a positive player id argument.
func parsePlayerID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id: %s", arg)
	}
	return id, nil
}

// lookupPlayer resolves a player id argument against the pipeline result.
func lookupPlayer(arg string) (models.PlayerResume, error) {
	id, err := parsePlayerID(arg)
	if err != nil {
		return models.PlayerResume{}, err
	}
	p, ok := result.Resume(id)
	if !ok {
		return models.PlayerResume{}, fmt.Errorf("player not found: %d", id)
	}
	return p, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// riskColor picks the colour of an ACWR value by risk zone.
func riskColor(zone models.RiskZone) *color.Color {
	switch zone {
	case models.RiskDanger:
		return color.New(color.FgRed, color.Bold)
	case models.RiskUnder:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// resultColor picks the colour of a W/D/L match result.
func resultColor(r models.Result) *color.Color {
	switch r {
	case models.ResultWin:
		return color.New(color.FgGreen)
	case models.ResultLoss:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// daysIn returns the number of days in the month starting at monthStart.
func daysIn(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}
