// ABOUTME: Integration tests for pitchside CLI.
// ABOUTME: Builds the binary and runs it against the sample dataset.
package test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()

	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "pitchside")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/pitchside")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	return binary
}

func TestFullWorkflow(t *testing.T) {
	binary := buildBinary(t)
	dataDir, _ := filepath.Abs("../internal/storage/testdata/sample")
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	run := func(env []string, args ...string) (string, string, error) {
		fullArgs := append([]string{"--data-dir", dataDir, "--config", configPath, "--log-level", "error"}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = append(os.Environ(), env...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		err := cmd.Run()
		return stdout.String(), stderr.String(), err
	}

	// Build reports every table
	output, stderr, err := run(nil, "build")
	if err != nil {
		t.Fatalf("Failed to build tables: %v\n%s", err, stderr)
	}
	for _, table := range []string{"players", "last_matches", "load", "recovery_summary"} {
		if !strings.Contains(output, table) {
			t.Errorf("Expected %q in build output, got: %s", table, output)
		}
	}

	// Exports are byte-identical across runs
	first, _, err := run(nil, "export", "json")
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	second, _, err := run(nil, "export", "json")
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	if first != second {
		t.Error("Expected identical JSON exports for identical inputs")
	}

	// Environment override moves the 7-day window past every recovery row
	output, _, err = run([]string{"PITCHSIDE_REFERENCE_DATE=2025-06-30"}, "recovery", "7")
	if err != nil {
		t.Fatalf("Failed to show recovery: %v", err)
	}
	if !strings.Contains(output, "No recovery data found.") {
		t.Errorf("Expected empty summary with moved reference date, got: %s", output)
	}

	// Config file narrows the GPS window
	if err := os.WriteFile(configPath, []byte("window_start: \"2025-03-05\"\nwindow_end: \"2025-03-31\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	output, _, err = run(nil, "export", "csv", "--table", "load")
	if err != nil {
		t.Fatalf("Failed to export csv: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(output), "\n"); lines != 3 {
		t.Errorf("Expected 3 load rows inside the window, got %d:\n%s", lines, output)
	}
	if err := os.Remove(configPath); err != nil {
		t.Fatalf("Failed to remove config: %v", err)
	}

	// SQLite export
	dbPath := filepath.Join(tmpDir, "pitchside.db")
	if _, stderr, err := run(nil, "export", "sqlite", "-o", dbPath); err != nil {
		t.Fatalf("Failed to export sqlite: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Expected sqlite file: %v", err)
	}
}

func TestSchemaErrorExitsNonZero(t *testing.T) {
	binary := buildBinary(t)
	dataDir := t.TempDir()

	sample, _ := filepath.Abs("../internal/storage/testdata/sample")
	entries, err := os.ReadDir(sample)
	if err != nil {
		t.Fatalf("Failed to read sample: %v", err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(sample, e.Name()))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", e.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dataDir, e.Name()), data, 0600); err != nil {
			t.Fatalf("Failed to write %s: %v", e.Name(), err)
		}
	}
	if err := os.WriteFile(filepath.Join(dataDir, "ref_team.csv"), []byte("team_id;team_name\n1;Home\n"), 0600); err != nil {
		t.Fatalf("Failed to write teams: %v", err)
	}

	cmd := exec.Command(binary, "build", "--data-dir", dataDir, "--config", filepath.Join(dataDir, "none.yaml"))
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("Expected non-zero exit, got output: %s", output)
	}
	if !strings.Contains(string(output), `missing required column "url_picture"`) {
		t.Errorf("Expected schema error in output, got: %s", output)
	}
}
