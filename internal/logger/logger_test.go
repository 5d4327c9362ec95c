// ABOUTME: Tests for the zap logger wrapper.
// ABOUTME: Covers mode/level selection and the no-op logger.
package logger

import "testing"

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", ""} {
		l, err := New(mode, "debug")
		if err != nil {
			t.Fatalf("New(%q) failed: %v", mode, err)
		}
		l.With("stage", "test").Debug("hello", "rows", 3)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("dev", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded", "k", "v")
	l.Sync()
}
