package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerboseEnablesDebug(t *testing.T) {
	var quiet, loud bytes.Buffer

	NewWithWriter(&quiet, "maze", false).Debug("hidden", "k", 1)
	NewWithWriter(&loud, "maze", true).Debug("shown", "k", 1)

	if quiet.Len() != 0 {
		t.Errorf("debug output without verbose: %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "shown") {
		t.Errorf("expected debug output, got %q", loud.String())
	}
	if !strings.Contains(loud.String(), "maze") {
		t.Errorf("expected prefix in output, got %q", loud.String())
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic or write anywhere.
	Discard().Info("nothing", "k", "v")
}
