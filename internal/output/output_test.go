package output

import (
	"testing"
)

func TestDisableColorRendersPlainText(t *testing.T) {
	old := colorEnabled
	defer func() { colorEnabled = old }()

	DisableColor()
	if got := Subtle("hello"); got != "hello" {
		t.Errorf("Subtle with color disabled = %q, want %q", got, "hello")
	}
	if got := Err("bad"); got != "bad" {
		t.Errorf("Err with color disabled = %q, want %q", got, "bad")
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	// Tests run without a tty; COLUMNS decides, then the fallback.
	t.Setenv("COLUMNS", "")
	if got := TerminalWidth(72); got != 72 {
		t.Errorf("TerminalWidth(72) = %d, want 72", got)
	}

	t.Setenv("COLUMNS", "120")
	if got := TerminalWidth(72); got != 120 {
		t.Errorf("TerminalWidth with COLUMNS=120 = %d, want 120", got)
	}
}

func TestTerminalWidthRejectsBadFallback(t *testing.T) {
	t.Setenv("COLUMNS", "")
	if got := TerminalWidth(0); got != 80 {
		t.Errorf("TerminalWidth(0) = %d, want default 80", got)
	}
}
