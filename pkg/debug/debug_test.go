package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	wasEnabled, prev := enabled, logger
	SetOutput(&buf)
	SetEnabled(true)
	t.Cleanup(func() {
		enabled, logger = wasEnabled, prev
	})
	return &buf
}

func TestHelpersWriteWhenEnabled(t *testing.T) {
	buf := capture(t)

	Section("enable")
	Log("slides: %d", 3)
	LogTiming("hooks: moved notify", 1500*time.Millisecond)
	LogIf(false, "skipped")
	LogIf(true, "kept %s", "this")

	out := buf.String()
	for _, want := range []string{"=== enable ===", "slides: 3", "hooks: moved notify took 1.5s", "kept this"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "skipped") {
		t.Errorf("Expected false condition to log nothing:\n%s", out)
	}
	if !strings.Contains(out, "[SLIDESCROLL] ") {
		t.Errorf("Expected prefix:\n%s", out)
	}
}

func TestDisabledIsSilent(t *testing.T) {
	buf := capture(t)
	SetEnabled(false)

	Log("x")
	LogTiming("x", time.Second)
	LogIf(true, "x")
	Section("x")

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
	if Enabled() {
		t.Error("Expected disabled")
	}
}
