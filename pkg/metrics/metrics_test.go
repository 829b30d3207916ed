package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestTimingMetricRecord(t *testing.T) {
	m := newTimingMetric("test")
	m.Record(2 * time.Millisecond)
	m.Record(4 * time.Millisecond)

	if m.Count() != 2 {
		t.Errorf("Expected count 2, got %d", m.Count())
	}
	if m.MinNs() != int64(2*time.Millisecond) {
		t.Errorf("Expected min 2ms, got %d", m.MinNs())
	}
	if m.MaxNs() != int64(4*time.Millisecond) {
		t.Errorf("Expected max 4ms, got %d", m.MaxNs())
	}
	if m.AvgNs() != int64(3*time.Millisecond) {
		t.Errorf("Expected avg 3ms, got %d", m.AvgNs())
	}

	m.Reset()
	if m.Count() != 0 || m.MinNs() != 0 {
		t.Error("Expected reset metric to be empty")
	}
}

func TestDisabledSkipsRecording(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("off")
	m.Record(time.Millisecond)
	CountIntent("keyboard", "next")

	if m.Count() != 0 {
		t.Errorf("Expected no recording while disabled, got %d", m.Count())
	}
	if IntentTotal("keyboard", "next") != 0 {
		t.Error("Expected no intent counted while disabled")
	}
}

func TestTimerWithCallback(t *testing.T) {
	m := newTimingMetric("cb")
	var got []time.Duration
	TimerWithCallback(m, func(d time.Duration) { got = append(got, d) })()
	if len(got) != 1 || m.Count() != 1 {
		t.Fatalf("Expected one callback and one recording, got %d / %d", len(got), m.Count())
	}

	SetEnabled(false)
	defer SetEnabled(true)
	TimerWithCallback(m, func(d time.Duration) { got = append(got, d) })()
	if len(got) != 2 {
		t.Error("Expected the callback to run while collection is disabled")
	}
	if m.Count() != 1 {
		t.Errorf("Expected no recording while disabled, got %d", m.Count())
	}
}

func TestCountIntent(t *testing.T) {
	ResetAll()
	CountIntent("wheel", "previous")
	CountIntent("keyboard", "next")
	CountIntent("keyboard", "next")

	if got := IntentTotal("keyboard", "next"); got != 2 {
		t.Errorf("Expected 2 keyboard/next, got %d", got)
	}
	counts := AllIntentCounts()
	if len(counts) != 2 {
		t.Fatalf("Expected 2 counters, got %d", len(counts))
	}
	if counts[0].Source != "keyboard" || counts[1].Source != "wheel" {
		t.Errorf("Expected counters sorted by source, got %+v", counts)
	}
}

func TestWriteJSON(t *testing.T) {
	ResetAll()
	DeckBuild.Record(time.Millisecond)
	CountIntent("touch", "next")

	var buf bytes.Buffer
	if err := WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"deck_build"`, `"touch"`, `"timings"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in output:\n%s", want, out)
		}
	}
}
