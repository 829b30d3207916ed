package metrics

import (
	"io"
	"time"

	json "github.com/goccy/go-json"
)

// Snapshot is the --stats report.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Timings   []TimingStats `json:"timings"`
	Intents   []IntentCount `json:"intents"`
}

// Take collects the current metrics.
func Take() Snapshot {
	return Snapshot{
		Timestamp: time.Now().UTC(),
		Timings:   AllTimingStats(),
		Intents:   AllIntentCounts(),
	}
}

// WriteJSON writes an indented snapshot to w.
func WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Take())
}
