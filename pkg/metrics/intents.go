package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
)

// IntentCount is the number of times one input source produced one intent.
type IntentCount struct {
	Source string `json:"source"`
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

type intentKey struct {
	source, intent string
}

var intents sync.Map // intentKey -> *int64

// CountIntent records that source produced intent.
func CountIntent(source, intent string) {
	if !enabled {
		return
	}
	v, _ := intents.LoadOrStore(intentKey{source, intent}, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

// IntentTotal returns the count for one source and intent.
func IntentTotal(source, intent string) int64 {
	v, ok := intents.Load(intentKey{source, intent})
	if !ok {
		return 0
	}
	return atomic.LoadInt64(v.(*int64))
}

// AllIntentCounts returns every non-zero counter ordered by source, then
// intent.
func AllIntentCounts() []IntentCount {
	var out []IntentCount
	intents.Range(func(k, v any) bool {
		key := k.(intentKey)
		if n := atomic.LoadInt64(v.(*int64)); n > 0 {
			out = append(out, IntentCount{Source: key.source, Intent: key.intent, Count: n})
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Intent < out[j].Intent
	})
	return out
}

func resetIntents() {
	intents.Range(func(k, _ any) bool {
		intents.Delete(k)
		return true
	})
}
