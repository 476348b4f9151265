package metrics

import (
	"sort"
	"sync"
)

// Usage counts API tokens and requests.
type Usage struct {
	Requests     int
	InputTokens  int64
	OutputTokens int64
}

// Add returns the sum of u and o.
func (u Usage) Add(o Usage) Usage {
	return Usage{
		Requests:     u.Requests + o.Requests,
		InputTokens:  u.InputTokens + o.InputTokens,
		OutputTokens: u.OutputTokens + o.OutputTokens,
	}
}

// UsageTracker aggregates Usage per label (one label per pattern) and overall.
// It is safe for concurrent use.
type UsageTracker struct {
	mu     sync.RWMutex
	labels map[string]Usage
	total  Usage
}

// NewUsageTracker returns an empty tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{labels: make(map[string]Usage)}
}

// Record adds one request's usage under label.
func (t *UsageTracker) Record(label string, input, output int64) {
	u := Usage{Requests: 1, InputTokens: input, OutputTokens: output}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.labels[label] = t.labels[label].Add(u)
	t.total = t.total.Add(u)
}

// Total returns usage across every label.
func (t *UsageTracker) Total() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// ByLabel returns the usage for label, zero if never recorded.
func (t *UsageTracker) ByLabel(label string) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.labels[label]
}

// Labels returns recorded labels in sorted order.
func (t *UsageTracker) Labels() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.labels))
	for l := range t.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
