// Package usage counts how often each syllable appears in successful encodings.
//
// A Tracker is an explicit collaborator: create one with [New], hand it to the
// encoder, and call [Tracker.Reset] when a fresh count is needed. All methods
// are safe for concurrent use.
package usage

import (
	"slices"
	"sync"
)

// Count is one syllable's tally.
type Count struct {
	Syllable string `json:"syllable"`
	Count    int    `json:"count"`
}

// Tracker accumulates per-syllable counts and the number of recorded encodings.
type Tracker struct {
	mu     sync.Mutex
	counts map[string]int
	order  []string // first-seen order, used to break ties
	total  int
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// RecordUse registers one encoding that matched the given syllables.
// Each occurrence increments that syllable's count by one, and the total
// encoding count grows by one regardless of how many syllables were passed.
func (t *Tracker) RecordUse(syllables []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range syllables {
		if _, seen := t.counts[s]; !seen {
			t.order = append(t.order, s)
		}
		t.counts[s]++
	}
	t.total++
}

// Count returns how many times s has been recorded.
func (t *Tracker) Count(s string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[s]
}

// Total returns the number of RecordUse calls since creation or the last Reset.
func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Distinct returns the number of different syllables seen.
func (t *Tracker) Distinct() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.counts)
}

// TopN returns at most n syllables ordered by descending count.
// Equal counts keep the order in which the syllables were first seen.
// n <= 0 returns every syllable.
func (t *Tracker) TopN(n int) []Count {
	t.mu.Lock()
	out := make([]Count, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, Count{Syllable: s, Count: t.counts[s]})
	}
	t.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Count) int {
		return b.Count - a.Count
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Reset clears every count.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.counts)
	t.order = t.order[:0]
	t.total = 0
}
