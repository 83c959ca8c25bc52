package mnes

import (
	"time"

	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/romanize"
	"github.com/dmitrymomot/mnes/pkg/syllable"
)

// Syllable is one segment of the input and what it became.
// Unmatched segments have an empty Encoded and Category.
type Syllable struct {
	Original string            `json:"original"`
	Encoded  string            `json:"encoded"`
	Category syllable.Category `json:"category,omitempty"`
	Matched  bool              `json:"matched"`
}

// Result describes one successful encoding. It is never modified after Encode returns.
type Result struct {
	ID               string          `json:"id"`
	Original         string          `json:"original"`
	Normalized       string          `json:"normalized"`
	Format           romanize.Format `json:"format"`
	Encoded          string          `json:"encoded"`
	Syllables        []Syllable      `json:"syllables"`
	SyllableCount    int             `json:"syllable_count"`
	MappedCount      int             `json:"mapped_count"`

	// CompressionRatio is measured against Normalized, not Original, so
	// stripped whitespace does not count as savings. It is 1.0 when no
	// syllable maps and Encoded is empty, and negative when Encoded is
	// longer than Normalized.
	CompressionRatio float64 `json:"compression_ratio"`

	Warnings         []string        `json:"warnings"`
	Warnings         []string        `json:"warnings"`
	Duration         time.Duration   `json:"duration_ns"`
	Timestamp        time.Time       `json:"timestamp"`
}

// UnmatchedCount is the number of segments the dictionary did not cover.
func (r Result) UnmatchedCount() int {
	return r.SyllableCount - r.MappedCount
}

// Record converts the result into its persisted form.
func (r Result) Record() history.Record {
	warnings := make([]string, len(r.Warnings))
	copy(warnings, r.Warnings)

	return history.Record{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Original:  r.Original,
		Encoded:   r.Encoded,
		Format:    string(r.Format),
		Stats: history.Stats{
			SyllableCount:    r.SyllableCount,
			MappedCount:      r.MappedCount,
			CompressionRatio: r.CompressionRatio,
			ProcessingTimeMS: float64(r.Duration.Microseconds()) / 1000,
			Warnings:         warnings,
		},
	}
}
