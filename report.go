package mnes

import "github.com/dmitrymomot/mnes/pkg/usage"

// DefaultTopN is the number of syllables listed in a report by default.
const DefaultTopN = 5

// Report summarizes encoder activity since the tracker was created or reset.
type Report struct {
	TotalEncodings    int           `json:"total_encodings"`
	Errors            int           `json:"errors"`
	ErrorRate         float64       `json:"error_rate"`
	DistinctSyllables int           `json:"distinct_syllables"`
	DictionarySize    int           `json:"dictionary_size"`
	MostUsed          *usage.Count  `json:"most_used,omitempty"`
	Top               []usage.Count `json:"top"`
}

// Report returns activity statistics with at most top syllables listed.
// top <= 0 uses DefaultTopN. ErrorRate is errors over all attempts.
func (e *Encoder) Report(top int) Report {
	if top <= 0 {
		top = DefaultTopN
	}

	r := Report{
		TotalEncodings:    e.tracker.Total(),
		Errors:            e.Errors(),
		DistinctSyllables: e.tracker.Distinct(),
		DictionarySize:    e.dict.Len(),
		Top:               e.tracker.TopN(top),
	}
	if attempts := r.TotalEncodings + r.Errors; attempts > 0 {
		r.ErrorRate = float64(r.Errors) / float64(attempts)
	}
	if len(r.Top) > 0 {
		most := r.Top[0]
		r.MostUsed = &most
	}
	return r
}
