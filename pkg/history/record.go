package history

import (
	"context"
	"fmt"
	"time"
)

// Stats are the per-encoding statistics kept alongside a record.
type Stats struct {
	SyllableCount    int      `json:"syllable_count"`
	MappedCount      int      `json:"mapped_count"`
	CompressionRatio float64  `json:"compression_ratio"`
	ProcessingTimeMS float64  `json:"processing_time_ms"`
	Warnings         []string `json:"warnings"`
}

// Record is one successful encoding as it is persisted and exported.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Original  string    `json:"original"`
	Encoded   string    `json:"encoded"`
	Format    string    `json:"format"`
	Stats     Stats     `json:"stats"`
}

// Validate reports records that cannot be stored: every record needs an ID,
// a timestamp and the original input.
func (r Record) Validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	case r.Timestamp.IsZero():
		return fmt.Errorf("%w: missing timestamp", ErrInvalidRecord)
	case r.Original == "":
		return fmt.Errorf("%w: missing original input", ErrInvalidRecord)
	}
	return nil
}

// Store persists records.
//
// List returns at most limit of the most recent records in chronological order
// (oldest first). A limit <= 0 returns everything the store holds.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context, limit int) ([]Record, error)
}

// BatchAppender is implemented by stores that insert many records at once.
type BatchAppender interface {
	AppendBatch(ctx context.Context, records []Record) error
}

// Import copies records into dst, as one batch when dst is a BatchAppender
// and record by record otherwise. The record-by-record path stops at the
// first failure, leaving earlier records in place.
func Import(ctx context.Context, dst Store, records []Record) error {
	if len(records) == 0 {
		return ErrNothingToStore
	}
	if b, ok := dst.(BatchAppender); ok {
		return b.AppendBatch(ctx, records)
	}
	for _, rec := range records {
		if err := dst.Append(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// tail returns the last n records of recs, or all of them when n <= 0.
func tail(recs []Record, n int) []Record {
	if n > 0 && n < len(recs) {
		recs = recs[len(recs)-n:]
	}
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}
