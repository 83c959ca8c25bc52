package history

import (
	"context"
	"sync"
)

// DefaultCapacity bounds an in-memory Log when no capacity is given.
const DefaultCapacity = 1000

// Log is the in-process encoding history. It keeps at most its capacity of
// records and drops the oldest ones first. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
}

// NewLog returns an empty log. capacity <= 0 uses DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Append adds rec to the log.
func (l *Log) Append(_ context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, rec)
	if over := len(l.records) - l.capacity; over > 0 {
		l.records = append(l.records[:0], l.records[over:]...)
	}
	return nil
}

// List implements Store.
func (l *Log) List(_ context.Context, limit int) ([]Record, error) {
	return l.Tail(limit), nil
}

// All returns a copy of every record, oldest first.
func (l *Log) All() []Record {
	return l.Tail(0)
}

// Tail returns the last n records, oldest first.
func (l *Log) Tail(n int) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return tail(l.records, n)
}

// Len returns the number of records held.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

var _ Store = (*Log)(nil)
