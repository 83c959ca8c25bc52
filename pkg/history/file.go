package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is where the CLI saves history when no path is given.
const DefaultFileName = "encoding_history.json"

// FileStore keeps records in a JSON array file. The whole file is rewritten
// on every append, so it suits the small histories of a single process.
type FileStore struct {
	mu      sync.Mutex
	path    string
	records []Record
}

// OpenFile loads path if it exists and returns a store backed by it.
// A missing file starts an empty history.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultFileName
	}

	records, err := LoadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &FileStore{path: path, records: records}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Append adds rec and persists the full history.
func (s *FileStore) Append(_ context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(s.records, rec)
	if err := SaveFile(s.path, next); err != nil {
		return errors.Join(ErrAppendFailed, err)
	}
	s.records = next
	return nil
}

// List implements Store.
func (s *FileStore) List(_ context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tail(s.records, limit), nil
}

// SaveFile writes records to path as an indented JSON array.
// The file is replaced atomically through a temporary file in the same directory.
func SaveFile(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.Join(ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

// LoadFile reads a JSON array of records from path.
// The returned error wraps fs.ErrNotExist when the file is missing.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, path, err)
	}
	return records, nil
}

var _ Store = (*FileStore)(nil)
