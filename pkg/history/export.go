package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/mnes/pkg/storage"
)

// ExportPrefix is the object key prefix for exported history documents.
const ExportPrefix = "exports"

// Document is the exported JSON shape.
type Document struct {
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Records    []Record  `json:"records"`
}

type exportOptions struct {
	csv bool
	now func() time.Time
}

// ExportOption configures Export.
type ExportOption func(*exportOptions)

// AsCSV exports a CSV table instead of a JSON document.
func AsCSV() ExportOption {
	return func(o *exportOptions) {
		o.csv = true
	}
}

// WithExportClock overrides the export timestamp source.
func WithExportClock(now func() time.Time) ExportOption {
	return func(o *exportOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// Export uploads records to object storage under "exports/<ulid>.json"
// (or ".csv" with AsCSV) and returns the stored object's metadata.
func Export(ctx context.Context, st storage.Storage, records []Record, opts ...ExportOption) (*storage.FileInfo, error) {
	if len(records) == 0 {
		return nil, ErrNothingToStore
	}

	o := &exportOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	var (
		buf         bytes.Buffer
		contentType = storage.ContentTypeJSON
	)
	if o.csv {
		contentType = storage.ContentTypeCSV
		if err := WriteCSV(&buf, records); err != nil {
			return nil, errors.Join(ErrExportFailed, err)
		}
	} else {
		doc := Document{
			ExportedAt: o.now().UTC(),
			Count:      len(records),
			Records:    records,
		}
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Join(ErrExportFailed, err)
		}
	}

	info, err := st.Put(ctx, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		storage.WithPrefix(ExportPrefix),
		storage.WithContentType(contentType),
	)
	if err != nil {
		return nil, errors.Join(ErrExportFailed, err)
	}
	return info, nil
}
