package romanize

import "errors"

var (
	// ErrUnsupportedFormat is returned for format names outside the fixed enumeration.
	ErrUnsupportedFormat = errors.New("romanize: unsupported format")

	// ErrMissingBaseForm signals a record without a long form reached the resolver.
	// Dictionary construction rejects such records, so this is a data-integrity bug.
	ErrMissingBaseForm = errors.New("romanize: record has no long form")
)
