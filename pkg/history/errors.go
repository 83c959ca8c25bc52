package history

import "errors"

var (
	ErrInvalidRecord  = errors.New("history: invalid record")
	ErrLoadFailed     = errors.New("history: failed to load records")
	ErrSaveFailed     = errors.New("history: failed to save records")
	ErrAppendFailed   = errors.New("history: failed to append record")
	ErrListFailed     = errors.New("history: failed to list records")
	ErrExportFailed   = errors.New("history: export failed")
	ErrNothingToStore = errors.New("history: no records to store")
)
