package syllable

import "errors"

var (
	// ErrDuplicateSyllable is returned when the same syllable key is defined twice.
	ErrDuplicateSyllable = errors.New("syllable: duplicate syllable")

	// ErrMalformedRecord is returned for records without text or without a long form,
	// and for dictionary files that cannot be parsed.
	ErrMalformedRecord = errors.New("syllable: malformed record")
)
