package romanize

import (
	"fmt"
	"strings"
)

// Format selects how a syllable's stored romanizations are rendered.
type Format string

const (
	FormatLong     Format = "long"
	FormatShort    Format = "short"
	FormatAcademic Format = "academic"
	FormatInitial  Format = "initial"
)

// DefaultFormat is used by callers that let the user skip format selection.
const DefaultFormat = FormatShort

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatShort, FormatLong, FormatAcademic, FormatInitial}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatLong, FormatShort, FormatAcademic, FormatInitial:
		return true
	}
	return false
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat converts a user-supplied name into a Format.
// Matching ignores case and surrounding whitespace.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}
