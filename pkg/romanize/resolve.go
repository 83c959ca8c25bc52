package romanize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/mnes/pkg/syllable"
)

// Resolve renders rec in the requested format.
//
//   - long: the stored long form verbatim
//   - short: the stored short form, or DeriveShort(long)
//   - academic: the stored academic form, or long
//   - initial: the first letter of long, upper-cased
func Resolve(rec syllable.Record, f Format) (string, error) {
	long := rec.Forms.Long
	if long == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingBaseForm, rec.Text)
	}

	switch f {
	case FormatLong:
		return long, nil
	case FormatShort:
		if rec.Forms.Short != "" {
			return rec.Forms.Short, nil
		}
		return DeriveShort(long), nil
	case FormatAcademic:
		if rec.Forms.Academic != "" {
			return rec.Forms.Academic, nil
		}
		return long, nil
	case FormatInitial:
		r, _ := utf8.DecodeRuneInString(long)
		return string(unicode.ToUpper(r)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// DeriveShort truncates a romanized syllable to its leading consonant cluster plus
// the first vowel: "Kyaw" -> "Kya", "Htun" -> "Htu", "Aung" -> "A".
// Words without a vowel are returned unchanged. The result is a fixed point:
// DeriveShort(DeriveShort(s)) == DeriveShort(s).
func DeriveShort(long string) string {
	i := strings.IndexFunc(long, isVowel)
	if i < 0 {
		return long
	}
	_, size := utf8.DecodeRuneInString(long[i:])
	return long[:i+size]
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
