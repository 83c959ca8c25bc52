package mnes

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns input in NFC with all whitespace removed.
// Zero-width spaces, common between Myanmar words, count as whitespace.
func Normalize(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || isZeroWidth(r) {
			return -1
		}
		return r
	}, norm.NFC.String(input))
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u2060', '\ufeff':
		return true
	}
	return false
}

// myanmar covers the Myanmar block and Myanmar Extended-A/B.
var myanmar = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1000, Hi: 0x109f, Stride: 1},
		{Lo: 0xa9e0, Hi: 0xa9ff, Stride: 1},
		{Lo: 0xaa60, Hi: 0xaa7f, Stride: 1},
	},
}

// checkScript reports the first codepoint outside the Myanmar blocks.
func checkScript(s string) error {
	for i, r := range []rune(s) {
		if !unicode.Is(myanmar, r) {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, r, i)
		}
	}
	return nil
}
