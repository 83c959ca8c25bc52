package segment

import (
	"strings"

	"github.com/dmitrymomot/mnes/pkg/syllable"
)

// Lexicon is the read-only view of a dictionary the segmenter needs.
// *syllable.Dictionary satisfies it.
type Lexicon interface {
	Lookup(text string) (syllable.Record, bool)
	MaxKeyLen() int
}

// Kind tells a matched syllable apart from an unrecognized span.
type Kind uint8

const (
	Matched Kind = iota + 1
	Unmatched
)

func (k Kind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Unmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// Segment is one contiguous span of the input.
// Start and End are codepoint offsets; Record is set only for Matched segments.
type Segment struct {
	Record *syllable.Record
	Text   string
	Start  int
	End    int
	Kind   Kind
}

// Matched reports whether the segment is a known syllable.
func (s Segment) Matched() bool {
	return s.Kind == Matched
}

// Len returns the segment length in codepoints.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Segmenter splits strings into syllables by longest-match-first lookup.
type Segmenter struct {
	lex    Lexicon
	maxLen int
}

// New creates a segmenter over lex. The maximum candidate length is read once here.
func New(lex Lexicon) *Segmenter {
	return &Segmenter{
		lex:    lex,
		maxLen: max(lex.MaxKeyLen(), 1),
	}
}

// Segment scans input left to right by codepoint. At each position it tries the
// longest candidate first and shrinks one codepoint at a time; the first hit becomes a
// Matched segment. When nothing matches, exactly one codepoint is emitted as Unmatched.
// Unmatched codepoints are never coalesced.
func (s *Segmenter) Segment(input string) []Segment {
	runes := []rune(input)
	out := make([]Segment, 0, len(runes))

	for pos := 0; pos < len(runes); {
		seg := s.matchAt(runes, pos)
		out = append(out, seg)
		pos = seg.End
	}

	return out
}

func (s *Segmenter) matchAt(runes []rune, pos int) Segment {
	for n := min(s.maxLen, len(runes)-pos); n >= 1; n-- {
		candidate := string(runes[pos : pos+n])
		if rec, ok := s.lex.Lookup(candidate); ok {
			return Segment{
				Kind:   Matched,
				Text:   candidate,
				Start:  pos,
				End:    pos + n,
				Record: &rec,
			}
		}
	}

	return Segment{
		Kind:  Unmatched,
		Text:  string(runes[pos]),
		Start: pos,
		End:   pos + 1,
	}
}

// Join concatenates segment texts in order. For any input,
// Join(s.Segment(input)) == input.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Count returns the number of matched and unmatched segments.
func Count(segments []Segment) (matched, unmatched int) {
	for _, seg := range segments {
		if seg.Matched() {
			matched++
		} else {
			unmatched++
		}
	}
	return matched, unmatched
}
