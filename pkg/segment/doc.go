// Package segment tokenizes Myanmar-script text into known syllables.
//
// The [Segmenter] walks the input by Unicode codepoint. At every position it
// looks up the longest candidate substring first (bounded by the dictionary's
// longest key) and shrinks one codepoint at a time until a key matches. A
// position with no match yields a single-codepoint [Unmatched] segment, so the
// output always covers the input exactly:
//
//	segs := segment.New(dict).Segment("မောင်ကျော်5")
//	// [မောင် (matched)] [ကျော် (matched)] [5 (unmatched)]
//	segment.Join(segs) == "မောင်ကျော်5"
//
// The caller is responsible for normalizing input to the same form the
// dictionary keys use (NFC for [syllable.Dictionary]).
package segment
