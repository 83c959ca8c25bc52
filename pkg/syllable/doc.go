// Package syllable provides the known-syllable dictionary used to segment
// Myanmar-script names.
//
// A [Dictionary] maps a syllable (one orthographic unit, possibly several Unicode
// codepoints: base consonant, medials, vowel signs, tone marks) to a [Record]
// holding its romanizations, a frequency hint and a category. Keys are stored in
// NFC so that precomposed and decomposed spellings of the same syllable collide.
//
// # Construction
//
// Dictionaries are immutable. Build one with [New] and options:
//
//	dict, err := syllable.New(
//	    syllable.WithBuiltin(),
//	    syllable.WithLoader(syllable.NewFSLoader(os.DirFS("./dict"))),
//	)
//
// Administrator additions go through [Dictionary.Extend], which returns a new
// dictionary and leaves the original in place.
//
// # Validation
//
// Every record must carry a non-empty long form ([ErrMalformedRecord]) and every key
// must be unique ([ErrDuplicateSyllable]). Keys may be prefixes of other keys;
// segmentation resolves the overlap by trying the longest candidate first, and
// [Dictionary.MaxKeyLen] bounds that search.
//
// # Loading
//
// [Loader] is the capability for sourcing extra records. [FSLoader] reads YAML
// (.yaml, .yml) and JSON (.json) files from any fs.FS, each file holding a list of
// records.
package syllable
