// Package mnes converts Myanmar-script personal names into Latin-alphabet forms.
//
// An [Encoder] normalizes the input, splits it into dictionary syllables
// (longest match first), renders each syllable in the requested romanization
// format and reports coverage statistics:
//
//	enc := mnes.New(syllable.MustBuiltin(),
//		mnes.WithTracker(usage.New()),
//		mnes.WithHistory(history.NewLog(0)),
//	)
//
//	res, err := enc.Encode("မောင်ကျော်ထွန်း", "short")
//	// res.Encoded == "MgKT", res.MappedCount == 3
//
// Characters the dictionary does not know are skipped and reported as
// warnings rather than errors, so partially covered names still encode.
// Invalid requests (unknown format, empty or overlong input) return errors
// and leave the tracker and history untouched.
package mnes
