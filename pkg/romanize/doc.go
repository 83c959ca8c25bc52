// Package romanize turns dictionary records into Latin tokens.
//
// Four output formats are supported and the set is fixed at compile time:
//
//	long      "Kyaw"   stored long form
//	short     "K"      stored short form, else a derived truncation ("Kya")
//	academic  "kyau"   stored academic transcription, else long
//	initial   "K"      first letter of long, upper-cased
//
// Use [ParseFormat] to validate user input and [Resolve] to render a record.
package romanize
