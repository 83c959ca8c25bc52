package syllable

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Dictionary is an immutable set of syllable records keyed by NFC-normalized text.
// It is safe for concurrent use because nothing mutates it after New returns.
type Dictionary struct {
	records   map[string]Record
	keys      []string
	maxKeyLen int
}

// Option configures the dictionary during construction.
type Option func(*builder) error

type builder struct {
	records []Record
}

// New builds a dictionary from the given options.
// Records are validated and checked for duplicate keys; the first violation is returned.
//
// Example:
//
//	dict, err := syllable.New(
//	    syllable.WithBuiltin(),
//	    syllable.WithLoader(syllable.NewFSLoader(os.DirFS("dict"))),
//	)
func New(opts ...Option) (*Dictionary, error) {
	b := &builder{}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return build(b.records)
}

// WithRecords adds records to the dictionary.
func WithRecords(records ...Record) Option {
	return func(b *builder) error {
		b.records = append(b.records, records...)
		return nil
	}
}

// WithBuiltin adds the static syllable table compiled into the binary.
func WithBuiltin() Option {
	return func(b *builder) error {
		b.records = append(b.records, builtinRecords()...)
		return nil
	}
}

// WithLoader adds every record produced by the loader.
func WithLoader(l Loader) Option {
	return func(b *builder) error {
		if l == nil {
			return nil
		}
		records, err := l.Load()
		if err != nil {
			return err
		}
		b.records = append(b.records, records...)
		return nil
	}
}

// Extend returns a new dictionary containing the receiver's records plus the given ones.
// The receiver is left untouched.
func (d *Dictionary) Extend(records ...Record) (*Dictionary, error) {
	all := make([]Record, 0, len(d.records)+len(records))
	all = append(all, d.Records()...)
	all = append(all, records...)
	return build(all)
}

// Lookup returns the record stored under text.
func (d *Dictionary) Lookup(text string) (Record, bool) {
	r, ok := d.records[text]
	return r, ok
}

// Keys returns all syllable keys, longest first, ties in lexical order.
func (d *Dictionary) Keys() []string {
	return slices.Clone(d.keys)
}

// Records returns all records in Keys order.
func (d *Dictionary) Records() []Record {
	out := make([]Record, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.records[k])
	}
	return out
}

// Len returns the number of records.
func (d *Dictionary) Len() int {
	return len(d.records)
}

// MaxKeyLen returns the length of the longest key in codepoints.
func (d *Dictionary) MaxKeyLen() int {
	return d.maxKeyLen
}

func build(records []Record) (*Dictionary, error) {
	d := &Dictionary{
		records: make(map[string]Record, len(records)),
		keys:    make([]string, 0, len(records)),
	}

	for _, r := range records {
		if err := Validate(r); err != nil {
			return nil, err
		}

		key := normalizeKey(r.Text)
		if _, exists := d.records[key]; exists {
			return nil, wrapKey(ErrDuplicateSyllable, key)
		}

		r.Text = key
		d.records[key] = r
		d.keys = append(d.keys, key)
		d.maxKeyLen = max(d.maxKeyLen, utf8.RuneCountInString(key))
	}

	slices.SortFunc(d.keys, func(a, b string) int {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return lb - la
		}
		return strings.Compare(a, b)
	})

	return d, nil
}

func normalizeKey(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

func wrapKey(err error, key string) error {
	return fmt.Errorf("%w: %q", err, key)
}
