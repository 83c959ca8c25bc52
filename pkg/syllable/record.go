package syllable

import "strings"

// Category tags the role a syllable plays inside a personal name.
type Category string

const (
	CategoryPrefixTitle Category = "prefix-title"
	CategoryGivenName   Category = "given-name-component"
	CategorySuffix      Category = "suffix"
	CategoryTerm        Category = "term"
)

// FrequencyClass is an ordinal usage-rank hint derived from Record.Frequency.
type FrequencyClass int

const (
	Rare FrequencyClass = iota
	Uncommon
	Common
	VeryCommon
)

func (c FrequencyClass) String() string {
	switch c {
	case VeryCommon:
		return "very-common"
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	default:
		return "rare"
	}
}

// Forms holds the stored romanizations of a syllable.
// Long is mandatory; Short and Academic are optional overrides.
type Forms struct {
	Long     string `json:"long" yaml:"long"`
	Short    string `json:"short,omitempty" yaml:"short,omitempty"`
	Academic string `json:"academic,omitempty" yaml:"academic,omitempty"`
}

// Record describes a single known syllable.
type Record struct {
	Text      string   `json:"text" yaml:"text"`
	Category  Category `json:"category" yaml:"category"`
	Forms     Forms    `json:"forms" yaml:"forms"`
	Frequency float64  `json:"frequency" yaml:"frequency"`
}

// FrequencyClass buckets the record frequency into an ordinal class.
func (r Record) FrequencyClass() FrequencyClass {
	switch {
	case r.Frequency >= 0.75:
		return VeryCommon
	case r.Frequency >= 0.5:
		return Common
	case r.Frequency >= 0.3:
		return Uncommon
	default:
		return Rare
	}
}

// Validate checks the construction-time invariants of a record.
func Validate(r Record) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrMalformedRecord
	}
	if strings.TrimSpace(r.Forms.Long) == "" {
		return wrapKey(ErrMalformedRecord, r.Text)
	}
	return nil
}
