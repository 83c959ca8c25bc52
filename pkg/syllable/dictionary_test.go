package syllable_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes/pkg/syllable"
)

func TestBuiltin(t *testing.T) {
	t.Parallel()

	dict, err := syllable.Builtin()
	require.NoError(t, err)
	require.Positive(t, dict.Len())

	t.Run("every record has a long form", func(t *testing.T) {
		t.Parallel()
		for _, r := range dict.Records() {
			assert.NotEmpty(t, r.Forms.Long, "record %q", r.Text)
		}
	})

	t.Run("max key length matches longest key", func(t *testing.T) {
		t.Parallel()
		longest := 0
		for _, k := range dict.Keys() {
			longest = max(longest, utf8.RuneCountInString(k))
		}
		require.Equal(t, longest, dict.MaxKeyLen())
	})

	t.Run("keys are ordered longest first", func(t *testing.T) {
		t.Parallel()
		keys := dict.Keys()
		for i := 1; i < len(keys); i++ {
			require.GreaterOrEqual(t, utf8.RuneCountInString(keys[i-1]), utf8.RuneCountInString(keys[i]))
		}
	})

	t.Run("lookup known syllable", func(t *testing.T) {
		t.Parallel()
		r, ok := dict.Lookup("ကျော်")
		require.True(t, ok)
		require.Equal(t, "Kyaw", r.Forms.Long)
		require.Equal(t, syllable.CategoryGivenName, r.Category)
	})

	t.Run("lookup unknown syllable", func(t *testing.T) {
		t.Parallel()
		_, ok := dict.Lookup("5")
		require.False(t, ok)
	})
}

func TestMustBuiltin(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() { syllable.MustBuiltin() })
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate keys", func(t *testing.T) {
		t.Parallel()
		_, err := syllable.New(
			syllable.WithRecords(
				syllable.Record{Text: "ကျော်", Forms: syllable.Forms{Long: "Kyaw"}},
				syllable.Record{Text: "ကျော်", Forms: syllable.Forms{Long: "Jaw"}},
			),
		)
		require.ErrorIs(t, err, syllable.ErrDuplicateSyllable)
	})

	t.Run("rejects duplicates against builtin", func(t *testing.T) {
		t.Parallel()
		_, err := syllable.New(
			syllable.WithBuiltin(),
			syllable.WithRecords(syllable.Record{Text: "မောင်", Forms: syllable.Forms{Long: "Mg"}}),
		)
		require.ErrorIs(t, err, syllable.ErrDuplicateSyllable)
	})

	t.Run("rejects record without long form", func(t *testing.T) {
		t.Parallel()
		_, err := syllable.New(
			syllable.WithRecords(syllable.Record{Text: "သီ", Forms: syllable.Forms{Short: "T"}}),
		)
		require.ErrorIs(t, err, syllable.ErrMalformedRecord)
		require.Contains(t, err.Error(), "သီ")
	})

	t.Run("rejects record without text", func(t *testing.T) {
		t.Parallel()
		_, err := syllable.New(
			syllable.WithRecords(syllable.Record{Text: "  ", Forms: syllable.Forms{Long: "X"}}),
		)
		require.ErrorIs(t, err, syllable.ErrMalformedRecord)
	})

	t.Run("normalizes keys to NFC", func(t *testing.T) {
		t.Parallel()
		dict, err := syllable.New(
			syllable.WithRecords(syllable.Record{Text: "\u1025\u102e\u1038", Forms: syllable.Forms{Long: "U"}}),
		)
		require.NoError(t, err)

		r, ok := dict.Lookup("\u1026\u1038")
		require.True(t, ok)
		require.Equal(t, "U", r.Forms.Long)
		require.Equal(t, 2, dict.MaxKeyLen())
	})

	t.Run("decomposed duplicate collides with precomposed key", func(t *testing.T) {
		t.Parallel()
		_, err := syllable.New(
			syllable.WithRecords(
				syllable.Record{Text: "\u1026\u1038", Forms: syllable.Forms{Long: "U"}},
				syllable.Record{Text: "\u1025\u102e\u1038", Forms: syllable.Forms{Long: "Oo"}},
			),
		)
		require.ErrorIs(t, err, syllable.ErrDuplicateSyllable)
	})

	t.Run("prefix keys are allowed", func(t *testing.T) {
		t.Parallel()
		dict, err := syllable.New(
			syllable.WithRecords(
				syllable.Record{Text: "ကျော", Forms: syllable.Forms{Long: "Kyaw"}},
				syllable.Record{Text: "ကျော်", Forms: syllable.Forms{Long: "Kyaw"}},
			),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"ကျော်", "ကျော"}, dict.Keys())
		require.Equal(t, 5, dict.MaxKeyLen())
	})

	t.Run("empty dictionary", func(t *testing.T) {
		t.Parallel()
		dict, err := syllable.New()
		require.NoError(t, err)
		require.Zero(t, dict.Len())
		require.Zero(t, dict.MaxKeyLen())
		require.Empty(t, dict.Keys())
	})
}

func TestDictionary_Extend(t *testing.T) {
	t.Parallel()

	base := syllable.MustBuiltin()

	t.Run("adds records without touching receiver", func(t *testing.T) {
		t.Parallel()
		extended, err := base.Extend(syllable.Record{Text: "သီ", Forms: syllable.Forms{Long: "Thi"}})
		require.NoError(t, err)
		require.Equal(t, base.Len()+1, extended.Len())

		_, ok := extended.Lookup("သီ")
		require.True(t, ok)
		_, ok = base.Lookup("သီ")
		require.False(t, ok)
	})

	t.Run("rejects existing key", func(t *testing.T) {
		t.Parallel()
		_, err := base.Extend(syllable.Record{Text: "ဦး", Forms: syllable.Forms{Long: "Oo"}})
		require.ErrorIs(t, err, syllable.ErrDuplicateSyllable)
	})
}

func TestRecord_FrequencyClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		freq float64
		want syllable.FrequencyClass
	}{
		{0.91, syllable.VeryCommon},
		{0.75, syllable.VeryCommon},
		{0.55, syllable.Common},
		{0.3, syllable.Uncommon},
		{0.1, syllable.Rare},
		{0, syllable.Rare},
	}

	for _, tt := range tests {
		r := syllable.Record{Frequency: tt.freq}
		assert.Equal(t, tt.want, r.FrequencyClass(), "frequency %v", tt.freq)
	}

	assert.Equal(t, "very-common", syllable.VeryCommon.String())
	assert.Equal(t, "rare", syllable.Rare.String())
}
