package syllable

// Builtin returns the dictionary built from the static table compiled into the binary.
func Builtin() (*Dictionary, error) {
	return New(WithBuiltin())
}

// MustBuiltin is like Builtin but panics if the static table is invalid.
func MustBuiltin() *Dictionary {
	d, err := Builtin()
	if err != nil {
		panic(err)
	}
	return d
}

func builtinRecords() []Record {
	return []Record{
		// Titles
		{Text: "ဦး", Category: CategoryPrefixTitle, Frequency: 0.91, Forms: Forms{Long: "U", Academic: "u:"}},
		{Text: "မောင်", Category: CategoryPrefixTitle, Frequency: 0.85, Forms: Forms{Long: "Maung", Short: "Mg", Academic: "maung"}},
		{Text: "ဒေါ်", Category: CategoryPrefixTitle, Frequency: 0.74, Forms: Forms{Long: "Daw", Short: "D", Academic: "dau"}},
		{Text: "ကို", Category: CategoryPrefixTitle, Frequency: 0.70, Forms: Forms{Long: "Ko", Academic: "ku"}},
		{Text: "မ", Category: CategoryPrefixTitle, Frequency: 0.66, Forms: Forms{Long: "Ma", Academic: "ma."}},

		// Given-name components
		{Text: "အောင်", Category: CategoryGivenName, Frequency: 0.79, Forms: Forms{Long: "Aung", Short: "A", Academic: "aung"}},
		{Text: "ကျော်", Category: CategoryGivenName, Frequency: 0.78, Forms: Forms{Long: "Kyaw", Short: "K", Academic: "kyau"}},
		{Text: "စန်း", Category: CategoryGivenName, Frequency: 0.72, Forms: Forms{Long: "San", Short: "S", Academic: "cann:"}},
		{Text: "ဝင်း", Category: CategoryGivenName, Frequency: 0.68, Forms: Forms{Long: "Win", Short: "W", Academic: "wang:"}},
		{Text: "ထွန်း", Category: CategoryGivenName, Frequency: 0.65, Forms: Forms{Long: "Htun", Short: "T", Academic: "htwann:"}},
		{Text: "ဇော်", Category: CategoryGivenName, Frequency: 0.62, Forms: Forms{Long: "Zaw", Short: "Z", Academic: "jau"}},
		{Text: "မင်း", Category: CategoryGivenName, Frequency: 0.58, Forms: Forms{Long: "Min", Short: "M", Academic: "mang:"}},
		{Text: "သန်း", Category: CategoryGivenName, Frequency: 0.55, Forms: Forms{Long: "Than", Short: "Th", Academic: "thann:"}},
		{Text: "မြင့်", Category: CategoryGivenName, Frequency: 0.52, Forms: Forms{Long: "Myint", Short: "My", Academic: "mrang."}},
		{Text: "ချစ်", Category: CategoryGivenName, Frequency: 0.48, Forms: Forms{Long: "Chit", Short: "Ch", Academic: "hkyac"}},
		{Text: "နိုင်", Category: CategoryGivenName, Frequency: 0.45, Forms: Forms{Long: "Naing", Short: "N", Academic: "nuing"}},
		{Text: "ထက်", Category: CategoryGivenName, Frequency: 0.44, Forms: Forms{Long: "Htet", Academic: "htak"}},
		{Text: "ဖြိုး", Category: CategoryGivenName, Frequency: 0.41, Forms: Forms{Long: "Phyo", Academic: "hpruil:"}},
		{Text: "နွယ်", Category: CategoryGivenName, Frequency: 0.38, Forms: Forms{Long: "Nwe", Academic: "nwai"}},
		{Text: "ခိုင်", Category: CategoryGivenName, Frequency: 0.36, Forms: Forms{Long: "Khaing", Academic: "hkuing"}},
		{Text: "လှိုင်", Category: CategoryGivenName, Frequency: 0.34, Forms: Forms{Long: "Hlaing", Academic: "hluing"}},
		{Text: "ဝေ", Category: CategoryGivenName, Frequency: 0.33, Forms: Forms{Long: "Wai", Academic: "we"}},

		// Suffixes
		{Text: "ကြီး", Category: CategorySuffix, Frequency: 0.31, Forms: Forms{Long: "Gyi", Academic: "kri:"}},
		{Text: "လေး", Category: CategorySuffix, Frequency: 0.29, Forms: Forms{Long: "Lay", Academic: "le:"}},

		// Compound terms that share a prefix with name syllables
		{Text: "နိုင်ငံ", Category: CategoryTerm, Frequency: 0.32, Forms: Forms{Long: "Naingngan", Short: "Nation", Academic: "nuingngam"}},
		{Text: "ပြည်သူ", Category: CategoryTerm, Frequency: 0.35, Forms: Forms{Long: "Pyithu", Short: "People", Academic: "pranysu"}},
	}
}
