package generator

import "math/rand/v2"

// Strategy is a resumable producer of candidate names.
// Next returns false once the strategy is exhausted and keeps returning false afterwards.
type Strategy interface {
	Name() string
	Next() (string, bool)
}

// Display names reported alongside each candidate
const (
	NameShort    = "Short & Catchy"
	NameKeyword  = "Keyword-Based"
	NamePersonal = "Name-Based"
	NameCombo    = "Short Combos"
)

var (
	keywordPrefixes = []string{"get", "try", "use", "hey", "my", "go", "the", "on", "to", "we", "so", "its", "run", "ask"}
	keywordSuffixes = []string{"hq", "app", "dev", "lab", "hub", "ly", "ify", "up", "now", "ai", "io", "os", "run", "go", "pro", "box", "kit", "ops"}

	namePrefixes = []string{"hey", "ask", "get", "hi", "by", "its", "im", "the", "yo", "mr", "dr", "go"}
	nameSuffixes = []string{"hq", "dev", "lab", "code", "builds", "works", "tech", "hub", "ops", "ai", "app", "run", "pro", "craft", "zone", "stack", "verse", "space"}

	// comboTLDs are the only TLDs worth spending three-letter names on
	comboTLDs = []string{".com", ".net", ".org", ".dev", ".io"}
)

// shuffle returns a shuffled copy of in; the input is never modified.
func shuffle(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// crossing walks bases in order, expands each base into stems and
// yields every stem joined with every TLD.
type crossing struct {
	name  string
	bases []string
	tlds  []string
	stems func(base string) []string

	base int
	cur  []string
	stem int
	tld  int
}

func (c *crossing) Name() string { return c.name }

func (c *crossing) Next() (string, bool) {
	if len(c.tlds) == 0 {
		return "", false
	}
	for {
		if c.cur == nil {
			if c.base >= len(c.bases) {
				return "", false
			}
			c.cur = c.stems(c.bases[c.base])
			c.stem, c.tld = 0, 0
		}
		if c.stem >= len(c.cur) {
			c.base++
			c.cur = nil
			continue
		}

		out := c.cur[c.stem] + c.tlds[c.tld]
		c.tld++
		if c.tld == len(c.tlds) {
			c.tld = 0
			c.stem++
		}
		return out, true
	}
}

func bare(base string) []string { return []string{base} }

// affixed expands a base into the bare base, then every prefix+base, then every base+suffix.
// Prefix and suffix order is reshuffled for every base.
func affixed(prefixes, suffixes []string) func(string) []string {
	return func(base string) []string {
		stems := make([]string, 0, 1+len(prefixes)+len(suffixes))
		stems = append(stems, base)
		for _, p := range shuffle(prefixes) {
			stems = append(stems, p+base)
		}
		for _, s := range shuffle(suffixes) {
			stems = append(stems, base+s)
		}
		return stems
	}
}

// ShortAndCatchy yields every dictionary word with every TLD.
func ShortAndCatchy(words, tlds []string) Strategy {
	return &crossing{name: NameShort, bases: shuffle(words), tlds: shuffle(tlds), stems: bare}
}

// KeywordBased yields each keyword bare, prefixed and suffixed, with every TLD.
func KeywordBased(keywords, tlds []string) Strategy {
	return &crossing{
		name:  NameKeyword,
		bases: shuffle(keywords),
		tlds:  shuffle(tlds),
		stems: affixed(keywordPrefixes, keywordSuffixes),
	}
}

// PersonalNameBased is KeywordBased with a vocabulary tuned for personal names.
func PersonalNameBased(names, tlds []string) Strategy {
	return &crossing{
		name:  NamePersonal,
		bases: shuffle(names),
		tlds:  shuffle(tlds),
		stems: affixed(namePrefixes, nameSuffixes),
	}
}

// ShortCombo yields all 26^3 lowercase three-letter names with the
// subset of tlds that is in comboTLDs.
func ShortCombo(tlds []string) Strategy {
	var allowed []string
	for _, t := range tlds {
		for _, c := range comboTLDs {
			if t == c {
				allowed = append(allowed, t)
				break
			}
		}
	}

	combos := make([]string, 0, 26*26*26)
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			for c := 'a'; c <= 'z'; c++ {
				combos = append(combos, string([]rune{a, b, c}))
			}
		}
	}

	return &crossing{name: NameCombo, bases: shuffle(combos), tlds: shuffle(allowed), stems: bare}
}
