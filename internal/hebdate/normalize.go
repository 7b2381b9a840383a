package hebdate

import "strings"

// NormalizeDateText reduces free-form Hebrew date text to a comparison key:
// numeral marks are removed, dashes and commas become spaces, the ב prefix
// is stripped from a word when the remainder is a month label, and internal
// whitespace collapses to single spaces.
//
// The key is used only for equivalence checks in fuzzy matching; it is not
// reversible and never rendered back to users.
//
// Known limitations: the prefix strip is label-driven, so a ב attached to
// anything other than a recognized month spelling is preserved, and numeral
// letters that collide with ordinary words are not disambiguated here.
func NormalizeDateText(s string) string {
	s = StripMarks(s)
	s = strings.NewReplacer("-", " ", ",", " ").Replace(s)

	words := strings.Fields(s)
	for i, w := range words {
		if v, ok := spellingVariants[w]; ok {
			words[i] = v
			continue
		}
		trimmed := strings.TrimPrefix(w, monthInPrefix)
		if trimmed == w {
			continue
		}
		if canonical, ok := canonicalMonthWord(trimmed); ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}

// ContainsDayWord reports whether the normalized text carries the bare day
// numeral as a standalone word. Requiring a whole word keeps one-letter day
// numerals from colliding with letters inside unrelated words.
func ContainsDayWord(normalized, dayBare string) bool {
	for _, w := range strings.Fields(normalized) {
		if w == dayBare {
			return true
		}
	}
	return false
}
