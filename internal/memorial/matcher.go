package memorial

import (
	"strings"

	"github.com/zikaron/yahrzeit/internal/hebdate"
)

// MatchDay returns the records whose annual yahrzeit falls on the given
// Hebrew (day, month). The year component is ignored entirely: a yahrzeit
// recurs every year on the same day and month.
//
// Each record is evaluated against the first tier whose data it carries,
// and only that tier, so a record is included at most once:
//
//  1. Structured: the structured Hebrew date matches (day, month) exactly.
//  2. Derived: the civil death date, converted, matches (day, month).
//  3. Fuzzy text: the legacy free text contains a known phrase variant of
//     the target date, or as a looser fallback both the bare month label
//     and the bare day numeral as independent substrings.
//
// A record with none of the three death fields never matches.
func MatchDay(day, month int, records []Reconciled) []Reconciled {
	target, ok := newFuzzyTarget(day, month)
	if !ok {
		return nil
	}

	var matched []Reconciled
	for _, rec := range records {
		if matchRecord(day, month, target, rec) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func matchRecord(day, month int, target fuzzyTarget, rec Reconciled) bool {
	if rec.DeathHebrew != nil {
		return rec.DeathHebrew.Day == day && rec.DeathHebrew.Month == month
	}
	if rec.DeathGregorian != nil {
		h := hebdate.FromGregorian(*rec.DeathGregorian)
		return h.Day == day && h.Month == month
	}
	if rec.DeathHebrewText != "" {
		return target.matches(rec.DeathHebrewText)
	}
	return false
}

// fuzzyTarget precomputes the acceptable phrase variants for one target
// (day, month) so the text tier does constant work per record.
type fuzzyTarget struct {
	// variants are normalized day+month phrases the text may contain.
	variants []string
	// labels are the bare month labels for the loose fallback.
	labels []string
	// dayBare is the unpunctuated day numeral for the loose fallback.
	dayBare string
}

func newFuzzyTarget(day, month int) (fuzzyTarget, bool) {
	dayPunct, err := hebdate.Gematria(day)
	if err != nil {
		return fuzzyTarget{}, false
	}
	labels := hebdate.MonthLabelVariants(month)
	if len(labels) == 0 {
		return fuzzyTarget{}, false
	}
	dayBare := hebdate.StripMarks(dayPunct)

	// Numeral-only and ב-prefixed combinations, punctuated and bare.
	// Normalization folds several of them together; the set is deduped.
	seen := make(map[string]struct{})
	var variants []string
	for _, label := range labels {
		for _, d := range []string{dayPunct, dayBare} {
			for _, m := range []string{"ב" + label, label} {
				v := hebdate.NormalizeDateText(d + " " + m)
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				variants = append(variants, v)
			}
		}
	}

	return fuzzyTarget{variants: variants, labels: labels, dayBare: dayBare}, true
}

// matches checks the record text against the phrase variants, then falls
// back to independent containment of month label and day numeral. The
// fallback trades precision for recall on inconsistently punctuated legacy
// text, so a prefixed or embedded day numeral (בכ"ה) still counts.
func (t fuzzyTarget) matches(text string) bool {
	norm := hebdate.NormalizeDateText(text)
	for _, v := range t.variants {
		if strings.Contains(norm, v) {
			return true
		}
	}
	for _, label := range t.labels {
		if strings.Contains(norm, label) && t.dayContained(norm) {
			return true
		}
	}
	return false
}

// dayContained applies the loose day check as substring containment. A
// one-letter numeral would collide with that letter in any word at all, so
// only those are required to stand as a separate word.
func (t fuzzyTarget) dayContained(norm string) bool {
	if len([]rune(t.dayBare)) == 1 {
		return hebdate.ContainsDayWord(norm, t.dayBare)
	}
	return strings.Contains(norm, t.dayBare)
}
