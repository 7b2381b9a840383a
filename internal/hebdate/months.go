package hebdate

// Month numbering follows the convention used throughout this module:
// Nisan=1 through Shvat=11, Adar=12 (Adar I in leap years) and Adar II=13,
// which exists only in leap years. This matches the hdate library.
const (
	monthNisan  = 1
	monthAdar   = 12
	monthAdarII = 13
)

// monthLabels holds the plain Hebrew labels for months 1..11.
// Adar is resolved separately because its label depends on the year.
var monthLabels = []string{
	"", // 1-based
	"ניסן",
	"אייר",
	"סיון",
	"תמוז",
	"אב",
	"אלול",
	"תשרי",
	"חשון",
	"כסלו",
	"טבת",
	"שבט",
}

const (
	labelAdar   = "אדר"
	labelAdarI  = "אדר א"
	labelAdarII = "אדר ב"

	// monthInPrefix is the ב particle prepended to the month in the
	// canonical rendering ("בטבת").
	monthInPrefix = "ב"

	// yearMillenniumPrefix is the ה letter standing for the fifth
	// millennium, prepended to the three-digit year remainder.
	yearMillenniumPrefix = "ה"
)

// spellingVariants maps alternative spellings seen in legacy free text
// onto the labels this module renders.
var spellingVariants = map[string]string{
	"חשוון":  "חשון",
	"מרחשון": "חשון",
	"סיוון":  "סיון",
	"ניסאן":  "ניסן",
}

// MonthLabel returns the plain (un-prefixed) label of a month in a given
// year, resolving the leap-dependent naming of the two Adars.
func MonthLabel(month, year int) (string, error) {
	switch {
	case month == monthAdarII:
		if !IsLeapYear(year) {
			return "", ErrInvalidHebrewDate
		}
		return labelAdarII, nil
	case month == monthAdar:
		if IsLeapYear(year) {
			return labelAdarI, nil
		}
		return labelAdar, nil
	case month >= monthNisan && month < monthAdar:
		return monthLabels[month], nil
	default:
		return "", ErrInvalidHebrewDate
	}
}

// MonthLabelVariants returns every plain label a month may carry in free
// text, independent of any year. Month 12 yields both the plain and the
// leap-year "first Adar" labels, since legacy text rarely distinguishes.
func MonthLabelVariants(month int) []string {
	switch {
	case month == monthAdarII:
		return []string{labelAdarII}
	case month == monthAdar:
		return []string{labelAdar, labelAdarI}
	case month >= monthNisan && month < monthAdar:
		return []string{monthLabels[month]}
	default:
		return nil
	}
}

// canonicalMonthWord folds spelling variants onto the module's labels and
// reports whether the word is (the first word of) a month label.
func canonicalMonthWord(w string) (string, bool) {
	if v, ok := spellingVariants[w]; ok {
		return v, true
	}
	if w == labelAdar {
		return w, true
	}
	for _, l := range monthLabels[1:] {
		if w == l {
			return w, true
		}
	}
	return w, false
}
