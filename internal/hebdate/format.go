package hebdate

import (
	"errors"
	"strings"
)

// ErrParseCanonical indicates a string that is not a canonical Hebrew date
// rendering.
var ErrParseCanonical = errors.New("hebdate: not a canonical date string")

// Parts is the structured string triple used by form fields: day and year
// as punctuated numerals, month as its plain label without the ב prefix.
type Parts struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// Format returns the canonical rendering of a Hebrew date:
// "<day numeral> ב<month label> ה<year numeral>", e.g. ה' בטבת התשפ"ד.
// Formatting the parsed value of an already-canonical string reproduces the
// same string.
func Format(h HebrewDate) (string, error) {
	day, err := Gematria(h.Day)
	if err != nil {
		return "", err
	}
	label, err := MonthLabel(h.Month, h.Year)
	if err != nil {
		return "", err
	}
	return day + " " + monthInPrefix + label + " " + yearNumeral(h.Year), nil
}

// FormatParts returns the structured triple for h.
func FormatParts(h HebrewDate) (Parts, error) {
	day, err := Gematria(h.Day)
	if err != nil {
		return Parts{}, err
	}
	label, err := MonthLabel(h.Month, h.Year)
	if err != nil {
		return Parts{}, err
	}
	return Parts{Day: day, Month: label, Year: yearNumeral(h.Year)}, nil
}

// yearNumeral renders the year's last three digits, prepends the ה
// millennium letter, and only then punctuates. The order matters: the
// gershayim must land before the final letter of the prefixed string,
// so 5784 becomes התשפ"ד and not ה"תשפד.
func yearNumeral(year int) string {
	return punctuate(yearMillenniumPrefix + letters(year%1000))
}

// ParseCanonical parses a string produced by Format back into a HebrewDate.
// It accepts only the canonical shape: day numeral, ב-prefixed month label
// (one or two words), ה-prefixed year numeral.
func ParseCanonical(s string) (HebrewDate, error) {
	tokens := strings.Fields(s)
	if len(tokens) < 3 || len(tokens) > 4 {
		return HebrewDate{}, ErrParseCanonical
	}

	yearTok := StripMarks(tokens[len(tokens)-1])
	if !strings.HasPrefix(yearTok, yearMillenniumPrefix) {
		return HebrewDate{}, ErrParseCanonical
	}
	year := 5000 + GematriaValue(strings.TrimPrefix(yearTok, yearMillenniumPrefix))

	day := GematriaValue(tokens[0])
	if day < 1 || day > 30 {
		return HebrewDate{}, ErrParseCanonical
	}

	monthTokens := tokens[1 : len(tokens)-1]
	first := StripMarks(monthTokens[0])
	if !strings.HasPrefix(first, monthInPrefix) {
		return HebrewDate{}, ErrParseCanonical
	}
	label := strings.TrimPrefix(first, monthInPrefix)
	if len(monthTokens) == 2 {
		label += " " + StripMarks(monthTokens[1])
	}

	month, err := monthFromLabel(label, year)
	if err != nil {
		return HebrewDate{}, err
	}

	h := HebrewDate{Year: year, Month: month, Day: day}
	if err := Validate(h); err != nil {
		return HebrewDate{}, err
	}
	return h, nil
}

// monthFromLabel resolves a plain month label for a specific year.
func monthFromLabel(label string, year int) (int, error) {
	if v, ok := spellingVariants[label]; ok {
		label = v
	}
	for m := monthNisan; m <= MonthsInYear(year); m++ {
		got, err := MonthLabel(m, year)
		if err != nil {
			continue
		}
		if got == label {
			return m, nil
		}
	}
	// Plain "Adar" written in a leap year refers to the first Adar.
	if label == labelAdar && IsLeapYear(year) {
		return monthAdar, nil
	}
	return 0, ErrParseCanonical
}
