package hebdate

import (
	"errors"
	"strings"
)

// ErrInvalidNumeral indicates a non-positive integer was passed to the
// numeral renderer. Valid dates never produce this; it is a caller bug.
var ErrInvalidNumeral = errors.New("hebdate: numeral must be a positive integer")

// Punctuation marks used in alphabetic numerals. Rendering emits the ASCII
// forms; parsing and normalization accept the Unicode geresh/gershayim too,
// since legacy data mixes both.
const (
	geresh    = "'"
	gershayim = `"`
)

const numeralMarks = "'\"׳״"

var gematriaLetters = []struct {
	val  int
	char string
}{
	{400, "ת"},
	{300, "ש"},
	{200, "ר"},
	{100, "ק"},
	{90, "צ"},
	{80, "פ"},
	{70, "ע"},
	{60, "ס"},
	{50, "נ"},
	{40, "מ"},
	{30, "ל"},
	{20, "כ"},
	{10, "י"},
	{9, "ט"},
	{8, "ח"},
	{7, "ז"},
	{6, "ו"},
	{5, "ה"},
	{4, "ד"},
	{3, "ג"},
	{2, "ב"},
	{1, "א"},
}

// letterValues maps each letter, including final forms found in legacy
// free text, back to its numeric value.
var letterValues = map[rune]int{
	'א': 1, 'ב': 2, 'ג': 3, 'ד': 4, 'ה': 5, 'ו': 6, 'ז': 7, 'ח': 8, 'ט': 9,
	'י': 10, 'כ': 20, 'ך': 20, 'ל': 30, 'מ': 40, 'ם': 40, 'נ': 50, 'ן': 50,
	'ס': 60, 'ע': 70, 'פ': 80, 'ף': 80, 'צ': 90, 'ץ': 90,
	'ק': 100, 'ר': 200, 'ש': 300, 'ת': 400,
}

// Gematria renders a positive integer in alphabetic-numeral notation with
// punctuation: a single-letter result gets a trailing geresh, a longer one
// gets a gershayim before its final letter. 15 and 16 use the traditional
// ט+ו and ט+ז substitutions.
func Gematria(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidNumeral
	}
	return punctuate(letters(n)), nil
}

// letters produces the raw letter sequence for n without punctuation.
// Returns the empty string for n == 0 (a year remainder can be zero).
func letters(n int) string {
	if n == 15 {
		return "טו"
	}
	if n == 16 {
		return "טז"
	}

	var b strings.Builder
	remaining := n
	for _, l := range gematriaLetters {
		for remaining >= l.val {
			b.WriteString(l.char)
			remaining -= l.val
		}
	}
	return b.String()
}

// punctuate inserts the numeral marks: geresh after a single letter,
// gershayim immediately before the last letter otherwise.
func punctuate(s string) string {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return s
	case 1:
		return s + geresh
	default:
		return string(runes[:len(runes)-1]) + gershayim + string(runes[len(runes)-1:])
	}
}

// StripMarks removes geresh and gershayim marks (ASCII and Unicode forms)
// so a numeral can be re-derived or compared. Stripping before re-applying
// punctuation is what makes rendering idempotent.
func StripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(numeralMarks, r) {
			return -1
		}
		return r
	}, s)
}

// GematriaValue sums the letter values of s, ignoring punctuation marks.
// Characters that are not numeral letters contribute nothing, so the empty
// string and non-numeral input yield 0.
func GematriaValue(s string) int {
	total := 0
	for _, r := range StripMarks(s) {
		total += letterValues[r]
	}
	return total
}
