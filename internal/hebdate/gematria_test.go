package hebdate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGematria verifies letter selection and punctuation placement for the
// day and year-remainder ranges the formatter feeds in.
func TestGematria(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected string
		desc     string
	}{
		{"single letter", 1, "א'", "one letter gets a trailing geresh"},
		{"single letter ten", 10, "י'", "10 is the single letter yod"},
		{"two letters", 11, `י"א`, "gershayim goes before the final letter"},
		{"fifteen substitution", 15, `ט"ו`, "15 avoids the divine-name letter pair"},
		{"sixteen substitution", 16, `ט"ז`, "16 avoids the divine-name letter pair"},
		{"twenty nine", 29, `כ"ט`, "last valid day of a short month"},
		{"thirty", 30, "ל'", "30 collapses to a single letter"},
		{"three letter year remainder", 784, `תשפ"ד`, "year remainders render the same way"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Gematria(tt.n)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got, tt.desc)
		})
	}
}

func TestGematria_Invalid(t *testing.T) {
	for _, n := range []int{0, -1, -30} {
		_, err := Gematria(n)
		assert.ErrorIs(t, err, ErrInvalidNumeral)
	}
}

// TestGematria_PunctuationShape covers the two punctuation invariants:
// single-letter results end in a geresh and never contain a gershayim,
// multi-letter results carry the gershayim immediately before the last rune.
func TestGematria_PunctuationShape(t *testing.T) {
	one, err := Gematria(1)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(one, geresh))
	assert.NotContains(t, one, gershayim)

	eleven, err := Gematria(11)
	assert.NoError(t, err)
	runes := []rune(eleven)
	assert.Equal(t, gershayim, string(runes[len(runes)-2]), "gershayim sits before the final letter")
}

func TestStripMarks(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{`ט"ו`, "טו"},
		{"א'", "א"},
		{"ט״ו", "טו"},
		{"כ׳", "כ"},
		{"טבת", "טבת"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, StripMarks(tt.in))
	}
}

// TestGematria_RoundTrip checks that parsing a rendered numeral recovers the
// original value for the full day range.
func TestGematria_RoundTrip(t *testing.T) {
	for n := 1; n <= 30; n++ {
		rendered, err := Gematria(n)
		assert.NoError(t, err)
		assert.Equal(t, n, GematriaValue(rendered), "value %d did not survive the round trip", n)
	}
}

func TestGematriaValue_FinalForms(t *testing.T) {
	// Legacy text sometimes carries final letter forms.
	assert.Equal(t, 40, GematriaValue("ם"))
	assert.Equal(t, 0, GematriaValue(""))
	assert.Equal(t, 0, GematriaValue("abc"))
}
