package hebdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		date     HebrewDate
		expected string
	}{
		{
			name:     "single letter day",
			date:     HebrewDate{Year: 5784, Month: 10, Day: 5},
			expected: `ה' בטבת התשפ"ד`,
		},
		{
			name:     "fifteen substitution day",
			date:     HebrewDate{Year: 5784, Month: 11, Day: 15},
			expected: `ט"ו בשבט התשפ"ד`,
		},
		{
			name:     "first adar in leap year",
			date:     HebrewDate{Year: 5784, Month: 12, Day: 1},
			expected: `א' באדר א התשפ"ד`,
		},
		{
			name:     "second adar in leap year",
			date:     HebrewDate{Year: 5784, Month: 13, Day: 7},
			expected: `ז' באדר ב התשפ"ד`,
		},
		{
			name:     "plain adar in non-leap year",
			date:     HebrewDate{Year: 5785, Month: 12, Day: 7},
			expected: `ז' באדר התשפ"ה`,
		},
		{
			name:     "two letter day",
			date:     HebrewDate{Year: 5783, Month: 1, Day: 27},
			expected: `כ"ז בניסן התשפ"ג`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat_Invalid(t *testing.T) {
	_, err := Format(HebrewDate{Year: 5785, Month: 13, Day: 1})
	assert.ErrorIs(t, err, ErrInvalidHebrewDate, "Adar II does not exist in a non-leap year")

	_, err = Format(HebrewDate{Year: 5784, Month: 10, Day: 0})
	assert.ErrorIs(t, err, ErrInvalidNumeral)
}

// TestFormat_YearPunctuation: the gershayim must land inside the ה-prefixed
// year string, before its final letter, never after the prefix alone.
func TestFormat_YearPunctuation(t *testing.T) {
	got, err := Format(HebrewDate{Year: 5784, Month: 10, Day: 5})
	require.NoError(t, err)
	assert.Contains(t, got, `התשפ"ד`)
	assert.NotContains(t, got, `ה"תשפד`)
}

func TestFormatParts(t *testing.T) {
	parts, err := FormatParts(HebrewDate{Year: 5784, Month: 10, Day: 5})
	require.NoError(t, err)
	assert.Equal(t, "ה'", parts.Day)
	assert.Equal(t, "טבת", parts.Month, "form month label carries no ב prefix")
	assert.Equal(t, `התשפ"ד`, parts.Year)
}

// TestFormat_Idempotence: formatting the parsed value of a canonical string
// reproduces the string byte for byte.
func TestFormat_Idempotence(t *testing.T) {
	dates := []HebrewDate{
		{Year: 5784, Month: 10, Day: 5},
		{Year: 5784, Month: 12, Day: 30},
		{Year: 5784, Month: 13, Day: 7},
		{Year: 5785, Month: 12, Day: 14},
		{Year: 5743, Month: 7, Day: 1},
		{Year: 5784, Month: 11, Day: 15},
	}

	for _, d := range dates {
		first, err := Format(d)
		require.NoError(t, err)

		parsed, err := ParseCanonical(first)
		require.NoError(t, err, "canonical output must parse: %q", first)
		assert.Equal(t, d, parsed)

		second, err := Format(parsed)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestParseCanonical_Rejects(t *testing.T) {
	for _, s := range []string{
		"",
		"טבת",
		"ה' טבת",          // missing year
		`ה' בטבת תשפ"ד`,   // year without the ה millennium prefix
		`ה' בעלול התשפ"ד`, // unknown month label
	} {
		_, err := ParseCanonical(s)
		assert.Error(t, err, "expected rejection of %q", s)
	}
}
