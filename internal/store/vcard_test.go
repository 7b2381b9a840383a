package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCards(t *testing.T) {
	vcf := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Sarah Levi\r\n" +
		"DEATHDATE:2022-11-03\r\n" +
		"BDAY:1931-05-20\r\n" +
		"END:VCARD\r\n"

	records, err := decodeCards(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Sarah Levi", rec.Name)
	require.NotNil(t, rec.DeathGregorian)
	assert.Equal(t, time.Date(2022, 11, 3, 0, 0, 0, 0, time.UTC), *rec.DeathGregorian)
	require.NotNil(t, rec.BirthGregorian)
	assert.Equal(t, 1931, rec.BirthGregorian.Year())
}

// BIRTHDATE (RFC 6474) takes precedence over BDAY when both are present.
func TestDecodeCards_BirthDatePrecedence(t *testing.T) {
	vcf := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Sarah Levi\r\n" +
		"BIRTHDATE:1930-01-01\r\n" +
		"BDAY:1931-05-20\r\n" +
		"END:VCARD\r\n"

	records, err := decodeCards(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].BirthGregorian)
	assert.Equal(t, 1930, records[0].BirthGregorian.Year())
}

// A card without a death date still yields a record; the reconciler flags
// it downstream instead of the store dropping it.
func TestDecodeCards_NoDeathDate(t *testing.T) {
	vcf := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:David Azoulay\r\n" +
		"END:VCARD\r\n"

	records, err := decodeCards(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].DeathGregorian)
}

// A nameless card is skipped, matching the JSON source's policy.
func TestDecodeCards_NamelessSkipped(t *testing.T) {
	vcf := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"DEATHDATE:2022-11-03\r\n" +
		"END:VCARD\r\n" +
		"BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:David Azoulay\r\n" +
		"END:VCARD\r\n"

	records, err := decodeCards(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "David Azoulay", records[0].Name)
}

func TestDecodeCards_Empty(t *testing.T) {
	records, err := decodeCards(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
