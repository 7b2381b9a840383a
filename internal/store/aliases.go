package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/hebdate"
	"github.com/zikaron/yahrzeit/internal/memorial"
)

// ErrMissingName rejects a raw record without a display name.
var ErrMissingName = errors.New("store: record has no name")

// rawRecord is the wire shape of a stored record, including every known
// legacy field alias. Aliases are folded onto the canonical memorial.Record
// here, at the store boundary, so the reconciler only ever sees one shape.
type rawRecord struct {
	ID         any    `json:"id"`
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	MotherName string `json:"mother_name"`
	Gender     string `json:"gender"`
	Notes      string `json:"notes"`

	DeathGregorian string `json:"death_date_gregorian"`
	// GregorianDate is a legacy alias of death_date_gregorian.
	GregorianDate string `json:"gregorian_date"`

	DeathHebrewText string `json:"death_date_hebrew"`
	// HebrewDateText is a legacy alias of death_date_hebrew.
	HebrewDateText string `json:"hebrew_date_text"`

	DeathHebrew *rawHebrewDate `json:"hebrew_date_struct"`
	// LegacyHebrew is an older structured field using the civil
	// (Tishrei=1) month numbering.
	LegacyHebrew *rawHebrewDate `json:"hebrew_date"`

	BirthGregorian  string         `json:"birth_date_gregorian"`
	BirthHebrewText string         `json:"birth_date_hebrew"`
	BirthHebrew     *rawHebrewDate `json:"birth_date_struct"`
}

type rawHebrewDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// civilDateLayouts are the accepted representations of civil dates.
var civilDateLayouts = []string{
	config.DateFormatFullDash,
	config.DateFormatFullBasic,
	config.DateFormatRFC3339,
	config.DateFormatFullT,
}

// normalize folds aliases and parses date strings into the canonical record.
func (r rawRecord) normalize() (memorial.Record, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return memorial.Record{}, ErrMissingName
	}

	rec := memorial.Record{
		ID:         formatID(r.ID),
		Name:       name,
		FatherName: strings.TrimSpace(r.FatherName),
		MotherName: strings.TrimSpace(r.MotherName),
		Gender:     memorial.Gender(r.Gender),
		Notes:      r.Notes,
	}

	rec.DeathHebrewText = firstNonEmpty(r.DeathHebrewText, r.HebrewDateText)
	rec.BirthHebrewText = r.BirthHebrewText

	// A malformed civil date never rejects the whole record: the field is
	// nulled and flagged so the Hebrew fields stay usable downstream.
	rec.DeathGregorian = civilField(&rec, firstNonEmpty(r.DeathGregorian, r.GregorianDate))
	rec.BirthGregorian = civilField(&rec, r.BirthGregorian)

	if r.DeathHebrew != nil {
		rec.DeathHebrew = &hebdate.HebrewDate{
			Year: r.DeathHebrew.Year, Month: r.DeathHebrew.Month, Day: r.DeathHebrew.Day,
		}
	} else if r.LegacyHebrew != nil {
		rec.DeathHebrew = &hebdate.HebrewDate{
			Year:  r.LegacyHebrew.Year,
			Month: civilToNisanMonth(r.LegacyHebrew.Month),
			Day:   r.LegacyHebrew.Day,
		}
	}

	if r.BirthHebrew != nil {
		rec.BirthHebrew = &hebdate.HebrewDate{
			Year: r.BirthHebrew.Year, Month: r.BirthHebrew.Month, Day: r.BirthHebrew.Day,
		}
	}

	return rec, nil
}

// civilField parses one civil date string, flagging the record and logging
// instead of failing when the value is malformed.
func civilField(rec *memorial.Record, value string) *time.Time {
	t, err := parseCivilDate(value)
	if err != nil {
		slog.Warn(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyName, rec.Name,
			config.LogKeyValue, value,
		)
		rec.MalformedCivilDate = true
		return nil
	}
	return t
}

// civilToNisanMonth maps the legacy civil numbering (Tishrei=1 … Elul=12)
// onto the Nisan=1 numbering used everywhere in this module. Values outside
// 1..12 pass through unchanged; the reconciler flags them if invalid.
func civilToNisanMonth(m int) int {
	switch {
	case m >= 1 && m <= 6:
		return m + 6
	case m >= 7 && m <= 12:
		return m - 6
	default:
		return m
	}
}

// parseCivilDate parses a civil date string in any accepted layout.
// Empty input yields nil without error.
func parseCivilDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range civilDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: %q", config.ErrDateParse, s)
}

// formatID renders the store identifier, which legacy data stores as either
// a number or a string.
func formatID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
