package hebdate

import (
	"errors"
	"time"

	"github.com/hebcal/hdate"
)

// ErrInvalidHebrewDate indicates a month/day combination that does not
// exist in the given year, such as month 13 outside a leap year or day 30
// in a 29-day month.
var ErrInvalidHebrewDate = errors.New("hebdate: month/day out of range for year")

// HebrewDate is an immutable lunisolar calendar date. Month uses the
// Nisan=1 numbering described in months.go. Values are constructed by
// conversion or parsing and replaced, never mutated.
type HebrewDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// FromGregorian converts a civil date to its Hebrew equivalent.
// Total: every valid civil date maps to exactly one Hebrew date.
func FromGregorian(t time.Time) HebrewDate {
	hd := hdate.FromGregorian(t.Year(), t.Month(), t.Day())
	return HebrewDate{Year: hd.Year(), Month: int(hd.Month()), Day: hd.Day()}
}

// ToGregorian converts a Hebrew date to the civil calendar, validating the
// month and day against the year's actual month count and lengths.
func ToGregorian(h HebrewDate) (time.Time, error) {
	if err := Validate(h); err != nil {
		return time.Time{}, err
	}
	return hdate.New(h.Year, hdate.HMonth(h.Month), h.Day).Gregorian(), nil
}

// Validate reports whether h names a day that exists.
func Validate(h HebrewDate) error {
	if h.Month < 1 || h.Month > hdate.MonthsInYear(h.Year) {
		return ErrInvalidHebrewDate
	}
	if h.Day < 1 || h.Day > DaysInMonth(h.Month, h.Year) {
		return ErrInvalidHebrewDate
	}
	return nil
}

// IsLeapYear reports whether the Hebrew year has the inserted 13th month.
func IsLeapYear(year int) bool {
	return hdate.IsLeapYear(year)
}

// DaysInMonth returns the length of a month in a given year. Cheshvan and
// Kislev vary between 29 and 30 days depending on the year type.
func DaysInMonth(month, year int) int {
	return hdate.DaysInMonth(hdate.HMonth(month), year)
}

// MonthsInYear returns 12, or 13 in leap years.
func MonthsInYear(year int) int {
	return hdate.MonthsInYear(year)
}
