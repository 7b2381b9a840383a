package memorial

import (
	"time"

	"github.com/zikaron/yahrzeit/internal/hebdate"
)

// Gender of the commemorated person. Left empty when neither the record nor
// a name marker disambiguates it.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// Record is one person being commemorated, in the canonical field shape.
// Legacy field aliases are folded onto this shape at the store boundary
// before a Record ever reaches the reconciler.
type Record struct {
	// ID is the store's identifier, kept opaque.
	ID string `json:"id,omitempty"`

	// Name is the display name. It may embed a parentage marker token
	// ("משה בן עמרם") that the reconciler uses to fill missing family fields.
	Name string `json:"name"`

	FatherName string `json:"father_name,omitempty"`
	MotherName string `json:"mother_name,omitempty"`
	Gender     Gender `json:"gender,omitempty"`

	// DeathGregorian is the civil death date, when known.
	DeathGregorian *time.Time `json:"death_date_gregorian,omitempty"`

	// DeathHebrewText is the textual Hebrew death date, canonical or
	// free-form legacy.
	DeathHebrewText string `json:"death_date_hebrew,omitempty"`

	// DeathHebrew is the structured Hebrew death date, when known precisely.
	DeathHebrew *hebdate.HebrewDate `json:"hebrew_date_struct,omitempty"`

	// Birth fields mirror the death fields and never block reconciliation.
	BirthGregorian  *time.Time          `json:"birth_date_gregorian,omitempty"`
	BirthHebrewText string              `json:"birth_date_hebrew,omitempty"`
	BirthHebrew     *hebdate.HebrewDate `json:"birth_date_struct,omitempty"`

	Notes string `json:"notes,omitempty"`

	// MalformedCivilDate marks that a stored civil date string could not
	// be parsed. The store nulls the field and keeps the record, so the
	// remaining fields stay usable; the reconciler surfaces the flag as
	// NeedsReview. Not persisted.
	MalformedCivilDate bool `json:"-"`
}

// FieldChange records one repair the reconciler made, for operator audit.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Reconciled is the output of Reconcile: the repaired record plus flags.
// The reconciler owns the authority to overwrite the Hebrew date fields;
// nothing else writes them.
type Reconciled struct {
	Record

	// Unmatchable marks a record with neither a civil nor a Hebrew death
	// date. Such records are surfaced to an operator, never dropped.
	Unmatchable bool `json:"unmatchable,omitempty"`

	// NeedsReview marks a record whose date fields could not be repaired,
	// e.g. a structured date naming a day that does not exist.
	NeedsReview bool `json:"needs_review,omitempty"`

	// Changes lists the repairs applied, oldest first.
	Changes []FieldChange `json:"changes,omitempty"`
}

// Repaired reports whether reconciliation altered the record.
func (r Reconciled) Repaired() bool {
	return len(r.Changes) > 0
}
