package memorial

import (
	"strings"
	"time"

	"github.com/zikaron/yahrzeit/internal/hebdate"
)

// Field names used in the change journal.
const (
	FieldDeathHebrewText = "death_date_hebrew"
	FieldDeathHebrew     = "hebrew_date_struct"
	FieldBirthHebrewText = "birth_date_hebrew"
	FieldBirthHebrew     = "birth_date_struct"
	FieldFatherName      = "father_name"
	FieldMotherName      = "mother_name"
	FieldGender          = "gender"
)

// sentinelDates are placeholder values some legacy exports used for "no date".
var sentinelDates = []string{"00-00-0000", "0000-00-00"}

// Reconcile repairs one record's dual-calendar date fields and missing
// family fields. It is pure: the input is never mutated, a new Reconciled
// value is returned. Conversion failures become per-record flags, never
// errors, so one bad record cannot abort a batch.
//
// Death and birth fields are handled independently by the same rules:
//
//  1. Civil date present and Hebrew text absent or digit-polluted: both
//     Hebrew fields are regenerated from the civil date, unconditionally.
//  2. Civil date present and Hebrew text clean: the text is left untouched.
//     A user-entered Hebrew date may legitimately diverge from the naive
//     conversion (death after sunset); only digits mark it untrustworthy.
//  3. Hebrew data present without a civil date: left as-is. No parser for
//     arbitrary free-form Hebrew text is assumed to exist.
//  4. Both absent on the death side: the record is flagged unmatchable.
func Reconcile(r Record) Reconciled {
	out := Reconciled{Record: r}

	if r.DeathGregorian == nil && r.DeathHebrewText == "" && r.DeathHebrew == nil {
		out.Unmatchable = true
	}
	if r.MalformedCivilDate {
		out.NeedsReview = true
	}

	reconcileSide(&out, r.DeathGregorian, &out.DeathHebrewText, &out.DeathHebrew,
		FieldDeathHebrewText, FieldDeathHebrew)
	reconcileSide(&out, r.BirthGregorian, &out.BirthHebrewText, &out.BirthHebrew,
		FieldBirthHebrewText, FieldBirthHebrew)

	reconcileFamily(&out)

	return out
}

// reconcileSide applies the date rules to one death-or-birth field group.
func reconcileSide(out *Reconciled, greg *time.Time, text *string, strct **hebdate.HebrewDate, textField, structField string) {
	if greg != nil {
		if *text == "" || polluted(*text) {
			h := hebdate.FromGregorian(*greg)
			canonical, err := hebdate.Format(h)
			if err != nil {
				// Conversion output should always format; flag and keep raw fields.
				out.NeedsReview = true
				return
			}
			setStruct(out, strct, h, structField)
			setText(out, text, canonical, textField)
		}
		return
	}

	// No civil date. A structured Hebrew date with no text gets its
	// canonical rendering synthesized; free text alone stays untouched.
	if *strct != nil && *text == "" {
		canonical, err := hebdate.Format(**strct)
		if err != nil {
			out.NeedsReview = true
			return
		}
		setText(out, text, canonical, textField)
	}
}

// reconcileFamily fills missing family fields from the name and splits
// legacy mixed parent fields.
func reconcileFamily(out *Reconciled) {
	if out.FatherName != "" && out.MotherName == "" {
		if father, mother, ok := SplitMixedParents(out.FatherName); ok {
			out.Changes = append(out.Changes,
				FieldChange{Field: FieldFatherName, Old: out.FatherName, New: father},
				FieldChange{Field: FieldMotherName, Old: "", New: mother})
			out.FatherName = father
			out.MotherName = mother
		}
	}

	if out.FatherName == "" && out.MotherName == "" {
		p := ExtractParentage(out.Name)
		if p.FatherName != "" {
			out.Changes = append(out.Changes,
				FieldChange{Field: FieldFatherName, Old: "", New: p.FatherName})
			out.FatherName = p.FatherName
		}
		if out.Gender == GenderUnknown && p.Gender != GenderUnknown {
			out.Changes = append(out.Changes,
				FieldChange{Field: FieldGender, Old: "", New: string(p.Gender)})
			out.Gender = p.Gender
		}
	}
}

// polluted reports whether Hebrew date text is untrustworthy: it carries
// raw digits or equals a known placeholder.
func polluted(text string) bool {
	for _, s := range sentinelDates {
		if text == s {
			return true
		}
	}
	return strings.ContainsAny(text, "0123456789")
}

func setText(out *Reconciled, text *string, canonical, field string) {
	if *text == canonical {
		return
	}
	out.Changes = append(out.Changes, FieldChange{Field: field, Old: *text, New: canonical})
	*text = canonical
}

func setStruct(out *Reconciled, strct **hebdate.HebrewDate, h hebdate.HebrewDate, field string) {
	if *strct != nil && **strct == h {
		return
	}
	old := ""
	if *strct != nil {
		if prev, err := hebdate.Format(**strct); err == nil {
			old = prev
		}
	}
	next, err := hebdate.Format(h)
	if err != nil {
		next = ""
	}
	out.Changes = append(out.Changes, FieldChange{Field: field, Old: old, New: next})
	*strct = &h
}
