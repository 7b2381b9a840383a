package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/hebdate"
	"github.com/zikaron/yahrzeit/internal/memorial"
)

// buildCalendar renders the yahrzeit feed for every record that carries a
// usable death date. Records that only carry free-form Hebrew text cannot be
// placed on the civil calendar and are left to the fuzzy day matcher.
func (g *Generator) buildCalendar(records []memorial.Reconciled, now time.Time, reminderTrigger string) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	currentYear := hebdate.FromGregorian(now).Year

	for _, rec := range records {
		death, ok := anniversaryDate(rec)
		if !ok {
			continue
		}

		events, err := g.createEvents(rec.Name, death, currentYear, reminderTrigger)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty calendar still has to be valid VCALENDAR so feed clients
	// do not flag the subscription.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// anniversaryDate resolves the Hebrew death date a record's yahrzeit is
// observed on: the structured date when present, otherwise derived from the
// civil date.
func anniversaryDate(rec memorial.Reconciled) (hebdate.HebrewDate, bool) {
	if rec.Unmatchable {
		return hebdate.HebrewDate{}, false
	}
	if rec.DeathHebrew != nil {
		if hebdate.Validate(*rec.DeathHebrew) != nil {
			return hebdate.HebrewDate{}, false
		}
		return *rec.DeathHebrew, true
	}
	if rec.DeathGregorian != nil {
		return hebdate.FromGregorian(*rec.DeathGregorian), true
	}
	return hebdate.HebrewDate{}, false
}

// createEvents generates the anniversary events for the previous, current
// and next Hebrew years, so calendar clients scrolling either way see the
// yahrzeit without an immediate re-sync.
func (g *Generator) createEvents(name string, death hebdate.HebrewDate, currentYear int, reminderTrigger string) ([]*ical.Event, error) {
	canonical, err := hebdate.Format(death)
	if err != nil {
		return nil, err
	}

	// Deterministic UID base so refreshes never duplicate events.
	input := fmt.Sprintf(config.FormatHashInput, name, canonical, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	summary := fmt.Sprintf(config.FallbackSummary, name)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(name)
	}

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		observed, ok := observedDate(death, y)
		if !ok {
			continue
		}
		civil, err := hebdate.ToGregorian(observed)
		if err != nil {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropDescription, canonical)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(civil)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, nil
}

// observedDate projects a death date into Hebrew year y. A death in Adar II
// is observed in Adar when y has no leap month; a day the projected month
// does not reach (30 Cheshvan, 30 Kislev) has no observance in y and the
// year is skipped.
func observedDate(death hebdate.HebrewDate, y int) (hebdate.HebrewDate, bool) {
	month := death.Month
	if month > hebdate.MonthsInYear(y) {
		month = month - 1
	}
	if death.Day > hebdate.DaysInMonth(month, y) {
		return hebdate.HebrewDate{}, false
	}
	return hebdate.HebrewDate{Year: y, Month: month, Day: death.Day}, true
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
