package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/hebdate"
	"github.com/zikaron/yahrzeit/internal/memorial"
)

func writeRecords(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunSync_JSONPipeline(t *testing.T) {
	// The record's civil death date equals the clock date, so its derived
	// Hebrew day and month match today's by construction.
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	path := writeRecords(t, `[
		{"name": "משה בן עמרם", "death_date_gregorian": "2024-01-15"},
		{"name": "דוד הלוי", "notes": "no dates at all"}
	]`)

	g := &Generator{Clock: FixedClock{T: now}}
	res, err := g.RunSync(context.Background(), SyncConfig{
		Mode:        config.SourceModeJSON,
		RecordsPath: path,
	})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	require.Len(t, res.Today, 1)
	assert.Equal(t, "משה בן עמרם", res.Today[0].Name)
	assert.Equal(t, hebdate.FromGregorian(now), res.TodayHebrew)

	// The dateless record is surfaced, not dropped.
	assert.True(t, res.Records[1].Unmatchable)

	feed := string(res.Feed)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "Yahrzeit: משה בן עמרם")
	assert.NotContains(t, feed, "דוד הלוי")
}

func TestRunSync_ReminderAlarm(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	path := writeRecords(t, `[{"name": "לאה", "death_date_gregorian": "2020-03-01"}]`)

	g := &Generator{Clock: FixedClock{T: now}}
	res, err := g.RunSync(context.Background(), SyncConfig{
		Mode:            config.SourceModeJSON,
		RecordsPath:     path,
		ReminderTrigger: "-P1D",
	})
	require.NoError(t, err)
	feed := string(res.Feed)
	assert.Contains(t, feed, "BEGIN:VALARM")
	assert.Contains(t, feed, "-P1D")
}

func TestRunSync_SourceErrors(t *testing.T) {
	g := &Generator{Clock: FixedClock{T: time.Now()}}
	tests := []struct {
		desc string
		cfg  SyncConfig
	}{
		{desc: "unsupported mode", cfg: SyncConfig{Mode: "carrier-pigeon"}},
		{desc: "json without path", cfg: SyncConfig{Mode: config.SourceModeJSON}},
		{desc: "vcard without path", cfg: SyncConfig{Mode: config.SourceModeVCard}},
		{desc: "web without url", cfg: SyncConfig{Mode: config.SourceModeWeb}},
		{desc: "web without fetcher", cfg: SyncConfig{Mode: config.SourceModeWeb, WebURL: "https://example.org/r.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := g.RunSync(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunSync_CancelledContext(t *testing.T) {
	path := writeRecords(t, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &Generator{Clock: FixedClock{T: time.Now()}}
	_, err := g.RunSync(ctx, SyncConfig{Mode: config.SourceModeJSON, RecordsPath: path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnniversaryDate(t *testing.T) {
	civil := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	structDate := hebdate.HebrewDate{Year: 5784, Month: 10, Day: 5}

	tests := []struct {
		desc   string
		rec    memorial.Reconciled
		want   hebdate.HebrewDate
		wantOK bool
	}{
		{
			desc:   "structured date preferred",
			rec:    memorial.Reconciled{Record: memorial.Record{DeathHebrew: &structDate, DeathGregorian: &civil}},
			want:   structDate,
			wantOK: true,
		},
		{
			desc:   "derived from civil date",
			rec:    memorial.Reconciled{Record: memorial.Record{DeathGregorian: &civil}},
			want:   hebdate.FromGregorian(civil),
			wantOK: true,
		},
		{
			desc:   "no usable date",
			rec:    memorial.Reconciled{Record: memorial.Record{DeathHebrewText: "ה' בטבת"}},
			wantOK: false,
		},
		{
			desc:   "unmatchable record excluded",
			rec:    memorial.Reconciled{Record: memorial.Record{DeathGregorian: &civil}, Unmatchable: true},
			wantOK: false,
		},
		{
			desc:   "invalid structured date excluded",
			rec:    memorial.Reconciled{Record: memorial.Record{DeathHebrew: &hebdate.HebrewDate{Year: 5785, Month: 13, Day: 5}}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, ok := anniversaryDate(tt.rec)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestObservedDate_AdarIIFoldsToAdar(t *testing.T) {
	// 5784 is a leap year, 5785 is not.
	death := hebdate.HebrewDate{Year: 5784, Month: 13, Day: 9}

	observed, ok := observedDate(death, 5785)
	require.True(t, ok)
	assert.Equal(t, hebdate.HebrewDate{Year: 5785, Month: 12, Day: 9}, observed)

	observed, ok = observedDate(death, 5784)
	require.True(t, ok)
	assert.Equal(t, death, observed)
}

func TestObservedDate_DayOverflowSkipsYear(t *testing.T) {
	// Cheshvan has 29 days in some years and 30 in others. Find one of
	// each in a window around 5784 and check both directions.
	var short, long int
	for y := 5780; y <= 5790; y++ {
		if hebdate.DaysInMonth(8, y) == 29 && short == 0 {
			short = y
		}
		if hebdate.DaysInMonth(8, y) == 30 && long == 0 {
			long = y
		}
	}
	require.NotZero(t, short)
	require.NotZero(t, long)

	death := hebdate.HebrewDate{Year: long, Month: 8, Day: 30}

	_, ok := observedDate(death, short)
	assert.False(t, ok, "30 Cheshvan has no observance in a short year")

	observed, ok := observedDate(death, long)
	require.True(t, ok)
	assert.Equal(t, 30, observed.Day)
}

func TestBuildCalendar_EmptyFeedIsValid(t *testing.T) {
	g := &Generator{Clock: FixedClock{T: time.Now()}}
	feed, err := g.buildCalendar(nil, time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(feed))
}

func TestBuildCalendar_DeterministicUIDs(t *testing.T) {
	civil := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []memorial.Reconciled{
		{Record: memorial.Record{Name: "רחל", DeathGregorian: &civil}},
	}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	g := &Generator{Clock: FixedClock{T: now}}
	first, err := g.buildCalendar(records, now, "")
	require.NoError(t, err)
	second, err := g.buildCalendar(records, now, "")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	// Three year window, one event per year.
	assert.Equal(t, 3, strings.Count(string(first), "BEGIN:VEVENT"))
}
