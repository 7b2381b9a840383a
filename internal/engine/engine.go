package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/hebdate"
	"github.com/zikaron/yahrzeit/internal/memorial"
	"github.com/zikaron/yahrzeit/internal/store"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeJSON, SourceModeVCard or SourceModeWeb
	RecordsPath     string // Path to the local records file
	WebURL          string // Remote records endpoint (web mode)
	WebUser         string // HTTP Basic Auth username (web mode)
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D"), empty disables
}

// SyncResult is the outcome of one synchronization pass.
type SyncResult struct {
	// Feed is the encoded iCalendar yahrzeit feed.
	Feed []byte

	// Records holds every reconciled record, flagged ones included.
	Records []memorial.Reconciled

	// Today lists the records whose yahrzeit falls on TodayHebrew.
	Today []memorial.Reconciled

	// TodayHebrew is the Hebrew date the Today matches were computed for.
	TodayHebrew hebdate.HebrewDate
}

// Generator is the core service: it loads records, reconciles their date
// fields, matches today's yahrzeits and renders the calendar feed.
type Generator struct {
	Clock   Clock         // Interface for time mocking.
	Fetcher store.Fetcher // Interface for network abstraction (web mode).

	// FormatSummary injects the localized event summary into the logic layer.
	FormatSummary func(name string) string
}

// RunSync executes the load, reconcile, match and generation pipeline.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) (*SyncResult, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	src, err := g.buildSource(cfg)
	if err != nil {
		return nil, err
	}

	records, err := src.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	stats := struct{ total, repaired, flagged int }{len(records), 0, 0}
	reconciled := make([]memorial.Reconciled, 0, len(records))
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := memorial.Reconcile(r)
		if rec.Repaired() {
			stats.repaired++
			slog.Debug(config.MsgRecordRepaired,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyRecordID, rec.ID,
				config.LogKeyName, rec.Name,
				config.LogKeyCount, len(rec.Changes),
			)
		}
		if rec.NeedsReview || rec.Unmatchable {
			stats.flagged++
			slog.Info(config.MsgRecordFlagged,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyRecordID, rec.ID,
				config.LogKeyName, rec.Name,
			)
		}
		reconciled = append(reconciled, rec)
	}

	now := g.Clock.Now()
	todayHebrew := hebdate.FromGregorian(now)
	today := memorial.MatchDay(todayHebrew.Day, todayHebrew.Month, reconciled)
	for _, rec := range today {
		slog.Info(config.MsgYahrzeitToday,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, rec.Name,
			config.LogKeyHebDate, rec.DeathHebrewText,
		)
	}

	feed, err := g.buildCalendar(reconciled, now, cfg.ReminderTrigger)
	if err != nil {
		return nil, err
	}

	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.total),
			slog.Int(config.LogKeyRepaired, stats.repaired),
			slog.Int(config.LogKeyFlagged, stats.flagged),
			slog.Int(config.LogKeyToday, len(today)),
		),
	)
	log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())

	return &SyncResult{
		Feed:        feed,
		Records:     reconciled,
		Today:       today,
		TodayHebrew: todayHebrew,
	}, nil
}

// buildSource selects the record source for the configured mode.
func (g *Generator) buildSource(cfg SyncConfig) (store.Source, error) {
	switch cfg.Mode {
	case config.SourceModeJSON:
		if cfg.RecordsPath == "" {
			return nil, errors.New(config.ErrRecordsPathEmpty)
		}
		return &store.JSONSource{Path: cfg.RecordsPath}, nil
	case config.SourceModeVCard:
		if cfg.RecordsPath == "" {
			return nil, errors.New(config.ErrRecordsPathEmpty)
		}
		return &store.VCardSource{Path: cfg.RecordsPath}, nil
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return &store.WebSource{URL: cfg.WebURL, User: cfg.WebUser, Fetcher: g.Fetcher}, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}
