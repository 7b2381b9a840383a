package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/memorial"
)

// VCardSource reads memorial records from a vCard 4.0 file. The death and
// birth dates come from the RFC 6474 DEATHDATE and BIRTHDATE extension
// properties, with BDAY as a birth-date fallback.
type VCardSource struct {
	Path string
}

// Load decodes the vCard stream, skipping malformed cards and cards
// without a formatted name.
func (s *VCardSource) Load(ctx context.Context) ([]memorial.Record, error) {
	if s.Path == "" {
		return nil, errors.New(config.ErrRecordsPathEmpty)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return decodeCards(ctx, f)
}

func decodeCards(ctx context.Context, r io.Reader) ([]memorial.Record, error) {
	decoder := vcard.NewDecoder(r)

	var records []memorial.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyError, err,
			)
			continue
		}

		name := ""
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}
		if name == "" {
			// Same policy as the JSON source: a nameless record is
			// undisplayable and is skipped, not renamed.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyError, ErrMissingName,
			)
			continue
		}

		rec := memorial.Record{Name: name}
		rec.DeathGregorian = cardDate(card, config.VCardDeathDate)
		rec.BirthGregorian = cardDate(card, config.VCardBirthDate)
		if rec.BirthGregorian == nil {
			rec.BirthGregorian = cardDate(card, config.VCardBDAY)
		}

		records = append(records, rec)
	}
	return records, nil
}

// cardDate extracts and parses a date property, logging and dropping
// values in formats we do not accept.
func cardDate(card vcard.Card, field string) *time.Time {
	prop := card.Get(field)
	if prop == nil || prop.Value == "" {
		return nil
	}
	t, err := parseCivilDate(prop.Value)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyField, field,
			config.LogKeyValue, prop.Value,
		)
		return nil
	}
	return t
}
