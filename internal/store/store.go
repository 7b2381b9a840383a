// Package store supplies memorial records from their persisted sources:
// a local JSON file, a vCard stream, or a remote endpoint. Every source
// normalizes legacy field aliases onto the canonical record shape before
// records leave the package.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/memorial"
)

// Source is the record store read interface consumed by the engine.
type Source interface {
	Load(ctx context.Context) ([]memorial.Record, error)
}

// JSONSource reads records from a local JSON array file.
type JSONSource struct {
	Path string
}

// Load reads and normalizes every record in the file. Malformed records
// are logged and skipped to maximize data recovery; a malformed stream is
// an error.
func (s *JSONSource) Load(ctx context.Context) ([]memorial.Record, error) {
	if s.Path == "" {
		return nil, errors.New(config.ErrRecordsPathEmpty)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return DecodeRecords(ctx, f)
}

// DecodeRecords decodes a JSON array of raw records from r and folds each
// onto the canonical shape.
func DecodeRecords(ctx context.Context, r io.Reader) ([]memorial.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []rawRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRecordsDecode, err)
	}

	records := make([]memorial.Record, 0, len(raw))
	for _, rr := range raw {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := rr.normalize()
		if err != nil {
			slog.Warn(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyName, rr.Name,
				config.LogKeyError, err,
			)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// WebSource reads the records JSON from a remote endpoint. The password for
// User is resolved from the system keyring at load time.
type WebSource struct {
	URL     string
	User    string
	Fetcher Fetcher
}

// Load fetches and decodes the remote records stream.
func (s *WebSource) Load(ctx context.Context) ([]memorial.Record, error) {
	if s.URL == "" {
		return nil, errors.New(config.ErrWebURLEmpty)
	}
	if s.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}

	body, err := s.Fetcher.Fetch(ctx, s.URL, s.User, Password(s.User))
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	return DecodeRecords(ctx, body)
}
