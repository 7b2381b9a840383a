package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/memorial"
)

// Save writes the repaired records back to the source file in the canonical
// field shape, so legacy aliases disappear on the first write-back. The
// write is atomic: a sibling temp file is renamed over the original, so a
// crash never leaves a half-written store.
//
// Reconciliation flags and the change journal are runtime annotations and
// are not persisted.
func (s *JSONSource) Save(records []memorial.Reconciled) error {
	if s.Path == "" {
		return errors.New(config.ErrRecordsPathEmpty)
	}

	var buf bytes.Buffer
	if err := EncodeRecords(&buf, records); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return err
	}

	slog.Info(config.MsgRecordsSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyCount, len(records),
		config.LogKeyFile, s.Path,
	)
	return nil
}

// EncodeRecords writes the canonical record shapes as an indented JSON array.
func EncodeRecords(w io.Writer, records []memorial.Reconciled) error {
	out := make([]memorial.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Record)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
