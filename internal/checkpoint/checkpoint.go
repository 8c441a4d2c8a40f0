// Package checkpoint persists how far a learner got through the catalog so a
// session can be resumed after exit.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/termtutor/internal/errors"
	"github.com/felixgeelhaar/termtutor/internal/log"
)

// Record is the on-disk progress structure.
type Record struct {
	CurrentTaskIndex   int       `json:"currentTaskIndex"`
	CatalogFingerprint string    `json:"catalogFingerprint,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty"`
}

// rawRecord distinguishes a missing index from a zero one.
type rawRecord struct {
	CurrentTaskIndex   *int   `json:"currentTaskIndex"`
	CatalogFingerprint string `json:"catalogFingerprint"`
}

// Store reads and writes the progress record at a single path.
type Store struct {
	path        string
	fingerprint string
	logger      *log.Logger
}

// NewStore creates a store for the record at path. fingerprint identifies the
// catalog the index refers to and may be empty.
func NewStore(path, fingerprint string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		path:        path,
		fingerprint: fingerprint,
		logger:      logger.With("progress_file", path),
	}
}

// Path returns the record location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved index when the record exists, parses and lies in
// [0, taskCount). Any other situation yields 0; corruption is logged, never
// returned.
func (s *Store) Load(taskCount int) int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("cannot read progress record, starting from the beginning")
		}
		return 0
	}

	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.WithError(err).Warn("corrupt progress record, starting from the beginning")
		return 0
	}
	if raw.CurrentTaskIndex == nil {
		s.logger.Warn("progress record has no currentTaskIndex, starting from the beginning")
		return 0
	}

	idx := *raw.CurrentTaskIndex
	if idx < 0 || idx >= taskCount {
		s.logger.Warn("progress record out of range, starting from the beginning",
			"index", idx, "task_count", taskCount)
		return 0
	}

	if s.fingerprint != "" && raw.CatalogFingerprint != "" && raw.CatalogFingerprint != s.fingerprint {
		s.logger.Warn("progress record was written for a different catalog",
			"saved_fingerprint", raw.CatalogFingerprint, "catalog_fingerprint", s.fingerprint)
	}

	return idx
}

// Read returns the record as stored, without range checks. ok is false when
// no readable record exists.
func (s *Store) Read() (rec Record, ok bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, false
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Save overwrites the record with index. The write goes to a temporary file
// in the same directory followed by a rename, so a crash leaves either the
// old or the new record.
func (s *Store) Save(index int) error {
	rec := Record{
		CurrentTaskIndex:   index,
		CatalogFingerprint: s.fingerprint,
		UpdatedAt:          time.Now().UTC(),
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeProgressMarshal, "cannot encode progress", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeProgressWrite, fmt.Sprintf("cannot create %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeProgressWrite, "cannot create temporary progress file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeProgressWrite, "cannot write progress", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeProgressWrite, "cannot sync progress", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeProgressWrite, "cannot close progress file", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeProgressWrite, "cannot replace progress record", err)
	}

	s.logger.Debug("progress saved", "index", index)
	return nil
}

// Clear removes the record. A missing record is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeProgressRemove, "cannot remove progress record", err)
	}
	s.logger.Debug("progress cleared")
	return nil
}

// Exists reports whether a record is on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
