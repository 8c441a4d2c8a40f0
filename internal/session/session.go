// Package session holds the progression state machine: which task is
// active, where the learner's shell is, and how every transition is
// persisted. State lives in an explicit Session value, never in globals.
package session

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/errors"
	"github.com/felixgeelhaar/termtutor/internal/log"
)

// ErrInvalidTarget is returned by JumpTo for targets that are not strictly
// ahead of the current task.
var ErrInvalidTarget = stderrors.New("fast-forward target must be ahead of the current task")

// ErrCompleted is returned when a transition is requested after the last task.
var ErrCompleted = stderrors.New("all tasks are already completed")

// Store is the persistence the state machine needs.
type Store interface {
	Load(taskCount int) int
	Save(index int) error
	Clear() error
}

// Session is the state of one interactive run.
type Session struct {
	ID string

	catalog *catalog.Catalog
	store   Store
	logger  *log.Logger

	index int
	dir   string
}

// New restores a session from store, starting in dir.
func New(cat *catalog.Catalog, store Store, dir string, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	id := uuid.New().String()
	s := &Session{
		ID:      id,
		catalog: cat,
		store:   store,
		logger:  logger.WithSession(id),
		dir:     dir,
	}
	s.index = store.Load(cat.Len())
	s.logger.Debug("session started", "index", s.index, "task_count", cat.Len(), "dir", dir)
	return s
}

// Index is the 0-based index of the active task; Total when completed.
func (s *Session) Index() int {
	return s.index
}

// Total is the number of tasks in the catalog.
func (s *Session) Total() int {
	return s.catalog.Len()
}

// Catalog returns the task catalog driving the session.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Dir is the working directory commands run in.
func (s *Session) Dir() string {
	return s.dir
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *log.Logger {
	return s.logger
}

// Current returns the active task; ok is false once completed.
func (s *Session) Current() (task catalog.Task, ok bool) {
	return s.catalog.Task(s.index)
}

// Completed reports whether every task has been passed.
func (s *Session) Completed() bool {
	return s.index >= s.catalog.Len()
}

// Resumed reports whether the session started past the first task.
func (s *Session) Resumed() bool {
	return s.index > 0
}

// Advance moves to the next task and persists the new index. On reaching the
// end the progress record is removed and completed is true. The transition
// happens even when persisting fails; the error is returned for reporting.
func (s *Session) Advance() (completed bool, err error) {
	if s.Completed() {
		return true, ErrCompleted
	}
	s.index++
	s.logger.Debug("advanced", "index", s.index)
	return s.persist()
}

// JumpTo fast-forwards to target (0-based). Only targets strictly ahead of
// the current task and inside the catalog are accepted; anything else
// leaves the state untouched.
func (s *Session) JumpTo(target int) error {
	if target <= s.index || target >= s.catalog.Len() {
		return ErrInvalidTarget
	}
	s.index = target
	s.logger.Debug("fast-forwarded", "index", s.index)
	_, err := s.persist()
	return err
}

// Reset returns to the first task and removes the progress record.
func (s *Session) Reset() error {
	s.index = 0
	s.logger.Debug("reset")
	return s.store.Clear()
}

// Suspend persists the current index so the session can be resumed later.
func (s *Session) Suspend() error {
	if s.Completed() {
		return s.store.Clear()
	}
	return s.store.Save(s.index)
}

// Chdir changes the session working directory. Relative paths resolve
// against the current one; the target must be an existing directory.
func (s *Session) Chdir(path string) error {
	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.dir, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return errors.NewDirectoryNotFoundError(path)
	}

	s.dir = target
	s.logger.Debug("changed directory", "dir", target)
	return nil
}

// SetDir moves the session to dir without checks, for workspace resets.
func (s *Session) SetDir(dir string) {
	s.dir = dir
}

// Position renders "Task k/N" for the active task.
func (s *Session) Position() string {
	return fmt.Sprintf("Task %d/%d", s.index+1, s.catalog.Len())
}

func (s *Session) persist() (bool, error) {
	if s.Completed() {
		return true, s.store.Clear()
	}
	return false, s.store.Save(s.index)
}
