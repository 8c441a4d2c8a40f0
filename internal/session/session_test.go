package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/log"
)

func testCatalog(n int) *catalog.Catalog {
	c := &catalog.Catalog{Source: "test"}
	for i := 0; i < n; i++ {
		c.Tasks = append(c.Tasks, catalog.Task{Description: "task", ExpectedCommand: "true"})
	}
	return c
}

func newSession(t *testing.T, n int) (*Session, *checkpoint.Store) {
	t.Helper()
	store := checkpoint.NewStore(filepath.Join(t.TempDir(), "progress.json"), "", log.Nop())
	return New(testCatalog(n), store, t.TempDir(), log.Nop()), store
}

func TestNewStartsAtZero(t *testing.T) {
	s, store := newSession(t, 3)

	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 3, s.Total())
	assert.False(t, s.Resumed())
	assert.False(t, s.Completed())
	assert.False(t, store.Exists())
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Task 1/3", s.Position())
}

func TestAdvancePersistsAndCompletes(t *testing.T) {
	s, store := newSession(t, 2)

	done, err := s.Advance()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, store.Load(2))

	done, err = s.Advance()
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, s.Completed())
	assert.False(t, store.Exists(), "record is deleted on completion")

	_, ok := s.Current()
	assert.False(t, ok)

	done, err = s.Advance()
	assert.True(t, done)
	assert.ErrorIs(t, err, ErrCompleted)
	assert.Equal(t, 2, s.Index())
}

func TestJumpTo(t *testing.T) {
	s, store := newSession(t, 5)
	require.NoError(t, s.JumpTo(2))
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, 2, store.Load(5))

	for _, target := range []int{2, 1, 0, 5, 9, -1} {
		assert.ErrorIs(t, s.JumpTo(target), ErrInvalidTarget, "target %d", target)
		assert.Equal(t, 2, s.Index(), "invalid target %d must not move", target)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s, store := newSession(t, 4)
	require.NoError(t, s.JumpTo(3))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Reset())
		assert.Equal(t, 0, s.Index())
		assert.False(t, store.Exists())
	}
}

func TestSuspendAndResume(t *testing.T) {
	dir := t.TempDir()
	store := checkpoint.NewStore(filepath.Join(dir, "progress.json"), "", log.Nop())
	cat := testCatalog(4)

	s := New(cat, store, dir, log.Nop())
	_, err := s.Advance()
	require.NoError(t, err)
	_, err = s.Advance()
	require.NoError(t, err)
	require.NoError(t, s.Suspend())

	resumed := New(cat, store, dir, log.Nop())
	assert.Equal(t, 2, resumed.Index())
	assert.True(t, resumed.Resumed())
	assert.Equal(t, "Task 3/4", resumed.Position())
	assert.NotEqual(t, s.ID, resumed.ID)
}

func TestChdir(t *testing.T) {
	s, _ := newSession(t, 1)
	root := s.Dir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), nil, 0o644))

	require.NoError(t, s.Chdir("a"))
	assert.Equal(t, filepath.Join(root, "a"), s.Dir())

	require.NoError(t, s.Chdir("b/.."))
	assert.Equal(t, filepath.Join(root, "a"), s.Dir())

	require.NoError(t, s.Chdir(".."))
	assert.Equal(t, root, s.Dir())

	assert.Error(t, s.Chdir("missing"))
	assert.Error(t, s.Chdir("file"), "files are not directories")
	assert.Equal(t, root, s.Dir())

	require.NoError(t, s.Chdir(filepath.Join(root, "a", "b")))
	assert.Equal(t, filepath.Join(root, "a", "b"), s.Dir())
}

type failingStore struct{ saves int }

func (f *failingStore) Load(int) int { return 0 }
func (f *failingStore) Save(int) error {
	f.saves++
	return os.ErrPermission
}
func (f *failingStore) Clear() error { return nil }

func TestAdvanceKeepsStateWhenSaveFails(t *testing.T) {
	store := &failingStore{}
	s := New(testCatalog(3), store, t.TempDir(), log.Nop())

	done, err := s.Advance()
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.False(t, done)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 1, store.saves)
}
