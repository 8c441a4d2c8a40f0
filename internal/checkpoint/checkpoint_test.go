package checkpoint

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/termtutor/internal/log"
)

func newTestStore(t *testing.T, fingerprint string) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: log.LevelDebug, Format: log.FormatText, Output: log.NewOutput(&buf)})
	return NewStore(filepath.Join(t.TempDir(), "progress.json"), fingerprint, logger), &buf
}

func TestLoadMissingRecord(t *testing.T) {
	store, buf := newTestStore(t, "")

	assert.Equal(t, 0, store.Load(5))
	assert.False(t, store.Exists())
	assert.NotContains(t, buf.String(), "level=WARN", "a missing record is not worth a warning")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, "abc")

	require.NoError(t, store.Save(3))
	assert.True(t, store.Exists())
	assert.Equal(t, 3, store.Load(5))

	rec, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, 3, rec.CurrentTaskIndex)
	assert.Equal(t, "abc", rec.CatalogFingerprint)
	assert.False(t, rec.UpdatedAt.IsZero())

	// Overwrite.
	require.NoError(t, store.Save(1))
	assert.Equal(t, 1, store.Load(5))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLoadDegradesToZero(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all"},
		{"wrong type", `{"currentTaskIndex": "2"}`},
		{"missing key", `{"something": 2}`},
		{"negative", `{"currentTaskIndex": -1}`},
		{"equal to task count", `{"currentTaskIndex": 5}`},
		{"beyond task count", `{"currentTaskIndex": 42}`},
		{"empty file", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, buf := newTestStore(t, "")
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0o644))

			assert.Equal(t, 0, store.Load(5))
			assert.Contains(t, buf.String(), "level=WARN")
		})
	}
}

func TestLoadOriginalFormat(t *testing.T) {
	store, _ := newTestStore(t, "current")
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"currentTaskIndex":2}`), 0o644))

	assert.Equal(t, 2, store.Load(3))
}

func TestLoadFingerprintMismatchStillRestores(t *testing.T) {
	store, buf := newTestStore(t, "new")
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"currentTaskIndex":2,"catalogFingerprint":"old"}`), 0o644))

	assert.Equal(t, 2, store.Load(4))
	assert.Contains(t, buf.String(), "different catalog")
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t, "")

	require.NoError(t, store.Clear(), "clearing a missing record is fine")

	require.NoError(t, store.Save(2))
	require.NoError(t, store.Clear())
	assert.False(t, store.Exists())
	assert.Equal(t, 0, store.Load(5))

	_, ok := store.Read()
	assert.False(t, ok)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "progress.json")
	store := NewStore(path, "", log.Nop())

	require.NoError(t, store.Save(1))
	assert.Equal(t, 1, store.Load(2))
}
