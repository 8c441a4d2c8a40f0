package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/termtutor/internal/log"
)

func TestEnsure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	w, err := New(root, log.Nop())
	require.NoError(t, err)

	created, err := w.Ensure()
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, w.Exists())

	created, err = w.Ensure()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureRejectsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	w, err := New(root, log.Nop())
	require.NoError(t, err)
	_, err = w.Ensure()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "WORKSPACE-003")
}

func TestClearKeepsDirectory(t *testing.T) {
	w, err := New(t.TempDir(), log.Nop())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(w.Root(), "notes", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(w.Root(), "todo.txt"), []byte("milk"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(w.Root(), ".hidden"), nil, 0o644))

	require.NoError(t, w.Clear())

	entries, err := os.ReadDir(w.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, w.Exists())

	require.NoError(t, w.Clear(), "clearing twice is harmless")
}

func TestClearRecreatesMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "gone"), log.Nop())
	require.NoError(t, err)

	require.NoError(t, w.Clear())
	assert.True(t, w.Exists())
}

func TestRemove(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "ws"), log.Nop())
	require.NoError(t, err)
	_, err = w.Ensure()
	require.NoError(t, err)

	require.NoError(t, w.Remove())
	assert.False(t, w.Exists())
}

func TestComplete(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.md"), nil, 0o644))

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty line lists all", "", []string{"notes/", "tasks.md", "todo.txt"}},
		{"trailing space lists all", "cat ", []string{"notes/", "tasks.md", "todo.txt"}},
		{"prefix", "cat t", []string{"tasks.md", "todo.txt"}},
		{"unique", "cd no", []string{"notes/"}},
		{"no match lists all", "cat zz", []string{"notes/", "tasks.md", "todo.txt"}},
		{"first word", "to", []string{"todo.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Complete(dir, tt.line))
		})
	}
}

func TestCompleteMissingDir(t *testing.T) {
	assert.Nil(t, Complete(filepath.Join(t.TempDir(), "missing"), "x"))
}

func TestCompleteLine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.txt"), nil, 0o644))

	assert.Equal(t, []string{"cat todo.txt"}, CompleteLine(dir, "cat to"))
	assert.Equal(t, []string{"todo.txt"}, CompleteLine(dir, "t"))
	assert.Equal(t, []string{"cat todo.txt"}, CompleteLine(dir, "cat x"), "no match offers every entry")
}
