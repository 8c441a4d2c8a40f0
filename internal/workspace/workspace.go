// Package workspace manages the sandbox directory every learner command runs
// in.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/felixgeelhaar/termtutor/internal/errors"
	"github.com/felixgeelhaar/termtutor/internal/log"
)

// Workspace is a directory the tutor owns and may wipe.
type Workspace struct {
	root   string
	logger *log.Logger
}

// New returns a workspace rooted at root. The directory is not touched until
// Ensure is called.
func New(root string, logger *log.Logger) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.NewWorkspaceCreateError(root, err)
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Workspace{root: abs, logger: logger.With("workspace", abs)}, nil
}

// Root is the absolute workspace path.
func (w *Workspace) Root() string {
	return w.root
}

// Ensure creates the workspace if needed. created reports whether it did.
func (w *Workspace) Ensure() (created bool, err error) {
	info, err := os.Stat(w.root)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, errors.New(errors.ErrCodeWorkspaceNotDir, "workspace path is not a directory: "+w.root).
			WithSuggestion("Remove the file or choose another location with --workspace")
	case !os.IsNotExist(err):
		return false, errors.NewWorkspaceCreateError(w.root, err)
	}

	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return false, errors.NewWorkspaceCreateError(w.root, err)
	}
	w.logger.Debug("created workspace")
	return true, nil
}

// Clear removes every entry inside the workspace, keeping the directory.
func (w *Workspace) Clear() error {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		if os.IsNotExist(err) {
			_, err = w.Ensure()
			return err
		}
		return errors.Wrap(errors.ErrCodeWorkspaceClear, "cannot list workspace", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(w.root, e.Name())); err != nil {
			return errors.Wrap(errors.ErrCodeWorkspaceClear, "cannot remove "+e.Name(), err)
		}
	}
	w.logger.Debug("cleared workspace", "entries", len(entries))
	return nil
}

// Remove deletes the workspace directory entirely.
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.root); err != nil {
		return errors.Wrap(errors.ErrCodeWorkspaceClear, "cannot remove workspace", err)
	}
	return nil
}

// Exists reports whether the workspace directory is present.
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.root)
	return err == nil && info.IsDir()
}

// Complete returns the entries of dir that start with the last
// space-separated word of line. When nothing matches, every entry is
// returned. Directories carry a trailing slash.
func Complete(dir, line string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	word := ""
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		word = line[i+1:]
	} else {
		word = line
	}

	all := make([]string, 0, len(entries))
	matches := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		all = append(all, name)
		if strings.HasPrefix(name, word) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		matches = all
	}
	sort.Strings(matches)
	return matches
}

// CompleteLine expands line with each completion candidate, replacing the
// word being typed.
func CompleteLine(dir, line string) []string {
	prefix := ""
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		prefix = line[:i+1]
	}
	candidates := Complete(dir, line)
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = prefix + c
	}
	return lines
}
