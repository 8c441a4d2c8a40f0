package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/checkpoint"
	"github.com/felixgeelhaar/termtutor/internal/exec"
)

// ShellChecker runs a trivial command through the configured shell.
type ShellChecker struct {
	executor exec.Executor
	shell    string
}

// NewShellChecker creates a shell checker using executor, which must run
// commands through shell.
func NewShellChecker(executor exec.Executor, shell string) *ShellChecker {
	return &ShellChecker{executor: executor, shell: shell}
}

// Name returns the name of this health check.
func (c *ShellChecker) Name() string {
	return "shell"
}

// Check is unhealthy when the shell cannot be started or does not echo back.
func (c *ShellChecker) Check(ctx context.Context) *Result {
	const marker = "termtutor-shell-check"

	res, err := c.executor.Run(ctx, exec.Request{
		Command: "echo " + marker,
		Dir:     os.TempDir(),
		Mode:    exec.ModeCapture,
	})
	if err != nil {
		return Unhealthy(fmt.Sprintf("cannot start %s", c.shell)).
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Set the 'shell' config key to an installed POSIX shell")
	}
	if !res.Success() || strings.TrimSpace(res.Stdout) != marker {
		return Unhealthy(fmt.Sprintf("%s did not run a test command", c.shell)).
			WithDetail("exit_code", res.ExitCode).
			WithDetail("output", strings.TrimSpace(res.CombinedOutput()))
	}

	return Healthy(fmt.Sprintf("%s runs commands", c.shell)).
		WithDetail("shell", c.shell)
}

// WorkspaceChecker verifies the workspace exists or can be created.
type WorkspaceChecker struct {
	root string
}

// NewWorkspaceChecker creates a checker for the workspace at root.
func NewWorkspaceChecker(root string) *WorkspaceChecker {
	return &WorkspaceChecker{root: root}
}

// Name returns the name of this health check.
func (c *WorkspaceChecker) Name() string {
	return "workspace"
}

// Check never creates the workspace; it checks the nearest existing
// ancestor for write access instead.
func (c *WorkspaceChecker) Check(ctx context.Context) *Result {
	info, err := os.Stat(c.root)
	switch {
	case err == nil && !info.IsDir():
		return Unhealthy("workspace path is a file").
			WithDetail("path", c.root).
			WithDetail("suggestion", "Remove the file or choose another location with --workspace")
	case err == nil:
		entries, err := os.ReadDir(c.root)
		if err != nil {
			return Unhealthy("workspace is not readable").
				WithDetail("path", c.root).
				WithDetail("error", err.Error())
		}
		if err := checkWritable(c.root); err != nil {
			return Unhealthy("workspace is not writable").
				WithDetail("path", c.root).
				WithDetail("error", err.Error())
		}
		return Healthy(fmt.Sprintf("workspace exists with %d entries", len(entries))).
			WithDetail("path", c.root)
	case !os.IsNotExist(err):
		return Unhealthy("cannot inspect workspace").
			WithDetail("path", c.root).
			WithDetail("error", err.Error())
	}

	parent := filepath.Dir(c.root)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := checkWritable(parent); err != nil {
		return Unhealthy("workspace cannot be created").
			WithDetail("path", c.root).
			WithDetail("error", err.Error())
	}
	return Healthy("workspace will be created on first run").
		WithDetail("path", c.root)
}

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".termtutor-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// CatalogChecker loads and validates a task catalog.
type CatalogChecker struct {
	path string
}

// NewCatalogChecker creates a checker for the catalog at path. An empty path
// checks the built-in course.
func NewCatalogChecker(path string) *CatalogChecker {
	return &CatalogChecker{path: path}
}

// Name returns the name of this health check.
func (c *CatalogChecker) Name() string {
	return "catalog"
}

// Check loads the catalog the same way a session does.
func (c *CatalogChecker) Check(ctx context.Context) *Result {
	cat, err := catalog.Load(c.path)
	if err != nil {
		return Unhealthy("catalog cannot be loaded").
			WithDetail("error", err.Error())
	}

	result := Healthy(fmt.Sprintf("%d tasks", cat.Len())).
		WithDetail("source", cat.Source).
		WithDetail("fingerprint", cat.Fingerprint)

	var missingExplanations int
	for _, t := range cat.Tasks {
		if strings.TrimSpace(t.Explanation) == "" {
			missingExplanations++
		}
	}
	if missingExplanations > 0 {
		result.WithDetail("tasks_without_explanation", missingExplanations)
	}
	return result
}

// ProgressChecker reports whether the saved progress fits the catalog.
type ProgressChecker struct {
	store       *checkpoint.Store
	fingerprint string
	taskCount   int
}

// NewProgressChecker creates a checker for store against a catalog with the
// given fingerprint and task count.
func NewProgressChecker(store *checkpoint.Store, fingerprint string, taskCount int) *ProgressChecker {
	return &ProgressChecker{store: store, fingerprint: fingerprint, taskCount: taskCount}
}

// Name returns the name of this health check.
func (c *ProgressChecker) Name() string {
	return "progress"
}

// Check is degraded, never unhealthy: a bad record only restarts the course.
func (c *ProgressChecker) Check(ctx context.Context) *Result {
	rec, ok := c.store.Read()
	if !ok {
		if c.store.Exists() {
			return Degraded("progress record is unreadable; the next session starts at Task 1").
				WithDetail("path", c.store.Path()).
				WithDetail("suggestion", "Run 'termtutor clean' to remove it")
		}
		return Healthy("no saved progress").
			WithDetail("path", c.store.Path())
	}

	if rec.CurrentTaskIndex < 0 || rec.CurrentTaskIndex >= c.taskCount {
		return Degraded(fmt.Sprintf("saved task %d is outside the catalog; the next session starts at Task 1",
			rec.CurrentTaskIndex+1)).
			WithDetail("path", c.store.Path())
	}

	if rec.CatalogFingerprint != "" && c.fingerprint != "" && rec.CatalogFingerprint != c.fingerprint {
		return Degraded("progress was saved for a different version of the catalog").
			WithDetail("path", c.store.Path()).
			WithDetail("saved_fingerprint", rec.CatalogFingerprint)
	}

	return Healthy(fmt.Sprintf("resumes at Task %d", rec.CurrentTaskIndex+1)).
		WithDetail("path", c.store.Path())
}
