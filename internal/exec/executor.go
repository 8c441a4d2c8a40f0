// Package exec runs lesson commands through a shell. One primitive serves
// every caller; the Mode decides whether output is captured, discarded or
// streamed to the terminal.
package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/termtutor/internal/errors"
	"github.com/felixgeelhaar/termtutor/internal/log"
)

// DefaultShell interprets commands when none is configured.
const DefaultShell = "/bin/sh"

// Executor is the contract consumers depend on.
type Executor interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// Runner executes commands as `<Shell> -c <command>`. Shell built-ins,
// pipes and redirections therefore work as they would at a prompt.
type Runner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewRunner creates a Runner wired to the process terminal.
func NewRunner(shell string, logger *log.Logger) *Runner {
	if shell == "" {
		shell = DefaultShell
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Runner{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes req and waits for it. A non-zero exit is reported through
// Result.ExitCode and Result.Err; the returned error is reserved for commands
// that could not be started at all. No timeout is imposed.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, errors.New(errors.ErrCodeExecEmptyCommand, "command is empty")
	}

	startTime := time.Now()

	cmd := osexec.CommandContext(ctx, r.Shell, "-c", req.Command) // #nosec G204 -- running user commands is the point
	cmd.Dir = req.Dir

	var stdout, stderr bytes.Buffer
	switch req.Mode {
	case ModeCapture:
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	case ModeInherit:
		cmd.Stdin = r.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	case ModeSilent:
		// nil writers are connected to the null device
	}

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(startTime),
	}

	if err != nil {
		var exitErr *osexec.ExitError
		if !stderrors.As(err, &exitErr) {
			r.Logger.WithError(err).Warn("command could not be started", "command", req.Command, "dir", req.Dir)
			return nil, errors.NewSpawnError(r.Shell, err)
		}
		result.ExitCode = exitErr.ExitCode()
		result.Err = exitError(req.Command, result)
	}

	r.Logger.DebugContext(ctx, "command finished",
		"command", req.Command,
		"dir", req.Dir,
		"mode", req.Mode.String(),
		"exit_code", result.ExitCode,
		"duration", result.Duration,
	)

	return result, nil
}

// exitError describes a non-zero exit the way a user would read it.
func exitError(command string, res *Result) error {
	msg := fmt.Sprintf("command failed: %s (exit status %d)", command, res.ExitCode)
	if res.ExitCode < 0 {
		msg = fmt.Sprintf("command failed: %s (terminated by signal)", command)
	}

	e := errors.New(errors.ErrCodeExecNonZeroExit, msg)
	if stderrText := strings.TrimSpace(res.Stderr); stderrText != "" {
		e.Cause = stderrors.New(stderrText)
	}
	return e
}
