// Package interpreter runs the interactive loop: it reads a line, dispatches
// keywords, runs everything else as an attempt and drives the session from
// the validation verdict.
package interpreter

import (
	"context"
	stderrors "errors"
	"io"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/exec"
	"github.com/felixgeelhaar/termtutor/internal/log"
	"github.com/felixgeelhaar/termtutor/internal/progress"
	"github.com/felixgeelhaar/termtutor/internal/session"
	"github.com/felixgeelhaar/termtutor/internal/tui"
	"github.com/felixgeelhaar/termtutor/internal/validation"
)

// Prompt is shown before every input line.
const Prompt = "> "

// maxReadFailures consecutive input errors end the session like exit.
const maxReadFailures = 3

// Workspace is the sandbox the session runs in.
type Workspace interface {
	Root() string
	Clear() error
}

// Options tune the interpreter output.
type Options struct {
	// Hints prints the keyword help block after each task and retry.
	Hints bool
}

// Interpreter is the read-dispatch loop for one session.
type Interpreter struct {
	session   *session.Session
	executor  exec.Executor
	engine    *validation.Engine
	workspace Workspace
	reader    tui.LineReader
	printer   *tui.Printer
	logger    *log.Logger
	opts      Options
}

// New wires an interpreter. The executor runs attempts, skips and replays;
// the engine judges attempts.
func New(
	sess *session.Session,
	executor exec.Executor,
	engine *validation.Engine,
	workspace Workspace,
	reader tui.LineReader,
	printer *tui.Printer,
	opts Options,
) *Interpreter {
	return &Interpreter{
		session:   sess,
		executor:  executor,
		engine:    engine,
		workspace: workspace,
		reader:    reader,
		printer:   printer,
		logger:    sess.Logger(),
		opts:      opts,
	}
}

// Run shows the active task and processes input until exit, completion or
// end of input. End of input saves progress like exit. A line that cannot be
// read is reported and the prompt shown again.
func (in *Interpreter) Run(ctx context.Context) error {
	if in.session.Completed() {
		in.printer.Completion()
		return nil
	}

	in.printer.Info("Working inside: %s", in.session.Dir())
	if in.session.Resumed() {
		in.printer.Info("Resuming from Task %d", in.session.Index()+1)
	}
	in.showTask()

	var failures int
	for {
		line, err := in.reader.ReadLine(ctx, Prompt)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				in.exit()
				return nil
			}
			failures++
			in.logger.WithError(err).Warn("cannot read input", "consecutive_failures", failures)
			if failures >= maxReadFailures {
				in.exit()
				return nil
			}
			in.printer.Error("Could not read that line: %v", err)
			in.retry()
			continue
		}
		failures = 0

		if done := in.Handle(ctx, line); done {
			return nil
		}
	}
}

// Handle processes one input line. done reports that the session ended.
func (in *Interpreter) Handle(ctx context.Context, line string) (done bool) {
	cmd := Parse(line)
	in.logger.Debug("input", "kind", cmd.Kind.String(), "line", cmd.Line, "index", in.session.Index())

	switch cmd.Kind {
	case KindEmpty:
		return false
	case KindExit:
		in.exit()
		return true
	case KindReset:
		in.reset()
		return false
	case KindShow:
		in.show()
		return false
	case KindSkip:
		return in.skip(ctx)
	case KindExplain:
		in.explain()
		return false
	case KindCd:
		return in.chdir(cmd.Arg)
	case KindGo:
		in.fastForward(ctx, cmd.Arg)
		return false
	default:
		return in.attempt(ctx, cmd.Line)
	}
}

func (in *Interpreter) exit() {
	in.printer.Info("Progress saved. See you next time!")
	in.suspend()
}

func (in *Interpreter) suspend() {
	if err := in.session.Suspend(); err != nil {
		in.logger.LogError(err)
		in.printer.Warning("Could not save progress: %v", err)
	}
}

func (in *Interpreter) reset() {
	if err := in.workspace.Clear(); err != nil {
		in.logger.WithError(err).Error("failed to clear workspace")
		in.printer.Warning("Failed to reset. You may need to delete files manually.")
		in.showTask()
		return
	}
	in.session.SetDir(in.workspace.Root())
	in.printer.Warning("Cleared all files in the workspace.")

	if err := in.session.Reset(); err != nil {
		in.logger.WithError(err).Error("failed to remove progress record")
		in.printer.Warning("Could not remove saved progress: %v", err)
	} else {
		in.printer.Warning("Progress reset.")
	}

	in.printer.Info("All data cleared. Starting from the beginning...")
	in.showTask()
}

func (in *Interpreter) show() {
	task, _ := in.session.Current()
	in.printer.Info("The correct command is: %s", in.printer.Command(task.ExpectedCommand))
	in.printer.Info("Now try running it below:")
	in.hints()
}

func (in *Interpreter) explain() {
	task, _ := in.session.Current()
	if strings.TrimSpace(task.Explanation) == "" {
		in.printer.Warning("No explanation available for this task yet.")
		return
	}
	in.printer.Explanation(task.ExpectedCommand, task.Explanation)
}

func (in *Interpreter) skip(ctx context.Context) bool {
	idx := in.session.Index()
	in.printer.Warning("Skipping Task %d...", idx+1)
	in.replay(ctx, idx, exec.ModeInherit)
	return in.advance()
}

func (in *Interpreter) chdir(path string) bool {
	if err := in.session.Chdir(path); err != nil {
		in.printer.Error("Directory not found: %s", path)
		in.retry()
		return false
	}
	in.printer.Success("Changed directory to: %s", in.session.Dir())
	in.printer.Success("Task completed successfully.")
	return in.advance()
}

func (in *Interpreter) fastForward(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > in.session.Total() {
		in.printer.Error("Invalid task number. Use: go 4")
		in.retry()
		return
	}

	start, end := in.session.Index(), n-1
	if start >= end {
		in.printer.Warning("You're already at or past Task %d.", n)
		in.retry()
		return
	}

	in.printer.Info("Fast-forwarding from Task %d to Task %d...", start+1, n)
	for i := start; i < end; i++ {
		in.replay(ctx, i, exec.ModeSilent)
	}

	if err := in.session.JumpTo(end); err != nil {
		if stderrors.Is(err, session.ErrInvalidTarget) {
			in.printer.Warning("You're already at or past Task %d.", n)
			in.retry()
			return
		}
		in.logger.LogError(err)
		in.printer.Warning("Could not save progress: %v", err)
	}
	in.showTask()
}

// replay runs the expected command of task i to recreate its side effects.
// Failures are reported and never stop the caller.
func (in *Interpreter) replay(ctx context.Context, i int, mode exec.Mode) {
	task, ok := in.session.Catalog().Task(i)
	if !ok {
		return
	}
	in.printer.Muted("Running: %s", task.ExpectedCommand)

	if dir, ok := ChdirTarget(task.ExpectedCommand); ok {
		if err := in.session.Chdir(dir); err != nil {
			in.printer.Warning("Skipped Task %d due to error: %v", i+1, err)
		}
		return
	}

	res, err := in.executor.Run(ctx, exec.Request{
		Command: task.ExpectedCommand,
		Dir:     in.session.Dir(),
		Mode:    mode,
	})
	switch {
	case err != nil:
		in.printer.Warning("Skipped Task %d due to error: %v", i+1, err)
	case res.Success():
	case task.NonZeroOkay:
		in.printer.Muted("Task %d exited with code %d, but that's expected.", i+1, res.ExitCode)
	default:
		in.printer.Warning("Skipped Task %d due to error: %v", i+1, res.Err)
	}
}

func (in *Interpreter) attempt(ctx context.Context, line string) bool {
	task, ok := in.session.Current()
	if !ok {
		return true
	}

	dir := in.session.Dir()
	res, err := in.executor.Run(ctx, exec.Request{Command: line, Dir: dir, Mode: exec.ModeCapture})
	if err != nil {
		in.logger.WithError(err).Warn("attempt could not run", "line", line)
		in.printer.Error("Command failed: %v", err)
		in.retry()
		return false
	}

	in.printer.Output(res.Stdout, res.Stderr)

	verdict := in.engine.Judge(ctx, task, line, dir, res)
	if !verdict.Attempt {
		if task.StrictCommandMatch {
			in.printer.Error("That's not the expected command. This task requires: %s",
				in.printer.Command(task.ExpectedCommand))
			in.printer.Muted("Try typing 'show' to reveal the correct command.")
		}
		return false
	}

	if verdict.Accepted {
		in.printer.Success("Task completed successfully.")
		return in.advance()
	}

	switch verdict.Reason {
	case validation.ReasonCommandFailed:
		if stderrText := strings.TrimSpace(res.Stderr); stderrText != "" {
			in.printer.Error("Command failed: %s", stderrText)
		} else {
			in.printer.Error("Command failed with exit status %d.", res.ExitCode)
		}
	case validation.ReasonStateCheckFailed:
		in.printer.Error("Validation failed: the result of your command is not what this task expects.")
	default:
		in.printer.Error("Output did not match expected result.")
	}
	in.retry()
	return false
}

// advance moves to the next task. It returns true once the catalog is done.
func (in *Interpreter) advance() bool {
	completed, err := in.session.Advance()
	if err != nil && !stderrors.Is(err, session.ErrCompleted) {
		in.logger.LogError(err)
		in.printer.Warning("Could not save progress: %v", err)
	}
	if completed {
		in.printer.Completion()
		return true
	}
	in.showTask()
	return false
}

func (in *Interpreter) showTask() {
	task, ok := in.session.Current()
	if !ok {
		return
	}
	in.printer.Task(
		in.session.Position(),
		progress.Bar(in.session.Index(), in.session.Total(), progress.DefaultBarWidth),
		describe(task),
	)
	in.hints()
}

func (in *Interpreter) retry() {
	in.printer.Info("Try again:")
	in.hints()
}

func (in *Interpreter) hints() {
	if in.opts.Hints {
		in.printer.Hints()
	}
}

func describe(task catalog.Task) string {
	return strings.TrimSpace(task.Description)
}
