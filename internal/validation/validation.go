// Package validation decides whether a typed command is an attempt at the
// current task and, if so, whether the attempt passes.
package validation

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/termtutor/internal/catalog"
	"github.com/felixgeelhaar/termtutor/internal/exec"
	"github.com/felixgeelhaar/termtutor/internal/log"
)

// Reason explains a verdict.
type Reason string

const (
	ReasonAccepted         Reason = "accepted"
	ReasonNotAttempt       Reason = "not an attempt"
	ReasonCommandFailed    Reason = "command failed"
	ReasonOutputMismatch   Reason = "output mismatch"
	ReasonStateCheckFailed Reason = "state check failed"
)

// Verdict is the engine's answer for one typed command.
type Verdict struct {
	// Attempt is false when the command was unrelated to the task; no
	// judgement is made then.
	Attempt  bool
	Accepted bool
	Reason   Reason

	// OutputValid is meaningful only when the task sets outputIncludes.
	OutputValid bool
	StateValid  bool
}

// Engine judges attempts. It needs an executor to run check commands.
type Engine struct {
	executor exec.Executor
	logger   *log.Logger
}

// NewEngine creates a validation engine.
func NewEngine(executor exec.Executor, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Engine{executor: executor, logger: logger}
}

// Judge evaluates a typed command that has already run in dir with result res.
func (e *Engine) Judge(ctx context.Context, task catalog.Task, typed, dir string, res *exec.Result) Verdict {
	if !IsAttempt(task, typed) {
		return Verdict{Reason: ReasonNotAttempt}
	}

	outputValid := OutputValid(task, res.CombinedOutput())
	stateValid := e.StateValid(ctx, task, dir)

	v := Decide(task, res.Success(), outputValid, stateValid)

	e.logger.Debug("attempt judged",
		"typed", typed,
		"accepted", v.Accepted,
		"reason", string(v.Reason),
		"exit_code", res.ExitCode,
		"output_valid", outputValid,
		"state_valid", stateValid,
	)
	return v
}

// StateValid runs the task's check command silently in dir. Tasks without
// one are trivially valid; a check that cannot even start counts as failed.
func (e *Engine) StateValid(ctx context.Context, task catalog.Task, dir string) bool {
	if !task.HasCheckCommand() {
		return true
	}

	res, err := e.executor.Run(ctx, exec.Request{
		Command: task.CheckCommand,
		Dir:     dir,
		Mode:    exec.ModeSilent,
	})
	if err != nil {
		e.logger.WithError(err).Warn("check command could not run", "check", task.CheckCommand)
		return false
	}
	return res.Success()
}

// IsAttempt reports whether typed targets task. With strictCommandMatch only
// the literal expected command counts; otherwise the literal command or any
// command whose first token occurs in the expected command.
func IsAttempt(task catalog.Task, typed string) bool {
	if typed == task.ExpectedCommand {
		return true
	}
	if task.StrictCommandMatch {
		return false
	}

	first := FirstToken(typed)
	return first != "" && strings.Contains(task.ExpectedCommand, first)
}

// FirstToken returns the first whitespace-delimited word of s.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// OutputValid matches combined output against outputIncludes: an empty
// expectation requires empty output, anything else is a case-sensitive
// substring test. Tasks without outputIncludes never have valid output.
func OutputValid(task catalog.Task, combined string) bool {
	if !task.HasOutputCheck() {
		return false
	}
	want := task.Output()
	if want == "" {
		return strings.TrimSpace(combined) == ""
	}
	return strings.Contains(combined, want)
}

// Decide combines the signals. Output-based tasks need valid output and a
// successful exit unless nonZeroOkay; state-based tasks need a valid state,
// and when they declare an empty outputIncludes, empty output too. Exit status
// never matters for state-based tasks.
func Decide(task catalog.Task, commandSucceeded, outputValid, stateValid bool) Verdict {
	v := Verdict{
		Attempt:     true,
		OutputValid: outputValid,
		StateValid:  stateValid,
	}

	if task.IsOutputBased() {
		switch {
		case !commandSucceeded && !task.NonZeroOkay:
			v.Reason = ReasonCommandFailed
		case !outputValid:
			v.Reason = ReasonOutputMismatch
		default:
			v.Accepted = true
			v.Reason = ReasonAccepted
		}
		return v
	}

	switch {
	case !stateValid:
		v.Reason = ReasonStateCheckFailed
	case task.HasOutputCheck() && !outputValid:
		v.Reason = ReasonOutputMismatch
	default:
		v.Accepted = true
		v.Reason = ReasonAccepted
	}
	return v
}
