package exec

import (
	"strings"
	"time"
)

// Mode selects what happens to a command's output.
type Mode int

const (
	// ModeCapture buffers stdout and stderr for inspection.
	ModeCapture Mode = iota
	// ModeSilent discards output; only the exit status is observed.
	ModeSilent
	// ModeInherit streams output live to the runner's terminal writers.
	ModeInherit
)

// String returns the mode name used in logs
func (m Mode) String() string {
	switch m {
	case ModeCapture:
		return "capture"
	case ModeSilent:
		return "silent"
	case ModeInherit:
		return "inherit"
	default:
		return "unknown"
	}
}

// Request describes one shell command to run.
type Request struct {
	Command string
	Dir     string
	Mode    Mode
}

// Result represents the outcome of a command that was started.
type Result struct {
	ExitCode int
	Stdout   string // empty unless ModeCapture
	Stderr   string // empty unless ModeCapture
	Duration time.Duration

	// Err is set when the command exited non-zero. It carries the exit
	// status and, in capture mode, the trimmed stderr.
	Err error
}

// Success reports a zero exit status.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// CombinedOutput is trimmed stdout immediately followed by trimmed stderr.
func (r *Result) CombinedOutput() string {
	return strings.TrimSpace(r.Stdout) + strings.TrimSpace(r.Stderr)
}
