package interpreter

import (
	"strings"
)

// Kind classifies one line of learner input.
type Kind int

const (
	// KindEmpty is a blank line.
	KindEmpty Kind = iota
	KindExit
	KindReset
	KindShow
	KindSkip
	KindExplain
	// KindCd changes the session directory in-process.
	KindCd
	// KindGo fast-forwards to a later task.
	KindGo
	// KindAttempt is anything else; it runs through the shell.
	KindAttempt
)

var kindNames = map[Kind]string{
	KindEmpty:   "empty",
	KindExit:    "exit",
	KindReset:   "reset",
	KindShow:    "show",
	KindSkip:    "skip",
	KindExplain: "explain",
	KindCd:      "cd",
	KindGo:      "go",
	KindAttempt: "attempt",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a parsed input line.
type Command struct {
	Kind Kind
	// Line is the trimmed input.
	Line string
	// Arg is the directory for cd and the raw task number for go.
	Arg string
}

var keywords = map[string]Kind{
	"exit":    KindExit,
	"reset":   KindReset,
	"show":    KindShow,
	"skip":    KindSkip,
	"explain": KindExplain,
}

// Parse classifies line. Keywords match case-insensitively; "cd " is matched
// on the trimmed line as typed.
func Parse(line string) Command {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)

	if trimmed == "" {
		return Command{Kind: KindEmpty}
	}
	if kind, ok := keywords[lower]; ok {
		return Command{Kind: kind, Line: trimmed}
	}
	if strings.HasPrefix(trimmed, "cd ") {
		return Command{Kind: KindCd, Line: trimmed, Arg: strings.TrimSpace(trimmed[3:])}
	}
	if strings.HasPrefix(lower, "go ") {
		arg := ""
		if fields := strings.Fields(trimmed); len(fields) > 1 {
			arg = fields[1]
		}
		return Command{Kind: KindGo, Line: trimmed, Arg: arg}
	}
	return Command{Kind: KindAttempt, Line: trimmed}
}

// ChdirTarget reports whether command is a plain `cd <dir>` that the
// interpreter can apply itself, and the directory.
func ChdirTarget(command string) (string, bool) {
	cmd := Parse(command)
	if cmd.Kind != KindCd || cmd.Arg == "" {
		return "", false
	}
	if strings.ContainsAny(cmd.Arg, "&|;<>$`()") {
		return "", false
	}
	return cmd.Arg, true
}
