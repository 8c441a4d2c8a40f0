package cmd

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with actionable recovery suggestions
type ErrorWithSuggestion struct {
	Message     string
	Suggestions []string
	err         error
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if e.err != nil {
		b.WriteString("\n\nDetails: ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.err
}

// NewErrorWithSuggestions creates an error with recovery suggestions
func NewErrorWithSuggestions(msg string, err error, suggestions ...string) error {
	return &ErrorWithSuggestion{
		Message:     msg,
		Suggestions: suggestions,
		err:         err,
	}
}

// ValidationError creates a helpful error for an invalid flag value
func ValidationError(field string, value interface{}, validValues string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("invalid argument for %s: %v", field, value),
		nil,
		fmt.Sprintf("Valid values: %s", validValues),
		"Run with --help to see all available options",
	)
}

// ConfirmationRequiredError is returned when a destructive command cannot
// ask for confirmation.
func ConfirmationRequiredError(action string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("refusing to %s without confirmation", action),
		nil,
		"Re-run with --yes to confirm",
		"Run the command from an interactive terminal to be asked",
	)
}

// CheckFailedError reports a catalog whose own solutions do not pass.
func CheckFailedError(failed, total int) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("catalog check failed: %d of %d tasks did not pass their own validation", failed, total),
		nil,
		"Fix the expectedCommand, outputIncludes or checkCommand of the failing tasks",
		"Re-run with --verbose to see each command's output",
	)
}
