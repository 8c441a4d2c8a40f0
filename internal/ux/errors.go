package ux

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/termtutor/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a recovery suggestion to common failures. Errors that
// already carry suggestions are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var te *errors.TutorError
	if stderrors.As(err, &te) && len(te.Suggestions) > 0 {
		return err
	}
	var ews *ErrorWithSuggestion
	if stderrors.As(err, &ews) {
		return err
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "no such file or directory") {
		if strings.Contains(errMsg, ".yaml") || strings.Contains(errMsg, ".yml") || strings.Contains(errMsg, ".json") {
			return NewErrorWithSuggestion(err,
				"Check the --catalog and --config paths, or omit them to use the defaults")
		}
	}

	if strings.Contains(errMsg, "executable file not found") {
		return NewErrorWithSuggestion(err,
			"Install a POSIX shell or point the 'shell' config key at one (e.g. /bin/bash)")
	}

	if strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check file permissions, or choose another location with --workspace")
	}

	if strings.Contains(errMsg, "read-only file system") {
		return NewErrorWithSuggestion(err,
			"Run termtutor from a writable directory")
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
