package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Catalog errors (CATALOG-001 to CATALOG-099)
	ErrCodeCatalogNotFound  ErrorCode = "CATALOG-001"
	ErrCodeCatalogInvalid   ErrorCode = "CATALOG-002"
	ErrCodeCatalogUnmarshal ErrorCode = "CATALOG-003"
	ErrCodeCatalogFormat    ErrorCode = "CATALOG-004"

	// Progress errors (PROGRESS-001 to PROGRESS-099)
	ErrCodeProgressWrite   ErrorCode = "PROGRESS-001"
	ErrCodeProgressRemove  ErrorCode = "PROGRESS-002"
	ErrCodeProgressMarshal ErrorCode = "PROGRESS-003"

	// Execution errors (EXEC-001 to EXEC-099)
	ErrCodeExecEmptyCommand ErrorCode = "EXEC-001"
	ErrCodeExecSpawnFailed  ErrorCode = "EXEC-002"
	ErrCodeExecNonZeroExit  ErrorCode = "EXEC-003"

	// Workspace errors (WORKSPACE-001 to WORKSPACE-099)
	ErrCodeWorkspaceCreate   ErrorCode = "WORKSPACE-001"
	ErrCodeWorkspaceClear    ErrorCode = "WORKSPACE-002"
	ErrCodeWorkspaceNotDir   ErrorCode = "WORKSPACE-003"
	ErrCodeDirectoryNotFound ErrorCode = "WORKSPACE-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead   ErrorCode = "CONFIG-001"
	ErrCodeConfigDecode ErrorCode = "CONFIG-002"
)

// TutorError represents an enhanced error with code, suggestions, and documentation
type TutorError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *TutorError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TutorError) Unwrap() error {
	return e.Cause
}

// Category returns the code prefix, e.g. "CATALOG" for "CATALOG-002".
func (e *TutorError) Category() string {
	code := string(e.Code)
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}

// New creates a new TutorError
func New(code ErrorCode, message string) *TutorError {
	return &TutorError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TutorError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TutorError {
	return &TutorError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TutorError) WithSuggestion(suggestion string) *TutorError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *TutorError) WithSuggestions(suggestions ...string) *TutorError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// NewCatalogNotFoundError creates a catalog file not found error
func NewCatalogNotFoundError(path string) *TutorError {
	return New(ErrCodeCatalogNotFound, fmt.Sprintf("task catalog not found: %s", path)).
		WithSuggestion("Check the --catalog flag or the 'catalog' key in your config file").
		WithSuggestion("Omit --catalog to use the built-in shell basics course")
}

// NewCatalogInvalidError creates a catalog validation error
func NewCatalogInvalidError(details string) *TutorError {
	return New(ErrCodeCatalogInvalid, fmt.Sprintf("invalid task catalog: %s", details)).
		WithSuggestion("Every task needs a non-empty expectedCommand").
		WithSuggestion("Run 'termtutor check' to replay the catalog in a scratch directory")
}

// NewCatalogUnmarshalError creates a catalog parse error
func NewCatalogUnmarshalError(path string, format string, cause error) *TutorError {
	return Wrap(ErrCodeCatalogUnmarshal, fmt.Sprintf("failed to parse %s catalog: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}

// NewWorkspaceCreateError creates a workspace bootstrap error
func NewWorkspaceCreateError(path string, cause error) *TutorError {
	return Wrap(ErrCodeWorkspaceCreate, fmt.Sprintf("cannot create workspace: %s", path), cause).
		WithSuggestion("Verify you have write permission in the current directory").
		WithSuggestion("Choose another location with --workspace")
}

// NewDirectoryNotFoundError creates an error for a cd target that does not exist
func NewDirectoryNotFoundError(path string) *TutorError {
	return New(ErrCodeDirectoryNotFound, fmt.Sprintf("directory not found: %s", path))
}

// NewSpawnError creates an error for a shell that could not be started
func NewSpawnError(shell string, cause error) *TutorError {
	return Wrap(ErrCodeExecSpawnFailed, fmt.Sprintf("failed to start shell %s", shell), cause).
		WithSuggestion("Set the 'shell' config key to an installed POSIX shell")
}
