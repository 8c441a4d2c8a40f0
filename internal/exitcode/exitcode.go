package exitcode

import (
	"errors"
	"os"
	"strings"

	tutorerrors "github.com/felixgeelhaar/termtutor/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// CatalogError indicates the task catalog could not be loaded or failed its check
	CatalogError = 3

	// WorkspaceError indicates the workspace could not be created or cleared
	WorkspaceError = 4

	// ConfigError indicates an unreadable or malformed configuration
	ConfigError = 5

	// Interrupted indicates the user cancelled with Ctrl+C
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var tutorErr *tutorerrors.TutorError
	if errors.As(err, &tutorErr) {
		switch tutorErr.Category() {
		case "CATALOG":
			return CatalogError
		case "WORKSPACE":
			return WorkspaceError
		case "CONFIG":
			return ConfigError
		}
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "unknown flag") {
		return UsageError
	}
	if strings.Contains(errMsg, "invalid argument") || strings.Contains(errMsg, "accepts ") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case CatalogError:
		return "Task catalog error"
	case WorkspaceError:
		return "Workspace error"
	case ConfigError:
		return "Configuration error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
