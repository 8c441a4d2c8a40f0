package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeCatalogNotFound, "test error message")

	if err.Code != ErrCodeCatalogNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeCatalogNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeProgressWrite, "failed to write progress", cause)

	if err.Code != ErrCodeProgressWrite {
		t.Errorf("expected code %s, got %s", ErrCodeProgressWrite, err.Code)
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *TutorError
		contains []string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeCatalogInvalid, "invalid catalog"),
			contains: []string{"[CATALOG-002]", "invalid catalog"},
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeWorkspaceClear, "clear failed", fmt.Errorf("permission denied")),
			contains: []string{"[WORKSPACE-002]", "clear failed: permission denied"},
		},
		{
			name:     "error with suggestions",
			err:      New(ErrCodeConfigRead, "bad config").WithSuggestions("first", "second"),
			contains: []string{"Suggestions:", "• first", "• second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeCatalogUnmarshal, "CATALOG"},
		{ErrCodeExecSpawnFailed, "EXEC"},
		{ErrCodeDirectoryNotFound, "WORKSPACE"},
		{ErrorCode("PLAIN"), "PLAIN"},
	}

	for _, tt := range tests {
		if got := New(tt.code, "x").Category(); got != tt.want {
			t.Errorf("Category(%s) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	if err := NewCatalogNotFoundError("tasks.yaml"); err.Code != ErrCodeCatalogNotFound || len(err.Suggestions) == 0 {
		t.Errorf("NewCatalogNotFoundError() = %+v", err)
	}
	if err := NewCatalogUnmarshalError("tasks.json", "JSON", fmt.Errorf("eof")); err.Cause == nil {
		t.Error("NewCatalogUnmarshalError() should keep the cause")
	}
	if err := NewDirectoryNotFoundError("nope"); !strings.Contains(err.Error(), "directory not found: nope") {
		t.Errorf("NewDirectoryNotFoundError() = %q", err.Error())
	}
}
