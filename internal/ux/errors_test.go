package ux

import (
	"errors"
	"strings"
	"testing"

	tutorerrors "github.com/felixgeelhaar/termtutor/internal/errors"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	if NewErrorWithSuggestion(nil, "ignored") != nil {
		t.Error("NewErrorWithSuggestion(nil) should return nil")
	}

	err := NewErrorWithSuggestion(errors.New("something failed"), "try this fix")
	if !strings.Contains(err.Error(), "something failed") || !strings.Contains(err.Error(), "try this fix") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestErrorWithSuggestion_Error(t *testing.T) {
	tests := []struct {
		name       string
		suggestion string
		wantMsg    string
	}{
		{"with suggestion", "do this", "test error\n\nSuggestion: do this"},
		{"without suggestion", "", "test error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &ErrorWithSuggestion{Err: errors.New("test error"), Suggestion: tt.suggestion}
			if e.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", e.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorWithSuggestion_Unwrap(t *testing.T) {
	origErr := errors.New("original error")
	e := &ErrorWithSuggestion{Err: origErr, Suggestion: "some suggestion"}

	if !errors.Is(e, origErr) {
		t.Errorf("errors.Is(%v, %v) = false", e, origErr)
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{
			name:           "missing catalog file",
			err:            errors.New("open lessons.yaml: no such file or directory"),
			wantSuggestion: "--catalog",
		},
		{
			name:           "missing shell",
			err:            errors.New(`exec: "zsh": executable file not found in $PATH`),
			wantSuggestion: "'shell' config key",
		},
		{
			name:           "permission denied",
			err:            errors.New("mkdir /termtutor-workspace: permission denied"),
			wantSuggestion: "--workspace",
		},
		{
			name:           "read-only filesystem",
			err:            errors.New("open progress.json: read-only file system"),
			wantSuggestion: "writable directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EnhanceError(tt.err)
			if !strings.Contains(result.Error(), tt.wantSuggestion) {
				t.Errorf("EnhanceError() = %q, want suggestion containing %q", result.Error(), tt.wantSuggestion)
			}
			if !errors.Is(result, tt.err) {
				t.Error("enhanced error should wrap the original")
			}
		})
	}
}

func TestEnhanceErrorPassThrough(t *testing.T) {
	if EnhanceError(nil) != nil {
		t.Error("EnhanceError(nil) should return nil")
	}

	plain := errors.New("something unexpected")
	if EnhanceError(plain) != plain {
		t.Error("unrecognized errors should be returned unchanged")
	}

	withSuggestions := tutorerrors.NewWorkspaceCreateError("/ws", errors.New("permission denied"))
	if EnhanceError(withSuggestions) != error(withSuggestions) {
		t.Error("errors that already carry suggestions should be returned unchanged")
	}

	enhanced := FormatError(errors.New("mkdir /ro: permission denied"), "failed to create scratch directory")
	if got := EnhanceError(enhanced).Error(); strings.Count(got, "Suggestion:") != 1 {
		t.Errorf("enhancing twice should not repeat the suggestion: %q", got)
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil, "context") != nil {
		t.Error("FormatError(nil) should return nil")
	}

	base := errors.New("open lessons.yaml: no such file or directory")
	result := FormatError(base, "loading catalog")
	msg := result.Error()
	if !strings.HasPrefix(msg, "loading catalog: ") {
		t.Errorf("missing context in %q", msg)
	}
	if !strings.Contains(msg, base.Error()) {
		t.Errorf("missing original message in %q", msg)
	}
	if !errors.Is(result, base) {
		t.Error("FormatError should preserve the chain")
	}
}
