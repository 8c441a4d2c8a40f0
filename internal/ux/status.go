package ux

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/termtutor/internal/progress"
)

// StatusReport describes saved progress without starting a session.
type StatusReport struct {
	Catalog         string     `json:"catalog" yaml:"catalog"`
	Fingerprint     string     `json:"fingerprint" yaml:"fingerprint"`
	TaskCount       int        `json:"taskCount" yaml:"taskCount"`
	CurrentTask     int        `json:"currentTask" yaml:"currentTask"`
	CurrentTitle    string     `json:"currentTaskDescription,omitempty" yaml:"currentTaskDescription,omitempty"`
	Saved           bool       `json:"saved" yaml:"saved"`
	FingerprintOK   bool       `json:"fingerprintMatches" yaml:"fingerprintMatches"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	ProgressFile    string     `json:"progressFile" yaml:"progressFile"`
	Workspace       string     `json:"workspace" yaml:"workspace"`
	WorkspaceExists bool       `json:"workspaceExists" yaml:"workspaceExists"`
}

// Completed is the number of tasks passed.
func (s StatusReport) Completed() int {
	return max(s.CurrentTask-1, 0)
}

// RenderText implements TextRenderer.
func (s StatusReport) RenderText(noColor bool) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	value := lipgloss.NewStyle().Bold(true)
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	if noColor {
		label, value, warn = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	}

	var b strings.Builder
	row := func(name, v string) {
		b.WriteString(label.Render(fmt.Sprintf("%-12s", name+":")))
		b.WriteString(" ")
		b.WriteString(value.Render(v))
		b.WriteString("\n")
	}

	row("Catalog", fmt.Sprintf("%s (%d tasks)", s.Catalog, s.TaskCount))
	row("Progress", progress.Bar(s.Completed(), s.TaskCount, progress.DefaultBarWidth))
	row("Next task", fmt.Sprintf("%d. %s", s.CurrentTask, s.CurrentTitle))
	if s.Saved {
		saved := s.ProgressFile
		if s.UpdatedAt != nil && !s.UpdatedAt.IsZero() {
			saved += " (" + s.UpdatedAt.Local().Format(time.RFC822) + ")"
		}
		row("Saved", saved)
	} else {
		row("Saved", "no saved progress")
	}
	workspace := s.Workspace
	if !s.WorkspaceExists {
		workspace += " (not created yet)"
	}
	row("Workspace", workspace)

	if s.Saved && !s.FingerprintOK {
		b.WriteString(warn.Render("⚠ The catalog changed since progress was saved; task numbers may not line up."))
		b.WriteString("\n")
	}
	return b.String()
}
