package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/termtutor/internal/health"
)

// DoctorReport is the outcome of the environment checks.
type DoctorReport struct {
	Overall health.Status   `json:"overall" yaml:"overall"`
	Checks  []health.Report `json:"checks" yaml:"checks"`
}

// NewDoctorReport wraps reports with their overall status.
func NewDoctorReport(reports []health.Report) DoctorReport {
	return DoctorReport{Overall: health.OverallStatus(reports), Checks: reports}
}

// RenderText implements TextRenderer.
func (d DoctorReport) RenderText(noColor bool) string {
	styles := map[health.Status]lipgloss.Style{
		health.StatusHealthy:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		health.StatusDegraded:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		health.StatusUnhealthy: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if noColor {
		for k := range styles {
			styles[k] = lipgloss.NewStyle()
		}
		muted = lipgloss.NewStyle()
	}

	var b strings.Builder
	for _, c := range d.Checks {
		st := styles[c.Result.Status]
		b.WriteString(st.Render(c.Result.Status.Symbol()))
		b.WriteString(fmt.Sprintf(" %-10s %s\n", c.Name, c.Result.Message))
		if path, ok := c.Result.Details["path"].(string); ok && path != "" {
			b.WriteString(muted.Render("             " + path))
			b.WriteString("\n")
		}
		if s, ok := c.Result.Details["suggestion"].(string); ok && s != "" {
			b.WriteString(muted.Render("             → " + s))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles[d.Overall].Render("Overall: " + d.Overall.String()))
	b.WriteString("\n")
	return b.String()
}
