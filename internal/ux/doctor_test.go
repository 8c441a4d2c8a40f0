package ux

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/termtutor/internal/health"
)

func TestDoctorReport(t *testing.T) {
	report := NewDoctorReport([]health.Report{
		{Name: "shell", Result: health.Healthy("/bin/sh runs commands")},
		{Name: "progress", Result: health.Degraded("progress record is unreadable").
			WithDetail("path", "/tmp/progress.json").
			WithDetail("suggestion", "Run 'termtutor clean' to remove it")},
	})

	if report.Overall != health.StatusDegraded {
		t.Fatalf("Overall = %v, want degraded", report.Overall)
	}

	got := report.RenderText(true)
	for _, want := range []string{
		"✓ shell      /bin/sh runs commands\n",
		"⚠ progress   progress record is unreadable\n",
		"             /tmp/progress.json\n",
		"             → Run 'termtutor clean' to remove it\n",
		"Overall: degraded\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderText() missing %q in:\n%s", want, got)
		}
	}
}
