package health

import (
	"context"
	"testing"
	"time"
)

type stubChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) *Result {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Unhealthy("timed out")
		}
	}
	return s.result
}

func TestStatusSymbol(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "✓"},
		{StatusDegraded, "⚠"},
		{StatusUnhealthy, "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Symbol(); got != tt.want {
				t.Errorf("Symbol() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManagerKeepsRegistrationOrder(t *testing.T) {
	m := NewManager()
	m.AddChecker(&stubChecker{name: "slow", result: Healthy("ok"), delay: 20 * time.Millisecond})
	m.AddChecker(&stubChecker{name: "fast", result: Degraded("meh")})
	m.AddChecker(&stubChecker{name: "nil"})

	reports := m.Check(context.Background())
	if len(reports) != 3 {
		t.Fatalf("len(reports) = %d, want 3", len(reports))
	}

	names := []string{reports[0].Name, reports[1].Name, reports[2].Name}
	want := []string{"slow", "fast", "nil"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("reports[%d].Name = %q, want %q", i, names[i], want[i])
		}
	}

	if reports[0].Result.Latency == 0 {
		t.Error("latency should be recorded")
	}
	if reports[2].Result.Status != StatusUnhealthy {
		t.Errorf("nil result status = %v, want unhealthy", reports[2].Result.Status)
	}
}

func TestManagerTimeout(t *testing.T) {
	m := NewManager().WithTimeout(10 * time.Millisecond)
	m.AddChecker(&stubChecker{name: "hang", result: Healthy("never"), delay: time.Second})

	reports := m.Check(context.Background())
	if reports[0].Result.Status != StatusUnhealthy {
		t.Errorf("status = %v, want unhealthy", reports[0].Result.Status)
	}
}

func TestOverallStatus(t *testing.T) {
	report := func(s Status) Report { return Report{Name: string(s), Result: NewResult(s, "")} }

	tests := []struct {
		name    string
		reports []Report
		want    Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Report{report(StatusHealthy), report(StatusHealthy)}, StatusHealthy},
		{"one degraded", []Report{report(StatusHealthy), report(StatusDegraded)}, StatusDegraded},
		{"unhealthy wins", []Report{report(StatusDegraded), report(StatusUnhealthy)}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallStatus(tt.reports); got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
