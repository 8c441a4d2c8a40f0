// Package health runs environment checks before a tutoring session: the
// configured shell, the workspace location, the catalog and the progress
// record.
//
//	manager := health.NewManager()
//	manager.AddChecker(health.NewShellChecker("/bin/sh"))
//	manager.AddChecker(health.NewWorkspaceChecker(root))
//
//	for _, report := range manager.Check(ctx) {
//	    fmt.Println(report.Name, report.Result.Status)
//	}
package health

import (
	"context"
	"time"
)

// Checker verifies one prerequisite of a tutoring session.
type Checker interface {
	// Name is lowercase with hyphens, e.g. "shell".
	Name() string

	// Check must respect the context deadline.
	Check(ctx context.Context) *Result
}

// Status represents the health check status.
type Status string

const (
	// StatusHealthy means the prerequisite is met.
	StatusHealthy Status = "healthy"

	// StatusDegraded means a session can run but something will surprise the
	// learner, e.g. saved progress that no longer matches the catalog.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy means a session cannot start.
	StatusUnhealthy Status = "unhealthy"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Symbol is the one-character marker printed by the doctor command.
func (s Status) Symbol() string {
	switch s {
	case StatusHealthy:
		return "✓"
	case StatusDegraded:
		return "⚠"
	default:
		return "✗"
	}
}

// Result represents the result of a health check.
type Result struct {
	Status  Status                 `json:"status" yaml:"status"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration          `json:"latency" yaml:"latency"`
}

// NewResult creates a new health check result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the result and returns the result for chaining.
func (r *Result) WithDetail(key string, value interface{}) *Result {
	r.Details[key] = value
	return r
}

// Healthy creates a healthy result with the given message.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result with the given message.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result with the given message.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
