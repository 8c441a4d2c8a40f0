// Package progress renders how far a learner or a catalog check has come.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultBarWidth is the number of cells in a task progress bar.
const DefaultBarWidth = 20

// Bar renders done out of total as "[██░░] 2/4 (50%)".
func Bar(done, total, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	if total <= 0 {
		return "[" + strings.Repeat("░", width) + "] 0/0"
	}
	done = max(0, min(done, total))

	filled := width * done / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d/%d (%.0f%%)", bar, done, total, float64(done)/float64(total)*100)
}

// Status is the outcome of one task in a catalog check.
type Status string

// Task statuses reported by a Reporter.
const (
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// Reporter prints per-task status lines and a final summary for a catalog
// check. It is safe for concurrent use.
type Reporter struct {
	writer    io.Writer
	total     int
	passed    int
	failed    []string
	startTime time.Time
	mu        sync.Mutex
}

// NewReporter creates a reporter for total tasks.
func NewReporter(w io.Writer, total int) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{
		writer:    w,
		total:     total,
		startTime: time.Now(),
	}
}

// Update records and prints the status of task index (0-based).
func (r *Reporter) Update(index int, description string, status Status, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := "▶"
	switch status {
	case StatusPassed:
		symbol = "✓"
		r.passed++
	case StatusFailed:
		symbol = "✗"
		r.failed = append(r.failed, fmt.Sprintf("Task %d: %s", index+1, description))
	}

	msg := fmt.Sprintf("%s [%d/%d] %s", symbol, index+1, r.total, description)
	if err != nil {
		msg += fmt.Sprintf(" - %v", err)
	}
	fmt.Fprintln(r.writer, msg)
}

// Failed reports how many tasks failed so far.
func (r *Reporter) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failed)
}

// PrintSummary prints the totals of the check.
func (r *Reporter) PrintSummary() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.startTime)

	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(r.writer, "Catalog Check Summary")
	fmt.Fprintln(r.writer, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(r.writer, "Total Tasks:     %d\n", r.total)
	fmt.Fprintf(r.writer, "Passed:          %d ✓\n", r.passed)
	fmt.Fprintf(r.writer, "Failed:          %d ✗\n", len(r.failed))
	fmt.Fprintf(r.writer, "Total Time:      %s\n", formatDuration(elapsed))
	fmt.Fprintln(r.writer, "═══════════════════════════════════════════════════════════")

	if len(r.failed) > 0 {
		fmt.Fprintln(r.writer)
		fmt.Fprintln(r.writer, "Failed Tasks:")
		for _, f := range r.failed {
			fmt.Fprintf(r.writer, "  ✗ %s\n", f)
		}
	}
}

// StreamWriter wraps an io.Writer to stream output with prefixes
type StreamWriter struct {
	writer io.Writer
	prefix string
	buffer []byte
}

// NewStreamWriter creates a new stream writer with a prefix
func NewStreamWriter(w io.Writer, prefix string) *StreamWriter {
	return &StreamWriter{
		writer: w,
		prefix: prefix,
		buffer: make([]byte, 0, 4096),
	}
}

// Write implements io.Writer
func (sw *StreamWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	sw.buffer = append(sw.buffer, p...)

	for {
		idx := strings.IndexByte(string(sw.buffer), '\n')
		if idx == -1 {
			break
		}

		line := sw.buffer[:idx]
		sw.buffer = sw.buffer[idx+1:]

		_, err = fmt.Fprintf(sw.writer, "%s %s\n", sw.prefix, string(line))
		if err != nil {
			return
		}
	}

	return
}

// Flush writes any remaining buffered content
func (sw *StreamWriter) Flush() error {
	if len(sw.buffer) > 0 {
		_, err := fmt.Fprintf(sw.writer, "%s %s\n", sw.prefix, string(sw.buffer))
		sw.buffer = sw.buffer[:0]
		return err
	}
	return nil
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
