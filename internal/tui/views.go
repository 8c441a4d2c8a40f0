package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes tutor messages with consistent styling.
type Printer struct {
	w      io.Writer
	styles Styles
	width  int
}

// NewPrinter creates a printer. A width of zero disables wrapping.
func NewPrinter(w io.Writer, styles Styles, width int) *Printer {
	return &Printer{w: w, styles: styles, width: width}
}

// Styles returns the printer styles.
func (p *Printer) Styles() Styles {
	return p.styles
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Task renders the task header: position, progress bar and description.
func (p *Printer) Task(position, bar, description string) {
	header := p.styles.Title.Render(fmt.Sprintf("%s: ", position)) + p.wrap(description, len(position)+2)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, header)
	if bar != "" {
		fmt.Fprintln(p.w, p.styles.Muted.Render(bar))
	}
}

// Hints renders the help block listing the available keywords.
func (p *Printer) Hints() {
	lines := []string{
		"Type 'show' to reveal the correct command.",
		"Type 'explain' to learn what the current command does.",
		"Type 'skip' to skip the current task, or 'go <n>' to jump ahead.",
		"Type 'reset' to clear all progress and start fresh.",
		"Type 'exit' anytime to quit.",
		"You can also run any command to inspect your environment.",
	}
	fmt.Fprintln(p.w, p.styles.Warning.Render("Type your command below and press Enter."))
	for _, l := range lines {
		fmt.Fprintln(p.w, p.styles.Muted.Render("  "+l))
	}
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.styles.Success, "✓ ", format, args...)
}

// Error prints a failure line.
func (p *Printer) Error(format string, args ...any) {
	p.line(p.styles.Error, "✗ ", format, args...)
}

// Warning prints a caution line.
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.styles.Warning, "⚠ ", format, args...)
}

// Info prints a status line.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.styles.Status, "", format, args...)
}

// Muted prints a secondary line.
func (p *Printer) Muted(format string, args ...any) {
	p.line(p.styles.Muted, "", format, args...)
}

// Command renders a command in the key style, for use inside other messages.
func (p *Printer) Command(cmd string) string {
	return p.styles.Key.Render(cmd)
}

// Output echoes captured command output: stdout plain, stderr as a warning.
func (p *Printer) Output(stdout, stderr string) {
	if s := strings.TrimSpace(stdout); s != "" {
		fmt.Fprintln(p.w, p.styles.Output.Render(s))
	}
	if s := strings.TrimSpace(stderr); s != "" {
		fmt.Fprintln(p.w, p.styles.Warning.Render(s))
	}
}

// Explanation renders the explanation of a command in a bordered box.
func (p *Printer) Explanation(command, text string) {
	fmt.Fprintln(p.w, p.styles.Status.Render(fmt.Sprintf("Explanation for '%s':", command)))
	box := p.styles.Border
	if p.width > 4 {
		box = box.Width(p.width - 4)
	}
	fmt.Fprintln(p.w, box.Render(text))
}

// Completion announces that every task is done.
func (p *Printer) Completion() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Title.Render("Congratulations! You've completed all tasks."))
}

func (p *Printer) line(style lipgloss.Style, symbol, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, style.Render(symbol+msg))
}

// wrap folds text to the printer width, leaving indent columns on the first
// line for the header that precedes it.
func (p *Printer) wrap(text string, indent int) string {
	if p.width <= indent+10 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	col := indent
	for i, w := range words {
		if i > 0 {
			if col+1+len(w) > p.width {
				b.WriteString("\n")
				col = 0
			} else {
				b.WriteString(" ")
				col++
			}
		}
		b.WriteString(w)
		col += len(w)
	}
	return b.String()
}
