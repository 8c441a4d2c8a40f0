package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	p.Success("Task completed successfully.")
	p.Error("Directory not found: %s", "nowhere")
	p.Warning("careful")
	p.Info("Resuming from Task %d", 3)

	out := buf.String()
	assert.Contains(t, out, "✓ Task completed successfully.\n")
	assert.Contains(t, out, "✗ Directory not found: nowhere\n")
	assert.Contains(t, out, "⚠ careful\n")
	assert.Contains(t, out, "Resuming from Task 3\n")
}

func TestPrinterTask(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	p.Task("Task 2/5", "[██░░] 1/5", "Move into the notes directory")
	assert.Equal(t, "\nTask 2/5: Move into the notes directory\n[██░░] 1/5\n", buf.String())
}

func TestPrinterWrapsLongDescriptions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 30)

	p.Task("Task 1/1", "", "one two three four five six seven eight nine ten")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len(line), 30, "line %q", line)
	}
}

func TestPrinterOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	p.Output("  hello\n", "")
	p.Output("", "warning\n")
	p.Output("  ", "\n")
	assert.Equal(t, "hello\nwarning\n", buf.String())
}

func TestPrinterHintsAndCompletion(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	p.Hints()
	p.Completion()
	out := buf.String()
	for _, keyword := range []string{"'show'", "'explain'", "'skip'", "'reset'", "'exit'"} {
		assert.Contains(t, out, keyword)
	}
	assert.Contains(t, out, "Congratulations! You've completed all tasks.")
}

func TestPrinterExplanation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	p.Explanation("ls", "Lists directory contents.")
	assert.Contains(t, buf.String(), "Explanation for 'ls':")
	assert.Contains(t, buf.String(), "Lists directory contents.")
}

func TestScannerReader(t *testing.T) {
	var out bytes.Buffer
	r := NewScannerReader(strings.NewReader("pwd\n\nexit\n"), &out, PlainStyles())
	ctx := context.Background()

	line, err := r.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "pwd", line)

	line, err = r.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = r.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "exit", line)

	_, err = r.ReadLine(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > > ", out.String())
}

func TestScannerReaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewScannerReader(strings.NewReader("pwd\n"), nil, PlainStyles())
	_, err := r.ReadLine(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestScannerReaderLongLinesAndLineEndings(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	r := NewScannerReader(strings.NewReader(long+"\r\nls\nlast"), nil, PlainStyles())
	ctx := context.Background()

	line, err := r.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Len(t, line, len(long))

	line, err = r.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "ls", line)

	line, err = r.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line, "a final line without newline is still returned")

	_, err = r.ReadLine(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
}
