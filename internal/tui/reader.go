package tui

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LineReader reads one line of learner input per call. It returns io.EOF
// when input ends or the learner aborts.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// ScannerReader reads newline-delimited input without line editing, for
// pipes and scripted sessions.
type ScannerReader struct {
	reader  *bufio.Reader
	out     io.Writer
	styles  Styles
}

// NewScannerReader creates a reader over in that echoes prompts to out.
func NewScannerReader(in io.Reader, out io.Writer, styles Styles) *ScannerReader {
	return &ScannerReader{
		reader:  bufio.NewReader(in),
		out:     out,
		styles:  styles,
	}
}

// ReadLine prints prompt and returns the next line without its line ending.
// Lines have no length limit.
func (r *ScannerReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", io.EOF
	}
	if r.out != nil {
		fmt.Fprint(r.out, r.styles.Prompt.Render(prompt))
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && (!stderrors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// EditorReader reads lines through an interactive editor with tab completion.
type EditorReader struct {
	in       io.Reader
	out      io.Writer
	complete Completer
	styles   Styles
}

// NewEditorReader creates an interactive reader. complete may be nil.
func NewEditorReader(in io.Reader, out io.Writer, complete Completer, styles Styles) *EditorReader {
	return &EditorReader{
		in:       in,
		out:      out,
		complete: complete,
		styles:   styles,
	}
}

// ReadLine runs the editor until Enter, Ctrl+C or Ctrl+D.
func (r *EditorReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	model := NewEditorModel(prompt, r.complete, r.styles)

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
	)

	final, err := p.Run()
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return "", io.EOF
		}
		return "", fmt.Errorf("read line: %w", err)
	}

	m, ok := final.(EditorModel)
	if !ok {
		return "", fmt.Errorf("invalid final model type")
	}
	if m.Aborted() {
		return "", io.EOF
	}
	return m.Value(), nil
}
