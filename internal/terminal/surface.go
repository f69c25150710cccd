// Package terminal is the output surface the animation engine draws on:
// cursor control, line clearing and raw styled text, batched so that one
// tick produces exactly one write to the underlying stream.
package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Surface is the set of terminal operations the engine relies on. Calls
// between two flushes are buffered and emitted as a single write.
type Surface interface {
	HideCursor()
	ShowCursor()
	SaveCursor()
	RestoreCursor()
	MoveTo(row, col int)
	MoveUp(n int)
	LineStart()
	ClearLine()
	ClearDown()
	Write(s string)
	Flush() error
	Capabilities() Capabilities
	Renderer() *lipgloss.Renderer
}

// ANSI is a Surface that emits ANSI escape sequences to an io.Writer.
type ANSI struct {
	mu       sync.Mutex
	out      io.Writer
	buf      bytes.Buffer
	caps     Capabilities
	renderer *lipgloss.Renderer
}

// NewANSI creates a surface writing to out with the given capabilities.
func NewANSI(out io.Writer, caps Capabilities) *ANSI {
	return &ANSI{
		out:      out,
		caps:     caps,
		renderer: NewRenderer(out, caps),
	}
}

// NewRenderer returns a lipgloss renderer locked to the capability profile,
// so styling never consults process-wide color detection.
func NewRenderer(out io.Writer, caps Capabilities) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(caps.Profile)
	return r
}

func (a *ANSI) csi(seq string) {
	a.mu.Lock()
	a.buf.WriteString(termenv.CSI)
	a.buf.WriteString(seq)
	a.mu.Unlock()
}

// HideCursor hides the cursor.
func (a *ANSI) HideCursor() { a.csi(termenv.HideCursorSeq) }

// ShowCursor shows the cursor.
func (a *ANSI) ShowCursor() { a.csi(termenv.ShowCursorSeq) }

// SaveCursor saves the cursor position.
func (a *ANSI) SaveCursor() { a.csi(termenv.SaveCursorPositionSeq) }

// RestoreCursor returns to the last saved position.
func (a *ANSI) RestoreCursor() { a.csi(termenv.RestoreCursorPositionSeq) }

// MoveTo moves to an absolute 0-indexed row and column.
func (a *ANSI) MoveTo(row, col int) {
	a.csi(fmt.Sprintf(termenv.CursorPositionSeq, row+1, col+1))
}

// MoveUp moves the cursor up n lines. Non-positive n is a no-op.
func (a *ANSI) MoveUp(n int) {
	if n <= 0 {
		return
	}
	a.csi(fmt.Sprintf(termenv.CursorUpSeq, n))
}

// LineStart returns the cursor to column zero.
func (a *ANSI) LineStart() {
	a.Write("\r")
}

// ClearLine erases the whole current line.
func (a *ANSI) ClearLine() { a.csi(termenv.EraseEntireLineSeq) }

// ClearDown erases from the cursor to the end of the screen.
func (a *ANSI) ClearDown() { a.csi(fmt.Sprintf(termenv.EraseDisplaySeq, 0)) }

// Write appends raw text to the pending batch.
func (a *ANSI) Write(s string) {
	a.mu.Lock()
	a.buf.WriteString(s)
	a.mu.Unlock()
}

// Flush writes the pending batch in one call. On failure the batch is
// dropped; the next tick redraws from scratch.
func (a *ANSI) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.buf.Len() == 0 {
		return nil
	}
	_, err := a.out.Write(a.buf.Bytes())
	a.buf.Reset()
	if err != nil {
		return fmt.Errorf("failed to flush terminal output: %w", err)
	}
	return nil
}

// Capabilities returns the capabilities the surface was built with.
func (a *ANSI) Capabilities() Capabilities {
	return a.caps
}

// Renderer returns the lipgloss renderer bound to this surface.
func (a *ANSI) Renderer() *lipgloss.Renderer {
	return a.renderer
}
