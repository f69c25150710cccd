// Package printer writes one-line status messages for the CLI, colored by
// level through a lipgloss renderer.
package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Level selects the label and color of a message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "done"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

var levelColors = map[Level]lipgloss.Color{
	LevelInfo:    lipgloss.Color("4"),
	LevelSuccess: lipgloss.Color("2"),
	LevelWarn:    lipgloss.Color("3"),
	LevelError:   lipgloss.Color("1"),
}

// Printer formats messages as "label: message".
type Printer struct {
	w      io.Writer
	labels map[Level]lipgloss.Style
	dim    lipgloss.Style
}

// New creates a Printer writing to w. Colors follow r's profile, so an
// Ascii renderer produces plain text.
func New(w io.Writer, r *lipgloss.Renderer) *Printer {
	labels := make(map[Level]lipgloss.Style, len(levelColors))
	for level, color := range levelColors {
		labels[level] = r.NewStyle().Foreground(color).Bold(true)
	}
	return &Printer{
		w:      w,
		labels: labels,
		dim:    r.NewStyle().Faint(true),
	}
}

// Print outputs a message at the given level.
func (p *Printer) Print(level Level, format string, args ...any) {
	fmt.Fprintf(p.w, "%s: %s\n", p.labels[level].Render(level.String()), fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...any) { p.Print(LevelInfo, format, args...) }

// Success prints a completion message.
func (p *Printer) Success(format string, args ...any) { p.Print(LevelSuccess, format, args...) }

// Warn prints a warning.
func (p *Printer) Warn(format string, args ...any) { p.Print(LevelWarn, format, args...) }

// Error prints an error message.
func (p *Printer) Error(format string, args ...any) { p.Print(LevelError, format, args...) }

// Note prints a dimmed line without a label.
func (p *Printer) Note(format string, args ...any) {
	fmt.Fprintln(p.w, p.dim.Render(fmt.Sprintf(format, args...)))
}
