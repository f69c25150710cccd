package frames

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar holds the glyphs a progress bar is drawn with.
type Bar struct {
	Begin      string
	Complete   string
	Incomplete string
	End        string
	// Style is applied to the completed segment only.
	Style lipgloss.Style
}

// DefaultBar is the classic [====    ] bar.
var DefaultBar = Bar{
	Begin:      "[",
	Complete:   "=",
	Incomplete: " ",
	End:        "]",
	Style:      lipgloss.NewStyle(),
}

// Body renders the bar for complete filled cells out of size. complete is
// clamped to [0, size]; size <= 0 renders an empty body between the caps.
func (b Bar) Body(r *lipgloss.Renderer, complete, size int) string {
	if size < 0 {
		size = 0
	}
	complete = min(max(complete, 0), size)

	filled := strings.Repeat(b.Complete, complete)
	if r != nil && filled != "" {
		filled = b.Style.Renderer(r).Render(filled)
	}

	var sb strings.Builder
	sb.WriteString(b.Begin)
	sb.WriteString(filled)
	sb.WriteString(strings.Repeat(b.Incomplete, size-complete))
	sb.WriteString(b.End)
	return sb.String()
}
