package spinner

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"spinplex/internal/frames"
)

const (
	separator = "  "
	ellipsis  = "…"
)

// composer turns snapshots into display lines.
type composer struct {
	r *lipgloss.Renderer
	// width truncates lines to the terminal width; 0 disables truncation.
	width int
}

// line renders one entity. frame is only read for running spinners.
func (c composer) line(s snapshot, frame frames.Frame) string {
	switch {
	case s.stopped:
		if s.set != nil {
			if end, ok := s.set.End(); ok {
				return c.fit(end.Glyph+separator, end.Render(c.r)+separator, s.text)
			}
		}
		return c.fit("", "", s.text)
	case s.kind == KindSpinner:
		return c.fit(frame.Glyph+separator, frame.Render(c.r)+separator, s.text)
	default:
		plain, styled := c.progress(s)
		if s.text == "" {
			return c.fit(plain, styled, "")
		}
		return c.fit(plain+separator, styled+separator, s.text)
	}
}

// progress renders the bar body and the percentage, without the label.
func (c composer) progress(s snapshot) (plain, styled string) {
	pct := percent(s.current, s.goal)
	complete := int(math.Floor(float64(s.size) * pct / 100))
	stats := fmt.Sprintf("%s%.2f%% | %d/%d", separator, pct, s.current, s.goal)

	plain = s.bar.Body(nil, complete, s.size) + stats
	styled = s.bar.Body(c.r, complete, s.size) + stats
	return plain, styled
}

// percent treats an empty goal as done.
func percent(current, goal int) float64 {
	if goal <= 0 {
		return 100
	}
	return 100 * float64(current) / float64(goal)
}

// fit joins a styled prefix and a plain label, cutting the label so the
// visible width stays within c.width. Widths are measured on the plain
// prefix because styled text carries escape sequences.
func (c composer) fit(plain, styled, label string) string {
	if c.width <= 0 {
		return styled + label
	}
	pw := runewidth.StringWidth(plain)
	switch {
	case pw+runewidth.StringWidth(label) <= c.width:
		return styled + label
	case pw < c.width:
		return styled + runewidth.Truncate(label, c.width-pw, ellipsis)
	default:
		return runewidth.Truncate(plain+label, c.width, ellipsis)
	}
}
