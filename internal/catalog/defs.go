package catalog

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"spinplex/internal/config"
	"spinplex/internal/frames"
)

// LoadDefs builds and registers the frame sets declared in configuration.
// A definition with the same name as a builtin replaces it. Nothing is
// registered if any definition is invalid.
func (c *Catalog) LoadDefs(defs []config.FrameSetDef) error {
	built := make([]*frames.FrameSet, 0, len(defs))
	for _, def := range defs {
		fs, err := buildDef(def)
		if err != nil {
			return fmt.Errorf("frame set %q: %w", def.Name, err)
		}
		built = append(built, fs)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fs := range built {
		c.sets[fs.Name()] = fs
	}
	return nil
}

func buildDef(def config.FrameSetDef) (*frames.FrameSet, error) {
	style := lipgloss.NewStyle()
	if def.Color != "" {
		style = style.Foreground(lipgloss.Color(def.Color))
	}

	set := make([]frames.Frame, len(def.Glyphs))
	for i, g := range def.Glyphs {
		set[i] = frames.Frame{Glyph: g, Style: style}
	}

	opts := []frames.Option{frames.WithName(def.Name)}
	if def.End != "" {
		opts = append(opts, frames.WithEnd(frames.Frame{Glyph: def.End, Style: style}))
	}
	return frames.New(def.Interval, set, opts...)
}
