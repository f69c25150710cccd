package terminal

import "strings"

// Anchor selects how a Block returns to its first line before a redraw.
type Anchor int

const (
	// AnchorSaved saves the cursor position once and restores it before
	// every redraw.
	AnchorSaved Anchor = iota
	// AnchorRelative moves up by the number of lines drawn last time. It keeps
	// working when drawing at the bottom of the screen scrolls the terminal.
	AnchorRelative
)

// ParseAnchor maps a config value to an Anchor. Unknown values fall back to
// AnchorSaved.
func ParseAnchor(s string) Anchor {
	if strings.EqualFold(strings.TrimSpace(s), "relative") {
		return AnchorRelative
	}
	return AnchorSaved
}

// Block is a multi-line region that is redrawn in place. It is not safe for
// concurrent use; the render loop owns it.
type Block struct {
	s      Surface
	anchor Anchor
	lines  int
	opened bool
}

// NewBlock creates a block drawing on s.
func NewBlock(s Surface, anchor Anchor) *Block {
	return &Block{s: s, anchor: anchor}
}

// Lines returns how many lines the last successful draw occupied.
func (b *Block) Lines() int {
	return b.lines
}

// Open hides the cursor, records the anchor and clears below it.
// Non-interactive surfaces get no escape sequences at all.
func (b *Block) Open() error {
	if !b.s.Capabilities().Interactive {
		return nil
	}
	b.opened = true
	b.s.HideCursor()
	if b.anchor == AnchorSaved {
		b.s.SaveCursor()
	}
	b.s.ClearDown()
	return b.s.Flush()
}

// Draw replaces the block contents with lines in one batched write. The line
// count is only updated when the write succeeds.
func (b *Block) Draw(lines []string) error {
	if !b.opened {
		return nil
	}
	b.rewind()
	b.s.ClearDown()
	b.s.Write(strings.Join(lines, "\n"))
	if err := b.s.Flush(); err != nil {
		return err
	}
	b.lines = len(lines)
	return nil
}

func (b *Block) rewind() {
	switch b.anchor {
	case AnchorRelative:
		b.s.LineStart()
		b.s.MoveUp(b.lines - 1)
	default:
		b.s.RestoreCursor()
	}
}

// Close draws lines one last time, shows the cursor and moves past the
// block. On a non-interactive surface it prints lines plainly.
func (b *Block) Close(lines []string) error {
	if !b.opened {
		if len(lines) == 0 {
			return nil
		}
		b.s.Write(strings.Join(lines, "\n") + "\n")
		return b.s.Flush()
	}

	b.opened = false
	b.rewind()
	b.s.ClearDown()
	if len(lines) > 0 {
		b.s.Write(strings.Join(lines, "\n") + "\n")
	}
	b.s.ShowCursor()
	if err := b.s.Flush(); err != nil {
		// Cursor visibility must come back even if the final frame did not.
		b.s.ShowCursor()
		_ = b.s.Flush()
		return err
	}
	b.lines = len(lines)
	return nil
}
