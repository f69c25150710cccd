// Package frames defines immutable animation definitions: an ordered,
// non-empty sequence of display frames plus the interval at which a spinner
// advances through them.
package frames

import (
	"errors"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Errors returned when constructing a FrameSet.
var (
	ErrEmptyFrameSet   = errors.New("frame set must contain at least one frame")
	ErrInvalidInterval = errors.New("frame set interval must be positive")
)

// DefaultInterval is the frame interval used by FromGlyphs when none is given.
const DefaultInterval = 80 * time.Millisecond

// Frame is a single display frame: a glyph and an optional style.
type Frame struct {
	Glyph string
	Style lipgloss.Style
}

// Plain returns an unstyled frame.
func Plain(glyph string) Frame {
	return Frame{Glyph: glyph, Style: lipgloss.NewStyle()}
}

// Render applies the frame style through r. A nil renderer returns the bare
// glyph, which is what non-interactive output wants.
func (f Frame) Render(r *lipgloss.Renderer) string {
	if r == nil {
		return f.Glyph
	}
	return f.Style.Renderer(r).Render(f.Glyph)
}

// FrameSet is an immutable animation definition.
type FrameSet struct {
	name     string
	frames   []Frame
	interval time.Duration
	end      *Frame
}

// Option configures a FrameSet during construction.
type Option func(*FrameSet)

// WithEnd sets the frame shown in front of the label once an entity stops.
func WithEnd(f Frame) Option {
	return func(fs *FrameSet) {
		end := f
		fs.end = &end
	}
}

// WithName labels the set, mostly for catalog listings and logs.
func WithName(name string) Option {
	return func(fs *FrameSet) {
		fs.name = name
	}
}

// New creates a FrameSet. The frame slice is copied so later changes by the
// caller do not leak into the set.
func New(interval time.Duration, frames []Frame, opts ...Option) (*FrameSet, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyFrameSet
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	fs := &FrameSet{
		frames:   make([]Frame, len(frames)),
		interval: interval,
	}
	copy(fs.frames, frames)

	for _, opt := range opts {
		opt(fs)
	}
	return fs, nil
}

// FromGlyphs creates a FrameSet of unstyled frames.
func FromGlyphs(interval time.Duration, glyphs []string, opts ...Option) (*FrameSet, error) {
	fr := make([]Frame, len(glyphs))
	for i, g := range glyphs {
		fr[i] = Plain(g)
	}
	return New(interval, fr, opts...)
}

// MustFromGlyphs is like FromGlyphs but panics on error. Intended for
// package-level catalog tables.
func MustFromGlyphs(interval time.Duration, glyphs []string, opts ...Option) *FrameSet {
	fs, err := FromGlyphs(interval, glyphs, opts...)
	if err != nil {
		panic(err)
	}
	return fs
}

// Name returns the set name, empty if none was given.
func (fs *FrameSet) Name() string {
	return fs.name
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int {
	return len(fs.frames)
}

// Interval returns the time between frames.
func (fs *FrameSet) Interval() time.Duration {
	return fs.interval
}

// At returns the frame at i modulo the set length. Negative indices wrap.
func (fs *FrameSet) At(i int) Frame {
	c := BalancedIndex(i, [][]Frame{fs.frames})[0]
	return c.Value
}

// End returns the terminal frame, if one was configured.
func (fs *FrameSet) End() (Frame, bool) {
	if fs.end == nil {
		return Frame{}, false
	}
	return *fs.end, true
}

// Frames returns a copy of the frame sequence.
func (fs *FrameSet) Frames() []Frame {
	out := make([]Frame, len(fs.frames))
	copy(out, fs.frames)
	return out
}

// Glyphs returns the bare glyph of every frame.
func (fs *FrameSet) Glyphs() []string {
	out := make([]string, len(fs.frames))
	for i, f := range fs.frames {
		out[i] = f.Glyph
	}
	return out
}
