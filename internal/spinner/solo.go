package spinner

import (
	"errors"

	"spinplex/internal/frames"
)

// Solo is a single spinner with its own render goroutine, ticking at the
// frame set's interval.
type Solo struct {
	reg *Registry
	id  ID
}

// NewSolo starts a spinner showing fs and text. Options apply as for New;
// the cadence is always per-entity.
func NewSolo(fs *frames.FrameSet, text string, opts ...Option) (*Solo, error) {
	if fs == nil {
		return nil, ErrInvalidSpec
	}
	opts = append(opts, WithCadence(CadencePerEntity), WithTick(fs.Interval()))

	reg, err := New(opts...)
	if err != nil {
		return nil, err
	}
	id, err := reg.Add(SpinnerSpec(fs, text))
	if err != nil {
		_ = reg.Close()
		return nil, err
	}
	return &Solo{reg: reg, id: id}, nil
}

// SetText replaces the label.
func (s *Solo) SetText(text string) {
	s.reg.SetText(s.id, text)
}

// Stop freezes the spinner on its final label. The goroutine keeps running
// until Close.
func (s *Solo) Stop() {
	s.reg.Stop(s.id)
}

// Text returns the current label.
func (s *Solo) Text() string {
	text, _ := s.reg.Text(s.id)
	return text
}

// Stopped reports whether Stop was called.
func (s *Solo) Stopped() bool {
	return s.reg.Stopped(s.id)
}

// Close blocks until the render goroutine has exited and the terminal is
// restored.
func (s *Solo) Close() error {
	return s.reg.Close()
}

// WithSolo runs fn while a spinner is shown, then stops and closes it.
func WithSolo(fs *frames.FrameSet, text string, fn func(*Solo) error, opts ...Option) error {
	s, err := NewSolo(fs, text, opts...)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()

	ferr := fn(s)
	s.Stop()
	return errors.Join(ferr, s.Close())
}
