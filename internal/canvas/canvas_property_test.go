package canvas

import (
	"testing"
	"testing/quick"
)

// TestNewDimensionRounding verifies that New always rounds dimensions up to
// whole braille cells and never more than necessary.
func TestNewDimensionRounding(t *testing.T) {
	property := func(width, height uint8) bool {
		w, h := int(width), int(height)
		if w == 0 || h == 0 {
			return true
		}

		c := New(w, h)
		return c.Width()%2 == 0 &&
			c.Height()%4 == 0 &&
			c.Width() >= w && c.Height() >= h &&
			c.Width() <= w+1 && c.Height() <= h+3
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestSetGetRoundTrip verifies that Set followed by Get returns true for
// any in-bounds point.
func TestSetGetRoundTrip(t *testing.T) {
	property := func(width, height, x, y uint8) bool {
		c := New(int(width)+2, int(height)+4)
		p := Point{int(x), int(y)}
		if p.X >= c.Width() || p.Y >= c.Height() {
			return true
		}

		c.Set(p)
		return c.Get(p)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestRenderedRunesAreBraille verifies every rendered cell is in the
// braille block.
func TestRenderedRunesAreBraille(t *testing.T) {
	positions := []Point{
		{0, 0}, {0, 1}, {0, 2}, {0, 3},
		{1, 0}, {1, 1}, {1, 2}, {1, 3},
	}

	property := func(dots [8]bool) bool {
		c := New(2, 4)
		for i, on := range dots {
			if on {
				c.Set(positions[i])
			}
		}

		r := []rune(c.String())[0]
		return r >= '⠀' && r <= '⣿'
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestTrailLightsAtMostLength verifies Trail never lights more pixels than
// requested.
func TestTrailLightsAtMostLength(t *testing.T) {
	path := []Point{{1, 0}, {2, 0}, {3, 1}, {3, 2}, {2, 3}, {1, 3}, {0, 2}, {0, 1}}

	property := func(head int16, length uint8) bool {
		c := New(4, 4)
		c.Trail(path, int(head), int(length))

		lit := 0
		for _, p := range path {
			if c.Get(p) {
				lit++
			}
		}
		want := int(length)
		if want > len(path) {
			want = len(path)
		}
		return lit == want
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestOutOfBoundsGetReturnsFalse verifies Get is false outside the grid.
func TestOutOfBoundsGetReturnsFalse(t *testing.T) {
	property := func(width, height uint8, x, y int16) bool {
		c := New(int(width)+2, int(height)+4)
		p := Point{int(x), int(y)}
		if p.X >= 0 && p.X < c.Width() && p.Y >= 0 && p.Y < c.Height() {
			return true
		}
		return !c.Get(p)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
