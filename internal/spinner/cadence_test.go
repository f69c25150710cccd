package spinner

import (
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinplex/internal/frames"
)

func glyphsOf(fr []frames.Frame) []string {
	out := make([]string, len(fr))
	for i, f := range fr {
		out[i] = f.Glyph
	}
	return out
}

func TestPerEntityCadence(t *testing.T) {
	fast := frames.MustFromGlyphs(10*time.Millisecond, []string{"a", "b", "c"})
	slow := frames.MustFromGlyphs(30*time.Millisecond, []string{"x", "y"})
	snaps := []snapshot{
		{id: 1, kind: KindSpinner, set: fast},
		{id: 2, kind: KindSpinner, set: slow},
		{id: 3, kind: KindProgress, goal: 10},
	}

	c := newCadenceState(CadencePerEntity, time.Millisecond, time.Second)
	t0 := time.Unix(0, 0)

	wait := c.advance(t0, snaps)
	assert.Equal(t, 10*time.Millisecond, wait)
	assert.Equal(t, []string{"a", "x", ""}, glyphsOf(c.frames(snaps)))

	wait = c.advance(t0.Add(5*time.Millisecond), snaps)
	assert.Equal(t, 5*time.Millisecond, wait, "nothing due yet")
	assert.Equal(t, []string{"a", "x", ""}, glyphsOf(c.frames(snaps)))

	c.advance(t0.Add(10*time.Millisecond), snaps)
	assert.Equal(t, []string{"b", "x", ""}, glyphsOf(c.frames(snaps)))

	c.advance(t0.Add(20*time.Millisecond), snaps)
	c.advance(t0.Add(30*time.Millisecond), snaps)
	assert.Equal(t, []string{"a", "y", ""}, glyphsOf(c.frames(snaps)), "each set wraps at its own length and speed")
}

func TestPerEntityCadenceSkipsMissedFrames(t *testing.T) {
	set := frames.MustFromGlyphs(10*time.Millisecond, []string{"a", "b", "c", "d"})
	snaps := []snapshot{{id: 1, kind: KindSpinner, set: set}}

	c := newCadenceState(CadencePerEntity, time.Millisecond, time.Second)
	t0 := time.Unix(0, 0)
	c.advance(t0, snaps)

	wait := c.advance(t0.Add(95*time.Millisecond), snaps)
	assert.Equal(t, 10*time.Millisecond, wait)
	assert.Equal(t, []string{"b"}, glyphsOf(c.frames(snaps)))
}

func TestPerEntityCadenceIdle(t *testing.T) {
	c := newCadenceState(CadencePerEntity, time.Millisecond, 250*time.Millisecond)
	wait := c.advance(time.Unix(0, 0), []snapshot{{id: 1, kind: KindProgress}})
	assert.Equal(t, 250*time.Millisecond, wait)
}

func TestPerEntityCadenceForgetsGoneEntities(t *testing.T) {
	set := testSet("a", "b")
	c := newCadenceState(CadencePerEntity, time.Millisecond, time.Second)
	t0 := time.Unix(0, 0)

	c.advance(t0, []snapshot{{id: 1, kind: KindSpinner, set: set}, {id: 2, kind: KindSpinner, set: set}})
	require.Len(t, c.paces, 2)

	c.advance(t0, []snapshot{{id: 2, kind: KindSpinner, set: set}, {id: 1, kind: KindSpinner, set: set, stopped: true}})
	assert.Len(t, c.paces, 1)
	assert.Contains(t, c.paces, ID(2))
}

func TestSharedCadence(t *testing.T) {
	two := testSet("a", "b")
	three := testSet("x", "y", "z")
	snaps := []snapshot{
		{id: 1, kind: KindSpinner, set: two},
		{id: 2, kind: KindSpinner, set: three},
		{id: 3, kind: KindSpinner, set: three, stopped: true},
	}

	c := newCadenceState(CadenceShared, 10*time.Millisecond, time.Second)
	t0 := time.Unix(0, 0)

	assert.Equal(t, 10*time.Millisecond, c.advance(t0, snaps))
	assert.Equal(t, []string{"a", "x", ""}, glyphsOf(c.frames(snaps)))

	// A redraw between ticks does not advance the counter.
	assert.Equal(t, 6*time.Millisecond, c.advance(t0.Add(4*time.Millisecond), snaps))
	assert.Equal(t, 0, c.counter)

	for i := 1; i <= 5; i++ {
		c.advance(t0.Add(time.Duration(i)*10*time.Millisecond), snaps)
	}
	assert.Equal(t, 5, c.counter)
	assert.Equal(t, []string{"b", "z", ""}, glyphsOf(c.frames(snaps)))
}

// TestSharedFramesMatchModulo verifies that in shared mode every spinner
// shows frame counter mod len, whatever its length.
func TestSharedFramesMatchModulo(t *testing.T) {
	property := func(counter uint16, lengths []uint8) bool {
		snaps := make([]snapshot, 0, len(lengths))
		for i, n := range lengths {
			glyphs := make([]string, int(n%7)+1)
			for j := range glyphs {
				glyphs[j] = string(rune('a' + j))
			}
			snaps = append(snaps, snapshot{id: ID(i + 1), kind: KindSpinner, set: testSet(glyphs...)})
		}

		c := newCadenceState(CadenceShared, time.Millisecond, time.Second)
		c.counter = int(counter)

		for i, f := range c.frames(snaps) {
			n := snaps[i].set.Len()
			if f.Glyph != string(rune('a'+int(counter)%n)) {
				return false
			}
		}
		return true
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
