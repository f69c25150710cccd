package spinner

import (
	"sync"
	"testing"
	"testing/quick"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinplex/internal/frames"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	reg, _ := newTestRegistry(t, false)

	_, err := reg.Last()
	assert.ErrorIs(t, err, ErrEmpty)

	a, err := reg.Add(SpinnerSpec(testSet("a"), "one"))
	require.NoError(t, err)
	b, err := reg.Add(ProgressSpec(10, 5, "two", frames.DefaultBar))
	require.NoError(t, err)

	assert.Equal(t, ID(1), a)
	assert.Equal(t, ID(2), b)

	last, err := reg.Last()
	require.NoError(t, err)
	assert.Equal(t, b, last)
	assert.Equal(t, []ID{a, b}, reg.IDs())
}

func TestAddRejectsSpinnerWithoutFrames(t *testing.T) {
	reg, _ := newTestRegistry(t, false)

	_, err := reg.Add(SpinnerSpec(nil, "x"))
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Equal(t, 0, reg.Len())
}

func TestConcurrentAddsAreDistinct(t *testing.T) {
	const n = 200
	reg, _ := newTestRegistry(t, true)
	set := testSet("a", "b")

	ids := make([]ID, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := reg.Add(SpinnerSpec(set, "worker"))
			assert.NoError(t, err)
			ids[i] = id
		}()
	}
	wg.Wait()

	seen := make(map[ID]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Equal(t, n, reg.Len())
	require.NoError(t, reg.Close())
}

// TestAddIDsDistinctProperty checks that any number of adds yields that many
// distinct ids.
func TestAddIDsDistinctProperty(t *testing.T) {
	property := func(count uint8) bool {
		reg, err := New(WithSurface(newQuietSurface()))
		if err != nil {
			return false
		}
		defer reg.Close()

		seen := make(map[ID]bool)
		for range int(count) {
			id, err := reg.Add(ProgressSpec(1, 1, "", frames.DefaultBar))
			if err != nil || seen[id] {
				return false
			}
			seen[id] = true
		}
		return reg.Len() == int(count)
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 20}); err != nil {
		t.Error(err)
	}
}

func TestUnknownIDsAreIgnored(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	id, err := reg.Add(ProgressSpec(10, 10, "kept", frames.DefaultBar))
	require.NoError(t, err)
	reg.SetValue(id, 4)

	for _, unknown := range []ID{0, id + 1, 999} {
		assert.NotPanics(t, func() {
			reg.SetText(unknown, "nope")
			reg.SetValue(unknown, 7)
			reg.Stop(unknown)
			reg.Remove(unknown)
		})
	}

	cur, goal, ok := reg.Value(id)
	require.True(t, ok)
	assert.Equal(t, 4, cur)
	assert.Equal(t, 10, goal)
	text, _ := reg.Text(id)
	assert.Equal(t, "kept", text)
	assert.False(t, reg.Stopped(id))
	assert.Equal(t, 1, reg.Len())

	_, ok = reg.Info(999)
	assert.False(t, ok)
}

func TestSetValueClamps(t *testing.T) {
	tests := []struct {
		name string
		set  int
		want int
	}{
		{"within goal", 30, 30},
		{"at goal", 50, 50},
		{"over goal", 80, 50},
		{"negative", -5, 0},
	}

	reg, _ := newTestRegistry(t, false)
	id, err := reg.Add(ProgressSpec(50, 10, "", frames.DefaultBar))
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg.SetValue(id, tt.set)
			cur, _, ok := reg.Value(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, cur)
		})
	}
}

func TestSetValueAfterStop(t *testing.T) {
	reg, _ := newTestRegistry(t, false)
	id, err := reg.Add(ProgressSpec(10, 10, "label", frames.DefaultBar))
	require.NoError(t, err)

	reg.Stop(id)
	reg.SetValue(id, 7)

	cur, _, _ := reg.Value(id)
	assert.Equal(t, 7, cur, "stored value still changes")

	info, ok := reg.Info(id)
	require.True(t, ok)
	snap := snapshot{kind: info.Kind, bar: frames.DefaultBar, size: 10, goal: info.Goal, current: info.Current, text: info.Text, stopped: info.Stopped}
	assert.Equal(t, "label", composer{}.line(snap, frames.Frame{}))
}

func TestSetValueOnSpinnerIsNoop(t *testing.T) {
	reg, _ := newTestRegistry(t, false)
	id, err := reg.Add(SpinnerSpec(testSet("a"), "spin"))
	require.NoError(t, err)

	reg.SetValue(id, 5)
	_, _, ok := reg.Value(id)
	assert.False(t, ok)
	info, _ := reg.Info(id)
	assert.Equal(t, 0, info.Current)
}

func TestStopIsIdempotent(t *testing.T) {
	m := NewMetrics(nil)
	reg, _ := newTestRegistry(t, false, WithMetrics(m))
	id, err := reg.Add(SpinnerSpec(testSet("a"), "spin"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Active))

	reg.Stop(id)
	reg.Stop(id)
	assert.True(t, reg.Stopped(id))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Active))

	reg.SetText(id, "relabelled")
	text, _ := reg.Text(id)
	assert.Equal(t, "relabelled", text)
}

func TestRemove(t *testing.T) {
	reg, _ := newTestRegistry(t, false)
	a, _ := reg.Add(SpinnerSpec(testSet("a"), "a"))
	b, _ := reg.Add(SpinnerSpec(testSet("b"), "b"))
	c, _ := reg.Add(SpinnerSpec(testSet("c"), "c"))

	reg.Remove(b)

	assert.Equal(t, []ID{a, c}, reg.IDs())
	_, ok := reg.Info(b)
	assert.False(t, ok)

	last, err := reg.Last()
	require.NoError(t, err)
	assert.Equal(t, c, last)

	d, _ := reg.Add(SpinnerSpec(testSet("d"), "d"))
	assert.Equal(t, ID(4), d, "ids are never reused")
}

func TestRemovedEntityIsSkippedBySnapshot(t *testing.T) {
	e := newEntity(1, SpinnerSpec(testSet("a"), "x"))
	_, ok := e.snapshot()
	require.True(t, ok)

	assert.True(t, e.remove())
	_, ok = e.snapshot()
	assert.False(t, ok)
}

func TestLabelsStayOnOneLine(t *testing.T) {
	reg, _ := newTestRegistry(t, false)
	id, _ := reg.Add(SpinnerSpec(testSet("a"), "two\nlines"))

	text, _ := reg.Text(id)
	assert.Equal(t, "two lines", text)

	reg.SetText(id, "a\r\nb")
	text, _ = reg.Text(id)
	assert.Equal(t, "a b", text)
}

func TestList(t *testing.T) {
	reg, _ := newTestRegistry(t, false)
	fs := frames.MustFromGlyphs(DefaultTick, []string{"a"}, frames.WithName("mine"))
	reg.Add(SpinnerSpec(fs, "spin"))
	reg.Add(ProgressSpec(-3, -1, "bar", frames.DefaultBar))

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, Info{ID: 1, Kind: KindSpinner, Text: "spin", Style: "mine"}, list[0])
	assert.Equal(t, Info{ID: 2, Kind: KindProgress, Text: "bar"}, list[1])
}
