package spinner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spinplex/internal/frames"
)

func TestComposeLine(t *testing.T) {
	set := testSet("a", "b")
	withEnd := frames.MustFromGlyphs(time.Millisecond, []string{"a"}, frames.WithEnd(frames.Plain("✔")))

	tests := []struct {
		name  string
		snap  snapshot
		frame frames.Frame
		want  string
	}{
		{
			name:  "spinner",
			snap:  snapshot{kind: KindSpinner, set: set, text: "loading"},
			frame: frames.Plain("b"),
			want:  "b  loading",
		},
		{
			name:  "stopped spinner shows label only",
			snap:  snapshot{kind: KindSpinner, set: set, text: "done", stopped: true},
			frame: frames.Plain("b"),
			want:  "done",
		},
		{
			name: "stopped spinner with end frame",
			snap: snapshot{kind: KindSpinner, set: withEnd, text: "done", stopped: true},
			want: "✔  done",
		},
		{
			name: "half bar",
			snap: snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 10, goal: 100, current: 50},
			want: "[=====     ]  50.00% | 50/100",
		},
		{
			name: "bar with label",
			snap: snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 4, goal: 4, current: 1, text: "copying"},
			want: "[=   ]  25.00% | 1/4  copying",
		},
		{
			name: "fraction floors",
			snap: snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 10, goal: 3, current: 1},
			want: "[===       ]  33.33% | 1/3",
		},
		{
			name: "zero goal is complete",
			snap: snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 4, goal: 0, current: 0},
			want: "[====]  100.00% | 0/0",
		},
		{
			name: "zero size has empty body",
			snap: snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 0, goal: 10, current: 5},
			want: "[]  50.00% | 5/10",
		},
		{
			name: "stopped bar shows label only",
			snap: snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 4, goal: 4, current: 2, text: "copied", stopped: true},
			want: "copied",
		},
	}

	c := composer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.line(tt.snap, tt.frame))
		})
	}
}

func TestComposeHalfBarCells(t *testing.T) {
	line := composer{}.line(snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 10, goal: 100, current: 50}, frames.Frame{})

	body := line[1:strings.Index(line, "]")]
	assert.Equal(t, 5, strings.Count(body, "="))
	assert.Equal(t, 5, strings.Count(body, " "))
	assert.Contains(t, line, "50.00%")
}

func TestComposeTruncates(t *testing.T) {
	tests := []struct {
		name  string
		width int
		snap  snapshot
		want  string
	}{
		{
			name:  "fits",
			width: 20,
			snap:  snapshot{kind: KindSpinner, text: "short"},
			want:  "a  short",
		},
		{
			name:  "label cut",
			width: 8,
			snap:  snapshot{kind: KindSpinner, text: "a long label"},
			want:  "a  a lo…",
		},
		{
			name:  "wide runes",
			width: 7,
			snap:  snapshot{kind: KindSpinner, text: "日本語テキスト"},
			want:  "a  日…",
		},
		{
			name:  "prefix wider than terminal",
			width: 6,
			snap:  snapshot{kind: KindProgress, bar: frames.DefaultBar, size: 10, goal: 10, current: 10},
			want:  "[====…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := composer{width: tt.width}
			got := c.line(tt.snap, frames.Plain("a"))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 100.0, percent(0, 0))
	assert.Equal(t, 100.0, percent(5, -1))
	assert.Equal(t, 50.0, percent(50, 100))
	assert.Equal(t, 0.0, percent(0, 7))
}
