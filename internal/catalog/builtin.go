package catalog

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"spinplex/internal/canvas"
	"spinplex/internal/frames"
)

// circlePath is a clockwise loop on a 4x4 pixel grid (two braille cells),
// starting top-center:
//
//	    0   1   2   3
//	0       *   *
//	1   *           *
//	2   *           *
//	3       *   *
var circlePath = []canvas.Point{
	{X: 1, Y: 0}, {X: 2, Y: 0},
	{X: 3, Y: 1}, {X: 3, Y: 2},
	{X: 2, Y: 3}, {X: 1, Y: 3},
	{X: 0, Y: 2}, {X: 0, Y: 1},
}

// circleTrail is the number of lit pixels including the head.
const circleTrail = 4

// rainbowFrames is how many hue steps one rainbow cycle takes.
const rainbowFrames = 24

// pulseFrames is the length of one pulse, in and out.
const pulseFrames = 16

var (
	doneFrame = frames.Frame{Glyph: "✔", Style: lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f"))}
	endDot    = frames.Plain("•")
)

func builtinSets() map[string]*frames.FrameSet {
	glyphs := func(name string, interval time.Duration, g []string, opts ...frames.Option) *frames.FrameSet {
		return frames.MustFromGlyphs(interval, g, append(opts, frames.WithName(name))...)
	}

	sets := map[string]*frames.FrameSet{
		"dots":   glyphs("dots", 80*time.Millisecond, []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}, frames.WithEnd(doneFrame)),
		"line":   glyphs("line", 130*time.Millisecond, []string{"|", "/", "-", "\\"}),
		"arc":    glyphs("arc", 100*time.Millisecond, []string{"◜", "◠", "◝", "◞", "◡", "◟"}, frames.WithEnd(doneFrame)),
		"bounce": glyphs("bounce", 120*time.Millisecond, []string{"⠁", "⠂", "⠄", "⠂"}),
		"arrow":  glyphs("arrow", 100*time.Millisecond, []string{"←", "↖", "↑", "↗", "→", "↘", "↓", "↙"}),
		"circle": glyphs("circle", 80*time.Millisecond, canvas.TrailFrames(4, 4, circlePath, circleTrail), frames.WithEnd(doneFrame)),
	}
	sets["rainbow"] = rainbowSet()
	sets["pulse"] = pulseSet()
	return sets
}

// rainbowSet walks the circle trail while cycling the hue once around the
// wheel. The set length is a multiple of the path length so the cycle is
// seamless.
func rainbowSet() *frames.FrameSet {
	trail := canvas.TrailFrames(4, 4, circlePath, circleTrail)
	out := make([]frames.Frame, rainbowFrames)
	for i := range out {
		hue := 360.0 * float64(i) / float64(rainbowFrames)
		c := colorful.Hcl(hue, 0.6, 0.7).Clamped()
		out[i] = frames.Frame{
			Glyph: trail[i%len(trail)],
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())),
		}
	}
	fs, err := frames.New(80*time.Millisecond, out, frames.WithName("rainbow"), frames.WithEnd(doneFrame))
	if err != nil {
		panic(err)
	}
	return fs
}

// pulseSet fades a dot in and out along an eased brightness curve.
func pulseSet() *frames.FrameSet {
	out := make([]frames.Frame, pulseFrames)
	for i, gain := range easedCurve(pulseFrames) {
		c := colorful.Hcl(200, 0.4, 0.25+0.6*gain).Clamped()
		out[i] = frames.Frame{
			Glyph: "●",
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())),
		}
	}
	fs, err := frames.New(60*time.Millisecond, out, frames.WithName("pulse"), frames.WithEnd(endDot))
	if err != nil {
		panic(err)
	}
	return fs
}

// easedCurve returns a symmetric rise-and-fall curve in [0, 1] of length n.
func easedCurve(n int) []float64 {
	curve := make([]float64, n)
	half := n / 2
	if half == 0 {
		return curve
	}
	step := 1.0 / float64(half)
	for i, j := 0, n-1; i < half; i, j = i+1, j-1 {
		v := ease.InOutQuad(float64(i) * step)
		curve[i] = v
		curve[j] = v
	}
	return curve
}

func builtinBars() map[string]frames.Bar {
	return map[string]frames.Bar{
		"classic": frames.DefaultBar,
		"blocks": {
			Begin:      "",
			Complete:   "█",
			Incomplete: "░",
			End:        "",
			Style:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")),
		},
		"arrows": {
			Begin:      "|",
			Complete:   ">",
			Incomplete: "-",
			End:        "|",
			Style:      lipgloss.NewStyle().Bold(true),
		},
	}
}
