// Package canvas draws small braille pictures used as spinner glyphs.
// Every braille character covers a 2x4 pixel cell.
package canvas

import "strings"

// brailleBase is the Unicode code point for an empty braille character.
const brailleBase = '\u2800'

// dotBits maps a pixel inside a 2x4 cell to its braille dot bit.
//
//	col 0  col 1
//	  1      4    row 0
//	  2      5    row 1
//	  3      6    row 2
//	  7      8    row 3
var dotBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X, Y int
}

// Canvas is a pixel grid rendered as braille characters.
type Canvas struct {
	width  int
	height int
	pixels [][]bool // [y][x]
}

// New creates a canvas. Dimensions are rounded up to whole braille cells
// (width to a multiple of 2, height to a multiple of 4).
func New(width, height int) *Canvas {
	if width%2 != 0 {
		width++
	}
	if height%4 != 0 {
		height += 4 - (height % 4)
	}

	pixels := make([][]bool, height)
	for y := range pixels {
		pixels[y] = make([]bool, width)
	}

	return &Canvas{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Cols returns the width in braille characters.
func (c *Canvas) Cols() int {
	return c.width / 2
}

// Rows returns the height in braille characters.
func (c *Canvas) Rows() int {
	return c.height / 4
}

func (c *Canvas) inBounds(p Point) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}

// Set turns a pixel on. Out-of-bounds points are ignored.
func (c *Canvas) Set(p Point) {
	if c.inBounds(p) {
		c.pixels[p.Y][p.X] = true
	}
}

// Clear turns a pixel off. Out-of-bounds points are ignored.
func (c *Canvas) Clear(p Point) {
	if c.inBounds(p) {
		c.pixels[p.Y][p.X] = false
	}
}

// Get reports whether a pixel is on. Out-of-bounds points report false.
func (c *Canvas) Get(p Point) bool {
	if !c.inBounds(p) {
		return false
	}
	return c.pixels[p.Y][p.X]
}

// Fill turns every pixel on.
func (c *Canvas) Fill() {
	c.setAll(true)
}

// Reset turns every pixel off.
func (c *Canvas) Reset() {
	c.setAll(false)
}

func (c *Canvas) setAll(on bool) {
	for y := range c.pixels {
		for x := range c.pixels[y] {
			c.pixels[y][x] = on
		}
	}
}

// Trail lights length points of path ending at index head, walking
// backwards and wrapping around the start of the path.
func (c *Canvas) Trail(path []Point, head, length int) {
	n := len(path)
	if n == 0 {
		return
	}
	if length > n {
		length = n
	}
	for i := 0; i < length; i++ {
		idx := ((head-i)%n + n) % n
		c.Set(path[idx])
	}
}

func (c *Canvas) cell(col, row int) rune {
	px, py := col*2, row*4
	r := brailleBase
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 4; dy++ {
			if c.Get(Point{px + dx, py + dy}) {
				r += dotBits[dx][dy]
			}
		}
	}
	return r
}

// Row renders one row of braille characters. Out-of-range rows are empty.
func (c *Canvas) Row(row int) string {
	if row < 0 || row >= c.Rows() {
		return ""
	}

	var sb strings.Builder
	sb.Grow(c.Cols() * 3)
	for col := 0; col < c.Cols(); col++ {
		sb.WriteRune(c.cell(col, row))
	}
	return sb.String()
}

// String renders the whole canvas, rows separated by newlines.
func (c *Canvas) String() string {
	rows := make([]string, c.Rows())
	for i := range rows {
		rows[i] = c.Row(i)
	}
	return strings.Join(rows, "\n")
}

// TrailFrames renders one single-row frame per head position along path.
// The result has len(path) entries, suitable for a spinner frame set.
func TrailFrames(width, height int, path []Point, length int) []string {
	c := New(width, height)
	out := make([]string, len(path))
	for head := range path {
		c.Reset()
		c.Trail(path, head, length)
		out[head] = c.Row(0)
	}
	return out
}
