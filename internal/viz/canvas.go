// Package viz renders molecular configurations in the terminal: a
// braille pixel canvas, a rotating perspective camera, and a wireframe
// builder that turns a State into atoms, bonds, and a box outline.
package viz

import "strings"

// Each braille cell packs 2x4 dots. Bit offsets per sub-pixel,
// row-major, relative to U+2800:
//
//	0x01 0x08
//	0x02 0x10
//	0x04 0x20
//	0x40 0x80
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille drawing surface of Width x Height cells, giving
// a pixel resolution of (2*Width) x (4*Height).
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// Set turns on the pixel at sub-pixel coordinates (x, y). Out-of-range
// pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= brailleBits[y%4][x%2]
}

// Unset turns the pixel back off.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] &^= brailleBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
	}
}

// DrawLine rasterizes a segment in pixel space with Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width*3 + 1) * c.Height)
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteRune(brailleBase + c.cells[row*c.Width+col])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
