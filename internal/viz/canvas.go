package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid. Width and Height are in cells; each cell
// holds 2x4 sub-pixels. World coordinates are mapped onto the sub-pixel
// grid through the viewport, keeping the y-down screen convention.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	worldW, worldH float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		worldW: float64(w * 2),
		worldH: float64(h * 4),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SetViewport sets the world size that fills the canvas.
func (c *Canvas) SetViewport(worldW, worldH float64) {
	if worldW > 0 && worldH > 0 {
		c.worldW, c.worldH = worldW, worldH
	}
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels; out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// project maps world coordinates to sub-pixels.
func (c *Canvas) project(x, y float64) (int, int) {
	px := x / c.worldW * float64(c.Width*2)
	py := y / c.worldH * float64(c.Height*4)
	if math.IsNaN(px) || math.IsNaN(py) || math.IsInf(px, 0) || math.IsInf(py, 0) {
		return -1, -1
	}
	return int(math.Round(px)), int(math.Round(py))
}

// Plot lights the sub-pixel under world point (x, y).
func (c *Canvas) Plot(x, y float64) {
	c.Set(c.project(x, y))
}

// Line draws a segment between two world points. Segments reaching far
// outside the canvas are skipped.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := c.project(x0, y0)
	bx, by := c.project(x1, y1)
	limit := 8 * (c.Width*2 + c.Height*4)
	for _, v := range []int{ax, ay, bx, by} {
		if absInt(v) > limit {
			return
		}
	}
	c.DrawLine(ax, ay, bx, by)
}

// Disc fills a circle of world radius r. Tiny discs still light one dot.
func (c *Canvas) Disc(x, y, r float64) {
	cx, cy := c.project(x, y)
	rx := int(r / c.worldW * float64(c.Width*2))
	ry := int(r / c.worldH * float64(c.Height*4))
	if rx < 1 || ry < 1 {
		c.Set(cx, cy)
		return
	}
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			fx, fy := float64(dx)/float64(rx), float64(dy)/float64(ry)
			if fx*fx+fy*fy <= 1 {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
