package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

var palette = []string{"#4fc3f7", "#ff8a65", "#aed581", "#f06292", "#ffd54f", "#9575cd"}

// Path is one object's recorded positions in scene coordinates.
type Path struct {
	ID   string
	X, Y []float64
}

// TrajectoriesSVG draws each path as a polyline over a width x height
// scene. Screen coordinates are kept, so y grows downward as on screen.
func TrajectoriesSVG(w io.Writer, paths []Path, width, height float64) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, p := range paths {
		n := min(len(p.X), len(p.Y))
		if n == 0 {
			continue
		}
		color := palette[i%len(palette)]

		fmt.Fprintf(&sb, `<g id="%s">`+"\n", escape(p.ID))
		if n > 1 {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
			for j := range n {
				if j == 0 {
					fmt.Fprintf(&sb, "%.1f,%.1f", p.X[j], p.Y[j])
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", p.X[j], p.Y[j])
				}
			}
			sb.WriteString("\"/>\n")
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n", p.X[n-1], p.Y[n-1], color)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-size="12">%s</text>`+"\n",
			p.X[n-1]+6, p.Y[n-1]-6, color, escape(p.ID))
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// CanvasSVG converts a braille canvas to an SVG of dots, scale pixels per
// sub-cell.
func CanvasSVG(w io.Writer, canvas *viz.Canvas, scale float64) error {
	if canvas == nil {
		return nil
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	radius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
							baseX+float64(dx)*scale+scale/2, baseY+float64(dy)*scale+scale/2, radius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }

// TraceCanvas draws a run onto a cols x rows braille canvas: every point
// mass trail, plus surfaces and bodies as they are in the last frame.
func TraceCanvas(frames []experiment.Frame, worldW, worldH float64, cols, rows int) *viz.Canvas {
	c := viz.NewCanvas(cols, rows)
	c.SetViewport(worldW, worldH)
	if len(frames) == 0 {
		return c
	}

	last := make(map[string]physics.PointMassState)
	for _, f := range frames {
		for _, st := range f.States {
			pm, ok := st.(physics.PointMassState)
			if !ok {
				continue
			}
			if prev, seen := last[pm.ID]; seen {
				c.Line(prev.X, prev.Y, pm.X, pm.Y)
			}
			last[pm.ID] = pm
		}
	}

	for _, st := range frames[len(frames)-1].States {
		switch s := st.(type) {
		case physics.SurfaceState:
			c.Line(s.StartX, s.StartY, s.EndX, s.EndY)
		case physics.PointMassState:
			c.Disc(s.X, s.Y, s.Size/2)
		}
	}
	return c
}
