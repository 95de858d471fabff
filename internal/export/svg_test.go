package export

import (
	"strings"
	"testing"

	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

func TestTrajectoriesSVG(t *testing.T) {
	paths := []Path{
		{ID: "ball", X: []float64{10, 20, 30}, Y: []float64{100, 110, 130}},
		{ID: "a<b", X: []float64{5}, Y: []float64{5}},
		{ID: "empty"},
	}

	var sb strings.Builder
	if err := TrajectoriesSVG(&sb, paths, 800, 600); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		`viewBox="0 0 800 600"`,
		`d="M10.0,100.0 L20.0,110.0 L30.0,130.0"`,
		`<circle cx="30.0" cy="130.0"`,
		`<g id="a&lt;b">`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Count(out, "<path") != 1 {
		t.Errorf("want one polyline, got %d", strings.Count(out, "<path"))
	}
	if strings.Contains(out, `id="empty"`) {
		t.Error("empty path should be skipped")
	}
}

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	var sb strings.Builder
	if err := CanvasSVG(&sb, c, 2); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(out, `width="16" height="16"`) {
		t.Error("unexpected svg size")
	}

	sb.Reset()
	if err := CanvasSVG(&sb, nil, 2); err != nil || sb.Len() != 0 {
		t.Error("nil canvas writes nothing")
	}
}

func TestTraceCanvas(t *testing.T) {
	frames := []experiment.Frame{
		{Time: 0, States: []physics.State{
			physics.PointMassState{ID: "ball", X: 10, Y: 10, Size: 4},
		}},
		{Time: 1, States: []physics.State{
			physics.PointMassState{ID: "ball", X: 70, Y: 40, Size: 4},
			physics.SurfaceState{ID: "floor", StartX: 0, StartY: 70, EndX: 80, EndY: 70},
		}},
	}

	c := TraceCanvas(frames, 80, 80, 40, 20)
	if strings.Count(c.String(), string(rune(0x2800))) == 40*20 {
		t.Fatal("canvas is blank")
	}

	blank := TraceCanvas(nil, 80, 80, 10, 5)
	if strings.Trim(blank.String(), string(rune(0x2800))+"\n") != "" {
		t.Error("no frames should leave the canvas blank")
	}
}
