package analysis

import (
	"math"
	"strings"
	"testing"
)

func wave(period, dt float64, n int) (times, values []float64) {
	times = make([]float64, n)
	values = make([]float64, n)
	for i := range n {
		t := float64(i) * dt
		times[i] = t
		values[i] = 3 * math.Cos(2*math.Pi*t/period)
	}
	return times, values
}

func TestDominantPeriod(t *testing.T) {
	_, values := wave(1.0, 0.01, 400)

	period, ok := DominantPeriod(values, 0.01)
	if !ok {
		t.Fatal("expected a period")
	}
	if math.Abs(period-1.0) > 1e-9 {
		t.Errorf("period = %v, want 1", period)
	}
}

func TestDominantPeriod_NonPowerOfTwo(t *testing.T) {
	_, values := wave(0.5, 0.02, 150)

	period, ok := DominantPeriod(values, 0.02)
	if !ok || math.Abs(period-0.5) > 1e-9 {
		t.Errorf("period = %v (ok=%v), want 0.5", period, ok)
	}
}

func TestDominantPeriod_Flat(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 7
	}
	if _, ok := DominantPeriod(flat, 0.01); ok {
		t.Error("flat series has no period")
	}
	if _, ok := DominantPeriod([]float64{1, 2}, 0.01); ok {
		t.Error("short series has no period")
	}
	if _, ok := DominantPeriod(flat, 0); ok {
		t.Error("zero dt has no period")
	}
}

func TestAnalyze(t *testing.T) {
	times, values := wave(1.0, 0.01, 400)

	osc := Analyze(times, values, 0.01)

	if math.Abs(osc.Amplitude-3) > 1e-9 {
		t.Errorf("amplitude = %v, want 3", osc.Amplitude)
	}
	if math.Abs(osc.Frequency()-1) > 1e-9 {
		t.Errorf("frequency = %v, want 1", osc.Frequency())
	}
	want := []float64{0.75, 1.75, 2.75, 3.75}
	if len(osc.Crossings) != len(want) {
		t.Fatalf("crossings = %v, want %v", osc.Crossings, want)
	}
	for i := range want {
		if math.Abs(osc.Crossings[i]-want[i]) > 1e-3 {
			t.Errorf("crossing %d = %v, want %v", i, osc.Crossings[i], want[i])
		}
	}
}

func TestAnalyze_Empty(t *testing.T) {
	osc := Analyze(nil, nil, 0.01)
	if osc.Amplitude != 0 || osc.Period != 0 || osc.Frequency() != 0 {
		t.Errorf("empty analysis = %+v", osc)
	}
}

func TestCrossings(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	values := []float64{-1, 1, -1, -1, 3}

	got := Crossings(times, values, 0)
	want := []float64{0.5, 3.25}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("crossing %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPhasePortraitASCII(t *testing.T) {
	times, values := wave(1.0, 0.01, 100)
	p := NewPhasePortrait("y", values, "vy", times[:50])

	if len(p.Points) != 50 {
		t.Fatalf("points = %d, want 50", len(p.Points))
	}

	out := p.ASCII(40, 10)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("rows = %d, want 10", len(lines))
	}
	for _, line := range lines {
		if n := len([]rune(line)); n != 40 {
			t.Fatalf("row width = %d, want 40", n)
		}
	}
	if !strings.Contains(out, "•") {
		t.Error("no points plotted")
	}
	if !strings.Contains(out, "│") {
		t.Error("x = 0 axis missing")
	}

	var empty *PhasePortrait
	if empty.ASCII(10, 10) != "" {
		t.Error("nil portrait renders nothing")
	}
}
