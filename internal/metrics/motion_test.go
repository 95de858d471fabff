package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/physics"
)

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	m.Observe([]physics.State{mass("a", 1, 0, 0, 3, 4), mass("b", 1, 0, 0, 1, 0)}, 0)
	m.Observe([]physics.State{mass("a", 1, 0, 0, 1, 1)}, 1)

	if m.Value() != 5 {
		t.Errorf("expected max speed 5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDistance(t *testing.T) {
	m := NewDistance()
	m.Observe([]physics.State{mass("a", 1, 0, 0, 0, 0), mass("b", 1, 10, 10, 0, 0)}, 0)
	m.Observe([]physics.State{mass("a", 1, 3, 4, 0, 0), mass("b", 1, 10, 12, 0, 0)}, 1)

	if m.Value() != 7 {
		t.Errorf("expected distance 7, got %f", m.Value())
	}

	m.Reset()
	m.Observe([]physics.State{mass("a", 1, 100, 100, 0, 0)}, 2)
	if m.Value() != 0 {
		t.Errorf("expected distance 0 after reset, got %f", m.Value())
	}
}

func TestBounded(t *testing.T) {
	m := NewBounded(800, 600)
	if m.Value() != 1 {
		t.Error("expected 1 with no samples")
	}

	m.Observe([]physics.State{mass("a", 1, 10, 10, 0, 0)}, 0)
	m.Observe([]physics.State{mass("a", 1, 900, 10, 0, 0)}, 1)
	m.Observe([]physics.State{physics.SurfaceState{ID: "floor", StartX: -50}}, 2)
	m.Observe([]physics.State{mass("a", 1, 10, -1, 0, 0)}, 3)

	if got := m.Value(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestStandard(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Standard(9.81, 400, 800, 600) {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy", "energy_drift", "max_speed", "distance", "bounded"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
