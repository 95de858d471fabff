package vec

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(4, 6)

	if got := a.Add(b); !got.Equal(New(5, 8)) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); !got.Equal(New(3, 4)) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(3); !got.Equal(New(3, 6)) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := a.Neg(); !got.Equal(New(-1, -2)) {
		t.Errorf("Neg failed: got %v", got)
	}
	if !a.Equal(New(1, 2)) {
		t.Error("operations mutated the receiver")
	}
}

func TestVec2_Divide(t *testing.T) {
	got, err := New(4, 8).Divide(2)
	if err != nil {
		t.Fatalf("divide failed: %v", err)
	}
	if !got.Equal(New(2, 4)) {
		t.Errorf("Divide failed: got %v", got)
	}

	_, err = New(1, 1).Divide(0)
	if !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestVec2_Magnitude(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{New(3, 4), 5},
		{New(0, 0), 0},
		{New(-1, 0), 1},
		{New(1, 1), math.Sqrt2},
	}

	for _, tt := range tests {
		if got := tt.v.Magnitude(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Magnitude(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if tt.v.Length() != tt.v.Magnitude() {
			t.Errorf("Length(%v) differs from Magnitude", tt.v)
		}
	}
}

func TestVec2_Normalize(t *testing.T) {
	vectors := []Vec2{New(3, 4), New(-7, 0.5), New(1e-9, 0), New(1e9, -1e9), New(0, -2)}
	for _, v := range vectors {
		if m := v.Normalize().Magnitude(); math.Abs(m-1) > 1e-9 {
			t.Errorf("Normalize(%v) has magnitude %v", v, m)
		}
	}

	if got := Zero().Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector should be zero, got %v", got)
	}
}

func TestVec2_DistanceTo(t *testing.T) {
	if d := New(1, 1).DistanceTo(New(4, 5)); d != 5 {
		t.Errorf("DistanceTo = %v, want 5", d)
	}
}

func TestVec2_Polar(t *testing.T) {
	tests := []struct {
		mag, deg float64
	}{
		{9.81, 90},
		{1, 0},
		{2, 180},
		{5, -45},
	}

	for _, tt := range tests {
		v := FromPolarDegrees(tt.mag, tt.deg)
		mag, deg := v.Polar()
		if math.Abs(mag-tt.mag) > 1e-9 || math.Abs(deg-tt.deg) > 1e-9 {
			t.Errorf("Polar(FromPolarDegrees(%v, %v)) = (%v, %v)", tt.mag, tt.deg, mag, deg)
		}
	}

	down := FromPolarDegrees(1, 90)
	if math.Abs(down.X) > 1e-12 || math.Abs(down.Y-1) > 1e-12 {
		t.Errorf("90 degrees should point down, got %v", down)
	}
}

func TestVec2_IsValid(t *testing.T) {
	if !New(1, 2).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if New(math.NaN(), 0).IsValid() || New(0, math.Inf(1)).IsValid() {
		t.Error("NaN/Inf vector reported valid")
	}
}
