package vec

import (
	"errors"
	"fmt"
	"math"
)

var ErrDivideByZero = errors.New("vec: division by zero")

// Vec2 is an immutable 2D vector. Every method returns a new value.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func Zero() Vec2  { return Vec2{} }
func One() Vec2   { return Vec2{X: 1, Y: 1} }
func Up() Vec2    { return Vec2{X: 0, Y: -1} }
func Down() Vec2  { return Vec2{X: 0, Y: 1} }
func Left() Vec2  { return Vec2{X: -1, Y: 0} }
func Right() Vec2 { return Vec2{X: 1, Y: 0} }

// FromAngle returns the unit vector pointing at angle rad.
func FromAngle(rad float64) Vec2 {
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// FromPolarDegrees builds a vector of length mag pointing at deg degrees.
// Screen coordinates are assumed, so 90 degrees points down.
func FromPolarDegrees(mag, deg float64) Vec2 {
	return FromAngle(deg * math.Pi / 180).Scale(mag)
}

// Polar is the inverse of FromPolarDegrees.
func (v Vec2) Polar() (mag, deg float64) {
	return math.Hypot(v.X, v.Y), math.Atan2(v.Y, v.X) * 180 / math.Pi
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

func (v Vec2) Divide(d float64) (Vec2, error) {
	if d == 0 {
		return Vec2{}, ErrDivideByZero
	}
	return Vec2{X: v.X / d, Y: v.Y / d}, nil
}

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Magnitude() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) Length() float64 { return v.Magnitude() }

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has zero length.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Magnitude() }

// Perp rotates v by +90 degrees.
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%g, %g)", v.X, v.Y)
}
