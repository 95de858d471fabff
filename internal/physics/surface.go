package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/vec"
)

const (
	DefaultSurfaceX     = 0.0
	DefaultSurfaceY     = 400.0
	DefaultSurfaceWidth = 800.0
)

// Surface is an immovable segment from Position to EndPosition.
type Surface struct {
	id       string
	position vec.Vec2
	end      vec.Vec2
	angle    float64
	width    float64
	color    string
}

// NewSurface reads positionX/Y, width, angle (degrees) and color from attrs.
func NewSurface(id string, attrs Attributes) *Surface {
	s := &Surface{
		id:       id,
		position: vec.New(attrs.Float("positionX", DefaultSurfaceX), attrs.Float("positionY", DefaultSurfaceY)),
		angle:    attrs.Float("angle", 0) * math.Pi / 180,
		width:    attrs.Float("width", DefaultSurfaceWidth),
		color:    attrs.String("color", ""),
	}
	s.end = s.position.Add(vec.FromAngle(s.angle).Scale(s.width))
	return s
}

func (s *Surface) ID() string             { return s.id }
func (s *Surface) Position() vec.Vec2     { return s.position }
func (s *Surface) EndPosition() vec.Vec2  { return s.end }
func (s *Surface) Velocity() vec.Vec2     { return vec.Zero() }
func (s *Surface) Acceleration() vec.Vec2 { return vec.Zero() }
func (s *Surface) Mass() float64          { return math.Inf(1) }
func (s *Surface) IsStatic() bool         { return true }

// Angle is in radians.
func (s *Surface) Angle() float64 { return s.angle }
func (s *Surface) Width() float64 { return s.width }

func (s *Surface) Update(float64)      {}
func (s *Surface) ApplyForce(vec.Vec2) {}

func (s *Surface) ExportState() State {
	return SurfaceState{
		ID:     s.id,
		Type:   TypeSurface,
		StartX: s.position.X,
		StartY: s.position.Y,
		EndX:   s.end.X,
		EndY:   s.end.Y,
		Color:  s.color,
	}
}
