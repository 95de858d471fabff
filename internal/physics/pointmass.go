package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/vec"
)

const DefaultMass = 1.0

type PointMass struct {
	id           string
	position     vec.Vec2
	velocity     vec.Vec2
	acceleration vec.Vec2
	mass         float64
	size         float64
	color        string
}

// NewPointMass reads initialPositionX/Y, initialVelocityX/Y, mass, size,
// color and isStatic from attrs.
func NewPointMass(id string, attrs Attributes) *PointMass {
	mass := attrs.Float("mass", DefaultMass)
	if attrs.Bool("isStatic", false) {
		mass = math.Inf(1)
	}
	return &PointMass{
		id:       id,
		position: vec.New(attrs.Float("initialPositionX", 0), attrs.Float("initialPositionY", 0)),
		velocity: vec.New(attrs.Float("initialVelocityX", 0), attrs.Float("initialVelocityY", 0)),
		mass:     mass,
		size:     attrs.Float("size", 0),
		color:    attrs.String("color", ""),
	}
}

func (p *PointMass) ID() string               { return p.id }
func (p *PointMass) Position() vec.Vec2       { return p.position }
func (p *PointMass) Velocity() vec.Vec2       { return p.velocity }
func (p *PointMass) Acceleration() vec.Vec2   { return p.acceleration }
func (p *PointMass) Mass() float64            { return p.mass }
func (p *PointMass) IsStatic() bool           { return !finiteMass(p.mass) }
func (p *PointMass) SetPosition(pos vec.Vec2) { p.position = pos }
func (p *PointMass) SetVelocity(v vec.Vec2)   { p.velocity = v }

// Update advances the point by semi-implicit Euler: velocity integrates
// before position, then the acceleration accumulator is cleared because
// forces are re-applied every frame.
func (p *PointMass) Update(dt float64) {
	p.velocity = p.velocity.Add(p.acceleration.Scale(dt))
	p.position = p.position.Add(p.velocity.Scale(dt))
	p.acceleration = vec.Zero()
}

// ApplyForce accumulates f/m. Objects with infinite or non-positive mass
// ignore forces.
func (p *PointMass) ApplyForce(f vec.Vec2) {
	if !finiteMass(p.mass) || p.mass <= 0 {
		return
	}
	p.acceleration = p.acceleration.Add(f.Scale(1 / p.mass))
}

func (p *PointMass) ExportState() State {
	return PointMassState{
		ID:        p.id,
		Type:      TypePointMass,
		X:         p.position.X,
		Y:         p.position.Y,
		Angle:     0,
		Label:     "Point Mass",
		Size:      p.size,
		Color:     p.color,
		VelocityX: p.velocity.X,
		VelocityY: p.velocity.Y,
		Mass:      p.mass,
	}
}
