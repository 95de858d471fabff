package engine

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/vec"
)

func TestSurfaceCollision_Landing(t *testing.T) {
	e := New()
	_ = e.AddObject("floor", physics.TypeSurface, physics.ObjectConfig{
		Attributes: physics.Attributes{"positionX": 0.0, "positionY": 400.0, "width": 800.0},
	})
	_ = e.AddObject("ball", physics.TypeMovingObject, ball(physics.Attributes{
		"initialPositionX": 100.0,
		"initialPositionY": 390.0,
		"initialVelocityX": 2.0,
	}))
	_ = e.AddForce("g", gravity())

	for i := 0; i < 300; i++ {
		e.Step(0.016)
	}

	obj, _ := e.Object("ball")
	if y := obj.Position().Y; math.Abs(y-400) > 1e-6 {
		t.Errorf("ball y = %v, want resting on 400", y)
	}
	if vy := obj.Velocity().Y; vy != 0 {
		t.Errorf("downward velocity not removed: %v", vy)
	}
	if vx := obj.Velocity().X; vx != 2 {
		t.Errorf("tangential velocity changed: %v", vx)
	}
}

func TestResolveContact(t *testing.T) {
	floor := physics.NewSurface("floor", physics.Attributes{"positionX": 0.0, "positionY": 400.0, "width": 100.0})

	tests := []struct {
		name    string
		pos     vec.Vec2
		vel     vec.Vec2
		hit     bool
		wantPos vec.Vec2
		wantVel vec.Vec2
	}{
		{
			name:    "shallow penetration",
			pos:     vec.New(50, 403),
			vel:     vec.New(1, 6),
			hit:     true,
			wantPos: vec.New(50, 400),
			wantVel: vec.New(1, 0),
		},
		{
			name:    "moving away keeps velocity",
			pos:     vec.New(50, 402),
			vel:     vec.New(1, -6),
			hit:     true,
			wantPos: vec.New(50, 400),
			wantVel: vec.New(1, -6),
		},
		{
			name:    "above surface",
			pos:     vec.New(50, 395),
			vel:     vec.New(0, 6),
			wantPos: vec.New(50, 395),
			wantVel: vec.New(0, 6),
		},
		{
			name:    "too deep",
			pos:     vec.New(50, 406),
			vel:     vec.New(0, 6),
			wantPos: vec.New(50, 406),
			wantVel: vec.New(0, 6),
		},
		{
			name:    "exactly on line",
			pos:     vec.New(50, 400),
			vel:     vec.New(0, 6),
			wantPos: vec.New(50, 400),
			wantVel: vec.New(0, 6),
		},
		{
			name:    "past segment end",
			pos:     vec.New(101, 402),
			vel:     vec.New(0, 6),
			wantPos: vec.New(101, 402),
			wantVel: vec.New(0, 6),
		},
		{
			name:    "before segment start",
			pos:     vec.New(-1, 402),
			vel:     vec.New(0, 6),
			wantPos: vec.New(-1, 402),
			wantVel: vec.New(0, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := physics.NewPointMass("p", nil)
			p.SetPosition(tt.pos)
			p.SetVelocity(tt.vel)

			hit := resolveContact(p, floor, DefaultCollisionThreshold)
			if hit != tt.hit {
				t.Errorf("hit = %v, want %v", hit, tt.hit)
			}
			if !near(p.Position(), tt.wantPos) {
				t.Errorf("position = %v, want %v", p.Position(), tt.wantPos)
			}
			if !near(p.Velocity(), tt.wantVel) {
				t.Errorf("velocity = %v, want %v", p.Velocity(), tt.wantVel)
			}
		})
	}
}

func TestResolveContact_Ramp(t *testing.T) {
	ramp := physics.NewSurface("ramp", physics.Attributes{"positionX": 0.0, "positionY": 0.0, "width": 100.0, "angle": 45.0})
	normal := vec.New(-1, 1).Normalize()

	p := physics.NewPointMass("p", nil)
	p.SetPosition(vec.New(50, 50).Add(normal.Scale(2)))
	p.SetVelocity(vec.New(3, 5))

	if !resolveContact(p, ramp, DefaultCollisionThreshold) {
		t.Fatal("expected contact")
	}
	if !near(p.Position(), vec.New(50, 50)) {
		t.Errorf("position = %v, want (50, 50)", p.Position())
	}
	if vn := p.Velocity().Dot(normal); math.Abs(vn) > 1e-9 {
		t.Errorf("normal velocity not removed: %v", vn)
	}
	along := vec.New(1, 1).Normalize()
	if math.Abs(p.Velocity().Dot(along)-vec.New(3, 5).Dot(along)) > 1e-9 {
		t.Error("tangential velocity changed")
	}
}

func TestResolveContact_ZeroLengthSurface(t *testing.T) {
	s := physics.NewSurface("dot", physics.Attributes{"width": 0.0})
	p := physics.NewPointMass("p", physics.Attributes{"initialPositionY": 401.0})
	if resolveContact(p, s, DefaultCollisionThreshold) {
		t.Error("zero-length surface produced a contact")
	}
}

func near(a, b vec.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}
