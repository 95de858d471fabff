package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/vec"
)

// Object is the capability set shared by every scene entity.
type Object interface {
	ID() string
	Position() vec.Vec2
	Velocity() vec.Vec2
	Acceleration() vec.Vec2
	Mass() float64

	// IsStatic reports an immovable object (infinite mass). Forces and
	// collision response skip static objects.
	IsStatic() bool

	Update(dt float64)
	ApplyForce(f vec.Vec2)
	ExportState() State
}

// Body is implemented by objects whose kinematic state can be corrected by
// collision resolution.
type Body interface {
	Object
	SetPosition(p vec.Vec2)
	SetVelocity(v vec.Vec2)
}

// Object type names accepted by NewObject.
const (
	TypeMovingObject = "moving object"
	TypePointMass    = "point mass"
	TypeSurface      = "surface"
)

// ObjectConfig is the configuration handed to NewObject.
type ObjectConfig struct {
	Type       string     `json:"type" yaml:"type"`
	Attributes Attributes `json:"attributes" yaml:"attributes"`
}

// NewObject builds the variant matching typ.
func NewObject(id, typ string, cfg ObjectConfig) (Object, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if typ == "" {
		typ = cfg.Type
	}
	if typ == "" {
		return nil, ErrMissingType
	}
	attrs := cfg.Attributes
	if attrs == nil {
		attrs = Attributes{}
	}
	switch canonicalType(typ) {
	case canonicalType(TypeMovingObject), canonicalType(TypePointMass):
		return NewPointMass(id, attrs), nil
	case canonicalType(TypeSurface):
		return NewSurface(id, attrs), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, typ)
	}
}

// IsSurfaceType reports whether typ names the surface variant.
func IsSurfaceType(typ string) bool {
	return canonicalType(typ) == canonicalType(TypeSurface)
}

func finiteMass(m float64) bool {
	return !math.IsInf(m, 0) && !math.IsNaN(m)
}
