package physics

import (
	"math"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/vec"
)

const (
	// StandardGravity is the g used for the friction normal force.
	StandardGravity = 9.81

	DefaultFrictionCoefficient = 0.1
	DefaultSpringStiffness     = 1.0
)

// Canonical force type names.
const (
	ForceGravity       = "gravity"
	ForceApplied       = "applied force"
	ForceFriction      = "friction"
	ForceAirResistance = "air resistance"
	ForceSpring        = "spring"
	ForceRope          = "rope"
)

var knownForces = map[string]string{
	canonicalType(ForceGravity):       ForceGravity,
	canonicalType(ForceApplied):       ForceApplied,
	canonicalType(ForceFriction):      ForceFriction,
	canonicalType(ForceAirResistance): ForceAirResistance,
	canonicalType(ForceSpring):        ForceSpring,
	canonicalType(ForceRope):          ForceRope,
}

// NormalizeForceType maps spellings such as "appliedForce" or "Applied Force"
// to the canonical name. Unrecognised names are returned lower-cased.
func NormalizeForceType(typ string) string {
	if name, ok := knownForces[canonicalType(typ)]; ok {
		return name
	}
	return canonicalType(typ)
}

// IsKnownForceType reports whether typ has a dedicated force law.
func IsKnownForceType(typ string) bool {
	_, ok := knownForces[canonicalType(typ)]
	return ok
}

// ForceAttributes parameterise a force. Direction is in degrees.
// AnchorX, AnchorY and RestLength are only read by spring and rope forces.
type ForceAttributes struct {
	Magnitude   float64  `json:"magnitude" yaml:"magnitude"`
	Direction   float64  `json:"direction" yaml:"direction"`
	Coefficient *float64 `json:"coefficient,omitempty" yaml:"coefficient,omitempty"`
	AnchorX     float64  `json:"anchorX,omitempty" yaml:"anchorX,omitempty"`
	AnchorY     float64  `json:"anchorY,omitempty" yaml:"anchorY,omitempty"`
	RestLength  float64  `json:"restLength,omitempty" yaml:"restLength,omitempty"`
}

// CoefficientOr returns the coefficient, or def when unset.
func (a ForceAttributes) CoefficientOr(def float64) float64 {
	if a.Coefficient == nil {
		return def
	}
	return *a.Coefficient
}

// Force describes one force contribution. An empty TargetObjectID applies
// the force to every non-static object.
type Force struct {
	ID             string          `json:"id" yaml:"id"`
	Type           string          `json:"type" yaml:"type"`
	Enabled        bool            `json:"enabled" yaml:"enabled"`
	Attributes     ForceAttributes `json:"attributes" yaml:"attributes"`
	TargetObjectID string          `json:"targetObjectId,omitempty" yaml:"targetObjectId,omitempty"`
}

// UnmarshalYAML decodes a force, treating a missing enabled key as true.
func (f *Force) UnmarshalYAML(value *yaml.Node) error {
	type plain Force
	p := plain{Enabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*f = Force(p)
	return nil
}

// AppliesTo reports whether the force acts on obj this frame.
func (f Force) AppliesTo(obj Object) bool {
	if !f.Enabled || obj.IsStatic() {
		return false
	}
	return f.TargetObjectID == "" || f.TargetObjectID == obj.ID()
}

// Float64 returns a pointer to v, for optional attributes.
func Float64(v float64) *float64 { return &v }

// ForceVector converts f into the Cartesian force on obj. known is false for
// types without a dedicated law, which fall back to a directional force of
// the given magnitude.
func ForceVector(f Force, obj Object) (force vec.Vec2, known bool) {
	a := f.Attributes
	dir := vec.FromAngle(a.Direction * math.Pi / 180)

	switch NormalizeForceType(f.Type) {
	case ForceGravity:
		return dir.Scale(a.Magnitude * obj.Mass()), true

	case ForceApplied:
		return dir.Scale(a.Magnitude), true

	case ForceFriction:
		v := obj.Velocity()
		if v.Magnitude() == 0 {
			return vec.Zero(), true
		}
		normal := obj.Mass() * StandardGravity
		return v.Normalize().Neg().Scale(a.CoefficientOr(DefaultFrictionCoefficient) * normal), true

	case ForceAirResistance:
		v := obj.Velocity()
		speed := v.Magnitude()
		if speed == 0 {
			return vec.Zero(), true
		}
		return v.Normalize().Neg().Scale(a.Magnitude * a.CoefficientOr(1) * speed * speed), true

	case ForceSpring, ForceRope:
		anchor := vec.New(a.AnchorX, a.AnchorY)
		d := obj.Position().Sub(anchor)
		stretch := d.Magnitude() - a.RestLength
		if NormalizeForceType(f.Type) == ForceRope && stretch <= 0 {
			return vec.Zero(), true
		}
		return d.Normalize().Scale(-a.CoefficientOr(DefaultSpringStiffness) * stretch), true

	default:
		return dir.Scale(a.Magnitude), false
	}
}
