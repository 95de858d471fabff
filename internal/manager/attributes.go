package manager

import (
	"github.com/san-kum/physlab/internal/physics"
)

// expandObjectAttributes flattens nested initial position and velocity and
// turns an initial acceleration into an applied force targeted at id.
func expandObjectAttributes(id string, attrs map[string]any) (physics.Attributes, []physics.Force) {
	flat := physics.Attributes(attrs).Clone()
	flattenPoint(flat, "initialPosition", "initialPositionX", "initialPositionY")
	flattenPoint(flat, "initialVelocity", "initialVelocityX", "initialVelocityY")

	var forces []physics.Force
	if ax, ay, ok := flat.Point("initialAcceleration"); ok {
		mass := flat.Float("mass", physics.DefaultMass)
		if mass == 0 {
			mass = physics.DefaultMass
		}
		mag, dir := polar(ax, ay)
		forces = append(forces, physics.Force{
			ID:             "accel_force_" + id,
			Type:           physics.ForceApplied,
			Enabled:        true,
			Attributes:     physics.ForceAttributes{Magnitude: mag * mass, Direction: dir},
			TargetObjectID: id,
		})
		delete(flat, "initialAcceleration")
	}
	return flat, forces
}

// flattenPoint replaces a nested {x, y} value at key with two scalar keys.
// Values that are not objects are left in place.
func flattenPoint(a physics.Attributes, key, xKey, yKey string) {
	x, y, ok := a.Point(key)
	if !ok {
		return
	}
	a[xKey] = x
	a[yKey] = y
	delete(a, key)
}

// forceFromAttributes builds a force descriptor from support tool
// attributes. A {x, y} "vector" attribute overrides magnitude and
// direction. Zero magnitude or direction fall back to per-type defaults.
func forceFromAttributes(typ string, a physics.Attributes) physics.Force {
	magnitude := a.Float("magnitude", 0)
	direction := a.Float("direction", 0)
	if x, y, ok := a.Point("vector"); ok {
		magnitude, direction = polar(x, y)
	}

	var coefficient *float64
	if a.Has("coefficient") {
		coefficient = physics.Float64(a.Float("coefficient", 0))
	}

	kind := physics.NormalizeForceType(typ)
	fa := physics.ForceAttributes{Magnitude: magnitude, Direction: direction}
	switch kind {
	case physics.ForceFriction:
		if coefficient == nil {
			coefficient = physics.Float64(physics.DefaultFrictionCoefficient)
		}
		fa.Coefficient = coefficient
	case physics.ForceGravity:
		if fa.Magnitude == 0 {
			fa.Magnitude = physics.StandardGravity
		}
		if fa.Direction == 0 {
			fa.Direction = 90
		}
	case physics.ForceApplied:
		if fa.Magnitude == 0 {
			fa.Magnitude = 1
		}
	default:
		fa.Coefficient = coefficient
	}

	if ax, ay, ok := a.Point("anchor"); ok {
		fa.AnchorX, fa.AnchorY = ax, ay
	} else {
		fa.AnchorX, fa.AnchorY = a.Float("anchorX", 0), a.Float("anchorY", 0)
	}
	fa.RestLength = a.Float("restLength", 0)

	return physics.Force{
		Type:           kind,
		Enabled:        a.Bool("enabled", true),
		Attributes:     fa,
		TargetObjectID: a.String("targetObjectId", ""),
	}
}
