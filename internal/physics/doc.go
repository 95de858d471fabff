// Package physics provides the entities of a 2D kinematics scene.
//
// Scene entities implement the [Object] interface:
//
//   - [PointMass]: a finite-mass point moved by integrated forces
//   - [Surface]: an immovable line segment used for floor and ramp contact
//
// Forces are plain [Force] descriptors. [ForceVector] converts a descriptor
// into the Cartesian force acting on one object for the current frame.
//
// # Coordinates
//
// Positions are in screen units with y growing downwards, so a direction of
// 90 degrees points down:
//
//	g := physics.Force{Type: physics.ForceGravity, Enabled: true,
//	    Attributes: physics.ForceAttributes{Magnitude: 9.81, Direction: 90}}
package physics
