// Package engine runs a 2D kinematics scene.
//
// An [Engine] owns the object and force registries and the simulation clock.
// Each frame it applies every enabled force to every dynamic object,
// integrates with semi-implicit Euler and resolves surface contact.
//
// # Driving the engine
//
// The engine never schedules itself. Callers either step it directly with a
// chosen timestep:
//
//	e := engine.New()
//	e.AddObject("ball", physics.TypeMovingObject, cfg)
//	for i := 0; i < 60; i++ {
//	    e.Step(0.016)
//	}
//
// or start it and call [Engine.Tick] from a host refresh source, which reads
// the injected [Clock] and caps the timestep at [DefaultMaxStep]. [Drive]
// is a ticker-based host for headless use.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. All calls must come from the single
// goroutine that drives the frames.
package engine
