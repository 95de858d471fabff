package engine

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/physics"
)

// Start marks the engine running, captures the clock and runs one frame.
func (e *Engine) Start() {
	e.running = true
	e.lastTick = e.clock.Now()
	e.log.Debug("engine started", zap.Int("objects", len(e.objects)), zap.Int("forces", len(e.forces)))
	e.Tick()
}

// Stop discards the clock reference. Calling it while stopped is a no-op.
func (e *Engine) Stop() {
	if !e.running && e.lastTick.IsZero() {
		return
	}
	e.running = false
	e.lastTick = time.Time{}
	e.log.Debug("engine stopped", zap.Float64("t", e.simTime))
}

// Reset stops the engine and clears both registries.
func (e *Engine) Reset() {
	e.Stop()
	e.objects = make(map[string]physics.Object)
	e.objectOrder = nil
	e.forces = make(map[string]physics.Force)
	e.forceOrder = nil
	e.warned = make(map[string]bool)
	e.simTime = 0
	e.frames = 0
	e.log.Debug("engine reset")
}

// Tick runs one scheduled frame. The timestep is the clock time since the
// previous frame, capped at the max step. It returns whether the host should
// schedule another frame.
func (e *Engine) Tick() bool {
	if !e.running {
		return false
	}
	now := e.clock.Now()
	dt := math.Min(now.Sub(e.lastTick).Seconds(), e.maxStep)
	e.lastTick = now
	if dt <= 0 {
		return true
	}
	e.Step(dt)
	return e.running
}

// Step advances the scene by dt seconds regardless of the running state.
// Non-positive dt is a no-op.
func (e *Engine) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		return
	}

	for _, id := range e.objectOrder {
		obj := e.objects[id]
		if obj.IsStatic() {
			continue
		}
		e.applyForces(obj)
		obj.Update(dt)
	}

	e.resolveCollisions()

	e.simTime += dt
	e.frames++

	if len(e.observers) > 0 {
		states := e.State()
		for _, o := range e.observers {
			o.OnStep(states, e.simTime)
		}
	}
}

func (e *Engine) applyForces(obj physics.Object) {
	for _, fid := range e.forceOrder {
		f := e.forces[fid]
		if !f.AppliesTo(obj) {
			continue
		}
		v, known := physics.ForceVector(f, obj)
		if !known && !e.warned[fid] {
			e.warned[fid] = true
			e.log.Warn("unknown force type, applying as directional force",
				zap.String("force", fid), zap.String("type", f.Type))
		}
		obj.ApplyForce(v)
	}
}

// Drive calls Tick every interval until ctx is done or the engine stops.
// The engine must already be started.
func Drive(ctx context.Context, e *Engine, interval time.Duration) error {
	if !e.Running() {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return ctx.Err()
		case <-ticker.C:
			if !e.Tick() {
				return nil
			}
		}
	}
}
