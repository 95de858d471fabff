package engine

import (
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/physics"
)

const (
	// DefaultMaxStep caps the Tick timestep at roughly 60 Hz. Time beyond the
	// cap is dropped rather than caught up.
	DefaultMaxStep = 0.016

	// DefaultCollisionThreshold is the penetration depth below which a point
	// is pushed back onto a surface.
	DefaultCollisionThreshold = 5.0
)

// Observer is notified after every completed step.
type Observer interface {
	OnStep(states []physics.State, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(states []physics.State, t float64)

func (f ObserverFunc) OnStep(states []physics.State, t float64) { f(states, t) }

// ObjectInfo is a debug view of one registry entry.
type ObjectInfo struct {
	ID     string        `json:"id"`
	Type   string        `json:"type"`
	Config physics.State `json:"config"`
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMaxStep overrides DefaultMaxStep. Non-positive values are ignored.
func WithMaxStep(dt float64) Option {
	return func(e *Engine) {
		if dt > 0 {
			e.maxStep = dt
		}
	}
}

// WithCollisionThreshold overrides DefaultCollisionThreshold. Non-positive
// values are ignored.
func WithCollisionThreshold(d float64) Option {
	return func(e *Engine) {
		if d > 0 {
			e.threshold = d
		}
	}
}
