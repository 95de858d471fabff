package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/physics"
)

type Metric interface {
	Name() string
	Observe(states []physics.State, t float64)
	Value() float64
	Reset()
}

// Observer feeds every completed engine step to ms.
func Observer(ms ...Metric) engine.Observer {
	return engine.ObserverFunc(func(states []physics.State, t float64) {
		for _, m := range ms {
			m.Observe(states, t)
		}
	})
}

// Standard returns the metric set recorded for scene runs.
func Standard(g, refY, width, height float64) []Metric {
	return []Metric{
		NewEnergy(g, refY),
		NewEnergyDrift(g, refY),
		NewMaxSpeed(),
		NewDistance(),
		NewBounded(width, height),
	}
}

// MechanicalEnergy splits the energy of one point mass. Potential energy
// is measured upwards from refY in screen coordinates.
type MechanicalEnergy struct {
	Kinetic   float64
	Potential float64
}

func (e MechanicalEnergy) Total() float64 { return e.Kinetic + e.Potential }

// ObjectEnergy returns the energy of s. ok is false for surfaces and
// static or massless objects.
func ObjectEnergy(s physics.State, g, refY float64) (e MechanicalEnergy, ok bool) {
	pm, isMass := s.(physics.PointMassState)
	if !isMass || pm.Mass <= 0 || math.IsInf(pm.Mass, 0) {
		return MechanicalEnergy{}, false
	}
	speed2 := pm.VelocityX*pm.VelocityX + pm.VelocityY*pm.VelocityY
	return MechanicalEnergy{
		Kinetic:   0.5 * pm.Mass * speed2,
		Potential: pm.Mass * g * (refY - pm.Y),
	}, true
}

// TotalEnergy sums ObjectEnergy over every point mass.
func TotalEnergy(states []physics.State, g, refY float64) float64 {
	var total float64
	for _, s := range states {
		if e, ok := ObjectEnergy(s, g, refY); ok {
			total += e.Total()
		}
	}
	return total
}

func pointMasses(states []physics.State) []physics.PointMassState {
	out := make([]physics.PointMassState, 0, len(states))
	for _, s := range states {
		if pm, ok := s.(physics.PointMassState); ok {
			out = append(out, pm)
		}
	}
	return out
}
