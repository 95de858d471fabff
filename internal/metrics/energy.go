package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/physics"
)

// energyMeter measures the scene's mechanical energy against a gravity
// field pulling towards +y.
type energyMeter struct {
	gravity float64
	refY    float64
}

func (m energyMeter) measure(states []physics.State) float64 {
	return TotalEnergy(states, m.gravity, m.refY)
}

// Energy is the mean total mechanical energy over all observed steps.
type Energy struct {
	energyMeter
	sum float64
	n   int
}

func NewEnergy(gravity, refY float64) *Energy {
	return &Energy{energyMeter: energyMeter{gravity: gravity, refY: refY}}
}

func (*Energy) Name() string { return "energy" }

func (e *Energy) Observe(states []physics.State, _ float64) {
	e.sum += e.measure(states)
	e.n++
}

func (e *Energy) Value() float64 {
	if e.n == 0 {
		return 0
	}
	return e.sum / float64(e.n)
}

func (e *Energy) Reset() { e.sum, e.n = 0, 0 }

// EnergyDrift is the largest deviation from the first observed total
// energy, relative to it. A zero baseline reports no drift.
type EnergyDrift struct {
	energyMeter
	baseline float64
	started  bool
	worst    float64
}

func NewEnergyDrift(gravity, refY float64) *EnergyDrift {
	return &EnergyDrift{energyMeter: energyMeter{gravity: gravity, refY: refY}}
}

func (*EnergyDrift) Name() string { return "energy_drift" }

func (d *EnergyDrift) Observe(states []physics.State, _ float64) {
	e := d.measure(states)
	if !d.started {
		d.baseline, d.started = e, true
		return
	}
	if d.baseline == 0 {
		return
	}
	d.worst = math.Max(d.worst, math.Abs(e-d.baseline)/math.Abs(d.baseline))
}

func (d *EnergyDrift) Value() float64 { return d.worst }

func (d *EnergyDrift) Reset() { *d = EnergyDrift{energyMeter: d.energyMeter} }
