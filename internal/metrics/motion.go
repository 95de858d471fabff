package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/physics"
)

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(states []physics.State, t float64) {
	for _, pm := range pointMasses(states) {
		m.max = math.Max(m.max, math.Hypot(pm.VelocityX, pm.VelocityY))
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Distance is the total path length travelled by all point masses.
type Distance struct {
	name string
	last map[string][2]float64
	sum  float64
}

func NewDistance() *Distance {
	return &Distance{
		name: "distance",
		last: make(map[string][2]float64),
	}
}

func (d *Distance) Name() string {
	return d.name
}

func (d *Distance) Observe(states []physics.State, t float64) {
	for _, pm := range pointMasses(states) {
		if prev, ok := d.last[pm.ID]; ok {
			d.sum += math.Hypot(pm.X-prev[0], pm.Y-prev[1])
		}
		d.last[pm.ID] = [2]float64{pm.X, pm.Y}
	}
}

func (d *Distance) Value() float64 {
	return d.sum
}

func (d *Distance) Reset() {
	d.sum = 0
	d.last = make(map[string][2]float64)
}

// Bounded is the fraction of steps in which every point mass stayed inside
// the width x height viewport.
type Bounded struct {
	name       string
	width      float64
	height     float64
	violations int
	samples    int
}

func NewBounded(width, height float64) *Bounded {
	return &Bounded{
		name:   "bounded",
		width:  width,
		height: height,
	}
}

func (b *Bounded) Name() string {
	return b.name
}

func (b *Bounded) Observe(states []physics.State, t float64) {
	b.samples++
	for _, pm := range pointMasses(states) {
		if pm.X < 0 || pm.X > b.width || pm.Y < 0 || pm.Y > b.height {
			b.violations++
			break
		}
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}
