package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/physics"
)

type Engine struct {
	objects     map[string]physics.Object
	objectOrder []string
	forces      map[string]physics.Force
	forceOrder  []string

	running  bool
	lastTick time.Time
	clock    Clock

	maxStep   float64
	threshold float64

	simTime float64
	frames  int

	observers []Observer
	warned    map[string]bool
	log       *zap.Logger
}

func New(opts ...Option) *Engine {
	e := &Engine{
		objects:   make(map[string]physics.Object),
		forces:    make(map[string]physics.Force),
		clock:     SystemClock(),
		maxStep:   DefaultMaxStep,
		threshold: DefaultCollisionThreshold,
		warned:    make(map[string]bool),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// AddObject builds and registers an object. It fails on an empty or
// duplicate id and on an unknown type.
func (e *Engine) AddObject(id, typ string, cfg physics.ObjectConfig) error {
	if _, exists := e.objects[id]; exists {
		return fmt.Errorf("add object %q: %w", id, physics.ErrDuplicateID)
	}
	obj, err := physics.NewObject(id, typ, cfg)
	if err != nil {
		return fmt.Errorf("add object %q: %w", id, err)
	}
	e.objects[id] = obj
	e.objectOrder = append(e.objectOrder, id)
	e.log.Debug("object added", zap.String("id", id), zap.String("type", typ))
	return nil
}

// RemoveObject deletes id and reports whether it was present. Forces
// targeting the object are kept.
func (e *Engine) RemoveObject(id string) bool {
	if _, ok := e.objects[id]; !ok {
		return false
	}
	delete(e.objects, id)
	for i, oid := range e.objectOrder {
		if oid == id {
			e.objectOrder = append(e.objectOrder[:i], e.objectOrder[i+1:]...)
			break
		}
	}
	e.log.Debug("object removed", zap.String("id", id))
	return true
}

// AddForce inserts or replaces the force registered under id.
func (e *Engine) AddForce(id string, f physics.Force) error {
	if id == "" {
		return fmt.Errorf("add force: %w: %w", physics.ErrInvalidForce, physics.ErrInvalidID)
	}
	if f.Type == "" {
		return fmt.Errorf("add force %q: %w: %w", id, physics.ErrInvalidForce, physics.ErrMissingType)
	}
	f.ID = id
	f.Type = physics.NormalizeForceType(f.Type)
	if _, exists := e.forces[id]; !exists {
		e.forceOrder = append(e.forceOrder, id)
	}
	e.forces[id] = f
	delete(e.warned, id)
	e.log.Debug("force set",
		zap.String("id", id),
		zap.String("type", f.Type),
		zap.Bool("enabled", f.Enabled),
		zap.Float64("magnitude", f.Attributes.Magnitude),
		zap.Float64("direction", f.Attributes.Direction),
		zap.String("target", f.TargetObjectID),
	)
	return nil
}

func (e *Engine) Object(id string) (physics.Object, bool) {
	obj, ok := e.objects[id]
	return obj, ok
}

func (e *Engine) Force(id string) (physics.Force, bool) {
	f, ok := e.forces[id]
	return f, ok
}

// HasForceType reports whether any registered force has the given type.
func (e *Engine) HasForceType(typ string) bool {
	want := physics.NormalizeForceType(typ)
	for _, f := range e.forces {
		if f.Type == want {
			return true
		}
	}
	return false
}

// State returns one snapshot per object in insertion order.
func (e *Engine) State() []physics.State {
	states := make([]physics.State, 0, len(e.objectOrder))
	for _, id := range e.objectOrder {
		states = append(states, e.objects[id].ExportState())
	}
	return states
}

// Objects is a debug dump of the object registry.
func (e *Engine) Objects() []ObjectInfo {
	infos := make([]ObjectInfo, 0, len(e.objectOrder))
	for _, id := range e.objectOrder {
		obj := e.objects[id]
		infos = append(infos, ObjectInfo{ID: id, Type: variantName(obj), Config: obj.ExportState()})
	}
	return infos
}

// Forces returns a copy of the force registry.
func (e *Engine) Forces() map[string]physics.Force {
	out := make(map[string]physics.Force, len(e.forces))
	for id, f := range e.forces {
		out[id] = f
	}
	return out
}

func (e *Engine) Running() bool    { return e.running }
func (e *Engine) Time() float64    { return e.simTime }
func (e *Engine) Frames() int      { return e.frames }
func (e *Engine) ObjectCount() int { return len(e.objects) }

func variantName(obj physics.Object) string {
	switch obj.(type) {
	case *physics.PointMass:
		return "PointMass"
	case *physics.Surface:
		return "Surface"
	default:
		return fmt.Sprintf("%T", obj)
	}
}
