package manager

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/physics"
)

// SubtopicKinematics enables automatic gravity on Run.
const SubtopicKinematics = "Kinematics"

// Catalog supplies default attributes per item type.
type Catalog interface {
	Defaults(item string, supportTool bool) map[string]any
}

type Manager struct {
	engine   *engine.Engine
	catalog  Catalog
	topic    string
	subtopic string
	newID    func() string
	log      *zap.Logger
}

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithIDGenerator replaces the uuid suffix used for synthesised ids.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

func New(e *engine.Engine, c Catalog, opts ...Option) *Manager {
	m := &Manager{
		engine:  e,
		catalog: c,
		newID:   uuid.NewString,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Engine() *engine.Engine { return m.engine }
func (m *Manager) Topic() string          { return m.topic }
func (m *Manager) Subtopic() string       { return m.subtopic }

func (m *Manager) SetTopic(topic string) {
	m.topic = topic
	m.log.Debug("topic set", zap.String("topic", topic))
}

func (m *Manager) SetSubtopic(subtopic string) {
	m.subtopic = subtopic
	m.log.Debug("subtopic set", zap.String("subtopic", subtopic))
}

// AddObjectFromType creates an object of typ from catalog defaults and
// returns its id.
func (m *Manager) AddObjectFromType(typ string) (string, error) {
	id := "obj_" + m.newID()
	var defaults map[string]any
	if m.catalog != nil {
		defaults = m.catalog.Defaults(typ, false)
	}

	attrs, forces := expandObjectAttributes(id, defaults)
	if err := m.engine.AddObject(id, typ, physics.ObjectConfig{Type: typ, Attributes: attrs}); err != nil {
		return "", err
	}
	if err := m.addForces(forces); err != nil {
		return "", err
	}
	m.log.Debug("object added from type", zap.String("id", id), zap.String("type", typ), zap.Int("forces", len(forces)))
	return id, nil
}

// UpdateItem replaces an object, surface or force with one built from
// attrs. Objects and surfaces keep their id; forces are upserted. Surface
// types are routed as surfaces even when not flagged as support tools.
func (m *Manager) UpdateItem(id, typ string, attrs map[string]any, supportTool bool) error {
	switch {
	case physics.IsSurfaceType(typ):
		return m.updateSurface(id, typ, attrs)
	case !supportTool:
		return m.updateObject(id, typ, attrs)
	default:
		return m.updateForce(id, typ, attrs)
	}
}

func (m *Manager) updateObject(id, typ string, attrs map[string]any) error {
	flat, forces := expandObjectAttributes(id, attrs)
	if err := m.replaceObject(id, typ, flat); err != nil {
		return err
	}
	if err := m.addForces(forces); err != nil {
		return err
	}
	m.log.Debug("object updated", zap.String("id", id), zap.String("type", typ), zap.Int("forces", len(forces)))
	return nil
}

func (m *Manager) updateSurface(id, typ string, attrs map[string]any) error {
	flat := physics.Attributes(attrs).Clone()
	flattenPoint(flat, "position", "positionX", "positionY")
	if err := m.replaceObject(id, typ, flat); err != nil {
		return err
	}
	m.log.Debug("surface updated", zap.String("id", id))
	return nil
}

// replaceObject validates the new object before dropping the old one so a
// rejected update leaves the scene untouched.
func (m *Manager) replaceObject(id, typ string, attrs physics.Attributes) error {
	cfg := physics.ObjectConfig{Type: typ, Attributes: attrs}
	if _, err := physics.NewObject(id, typ, cfg); err != nil {
		return fmt.Errorf("update %q: %w", id, err)
	}
	m.engine.RemoveObject(id)
	return m.engine.AddObject(id, typ, cfg)
}

func (m *Manager) updateForce(id, typ string, attrs map[string]any) error {
	f := forceFromAttributes(typ, physics.Attributes(attrs))
	if err := m.engine.AddForce(id, f); err != nil {
		return err
	}
	m.log.Debug("force updated", zap.String("id", id), zap.String("type", f.Type),
		zap.Float64("magnitude", f.Attributes.Magnitude), zap.Float64("direction", f.Attributes.Direction))
	return nil
}

// Run starts the engine. Kinematics scenes get a default gravity force
// unless one already exists.
func (m *Manager) Run() error {
	if m.subtopic == SubtopicKinematics && !m.engine.HasForceType(physics.ForceGravity) {
		id := "gravity_" + m.newID()
		g := physics.Force{
			Type:       physics.ForceGravity,
			Enabled:    true,
			Attributes: physics.ForceAttributes{Magnitude: physics.StandardGravity, Direction: 90},
		}
		if err := m.engine.AddForce(id, g); err != nil {
			return err
		}
		m.log.Info("gravity added", zap.String("id", id))
	}
	m.log.Debug("running")
	m.engine.Start()
	return nil
}

func (m *Manager) AddObject(id, typ string, cfg physics.ObjectConfig) error {
	return m.engine.AddObject(id, typ, cfg)
}

func (m *Manager) RemoveObject(id string) bool { return m.engine.RemoveObject(id) }

func (m *Manager) AddForce(id string, f physics.Force) error { return m.engine.AddForce(id, f) }

func (m *Manager) Stop()                  { m.engine.Stop() }
func (m *Manager) Reset()                 { m.engine.Reset() }
func (m *Manager) State() []physics.State { return m.engine.State() }

// SimulationData is an inspection snapshot of the manager and engine.
type SimulationData struct {
	Topic    string                   `json:"topic"`
	Subtopic string                   `json:"subtopic"`
	Settings map[string]any           `json:"settings"`
	Objects  []engine.ObjectInfo      `json:"objects"`
	Forces   map[string]physics.Force `json:"forces"`
}

func (m *Manager) SimulationData() SimulationData {
	return SimulationData{
		Topic:    m.topic,
		Subtopic: m.subtopic,
		Settings: map[string]any{},
		Objects:  m.engine.Objects(),
		Forces:   m.engine.Forces(),
	}
}

// ApplyScene loads a scene into the engine. It stops at the first item the
// engine rejects.
func (m *Manager) ApplyScene(s *config.Scene) error {
	m.SetTopic(s.Topic)
	m.SetSubtopic(s.Subtopic)
	for _, it := range s.Objects {
		if err := m.UpdateItem(it.ID, it.Type, it.Attributes, false); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name, err)
		}
	}
	for _, it := range s.Tools {
		if err := m.UpdateItem(it.ID, it.Type, it.Attributes, true); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name, err)
		}
	}
	for _, f := range s.Forces {
		if err := m.engine.AddForce(f.ID, f); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name, err)
		}
	}
	return nil
}

func (m *Manager) addForces(forces []physics.Force) error {
	for _, f := range forces {
		if err := m.engine.AddForce(f.ID, f); err != nil {
			return err
		}
	}
	return nil
}

// polar converts a Cartesian vector to magnitude and direction in degrees.
func polar(x, y float64) (mag, deg float64) {
	return math.Hypot(x, y), math.Atan2(y, x) * 180 / math.Pi
}
