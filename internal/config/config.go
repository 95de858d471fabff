package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/physics"
)

const (
	DefaultDt       = 0.016
	DefaultDuration = 5.0
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultTopic    = "mechanics"
	DefaultSubtopic = "Kinematics"
)

// Scene describes a simulation setup. Objects and Tools are routed through
// the manager's item updates; Forces are registered on the engine as-is.
type Scene struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Topic       string          `yaml:"topic"`
	Subtopic    string          `yaml:"subtopic"`
	Dt          float64         `yaml:"dt"`
	Duration    float64         `yaml:"duration"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	Objects     []Item          `yaml:"objects"`
	Tools       []Item          `yaml:"tools"`
	Forces      []physics.Force `yaml:"forces"`
}

// Item is one object or support tool with editor-style attributes.
type Item struct {
	ID         string         `yaml:"id"`
	Type       string         `yaml:"type"`
	Attributes map[string]any `yaml:"attributes"`
}

func DefaultScene() *Scene {
	return &Scene{
		Name:     "untitled",
		Topic:    DefaultTopic,
		Subtopic: DefaultSubtopic,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

// LoadScene reads a YAML scene, filling unset fields from DefaultScene.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*Scene, error) {
	s := DefaultScene()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) Validate() error {
	if s.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", s.Dt)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", s.Duration)
	}

	var errs []error
	seen := make(map[string]bool)
	for _, it := range append(append([]Item{}, s.Objects...), s.Tools...) {
		switch {
		case it.ID == "":
			errs = append(errs, fmt.Errorf("item of type %q: %w", it.Type, physics.ErrInvalidID))
		case it.Type == "":
			errs = append(errs, fmt.Errorf("item %q: %w", it.ID, physics.ErrMissingType))
		case seen[it.ID]:
			errs = append(errs, fmt.Errorf("item %q: %w", it.ID, physics.ErrDuplicateID))
		}
		seen[it.ID] = true
	}
	for _, f := range s.Forces {
		if f.ID == "" {
			errs = append(errs, fmt.Errorf("force of type %q: %w: %w", f.Type, physics.ErrInvalidForce, physics.ErrInvalidID))
		} else if f.Type == "" {
			errs = append(errs, fmt.Errorf("force %q: %w: %w", f.ID, physics.ErrInvalidForce, physics.ErrMissingType))
		}
	}
	return errors.Join(errs...)
}

// Steps is the number of fixed steps covering Duration.
func (s *Scene) Steps() int {
	return int(math.Round(s.Duration / s.Dt))
}

// Clone returns a copy whose items can be edited without touching s.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Objects = cloneItems(s.Objects)
	c.Tools = cloneItems(s.Tools)
	c.Forces = append([]physics.Force(nil), s.Forces...)
	return &c
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{ID: it.ID, Type: it.Type, Attributes: make(map[string]any, len(it.Attributes))}
		for k, v := range it.Attributes {
			out[i].Attributes[k] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, inner := range m {
		out[k] = cloneValue(inner)
	}
	return out
}
