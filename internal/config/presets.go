package config

import (
	"sort"

	"github.com/san-kum/physlab/internal/physics"
)

type pt = map[string]any

func floor(y float64) Item {
	return Item{ID: "floor", Type: "Surface", Attributes: map[string]any{
		"position": pt{"x": 0.0, "y": y}, "width": DefaultWidth, "angle": 0.0, "color": "black",
	}}
}

var Presets = map[string]*Scene{
	"freefall": {
		Name: "freefall", Description: "ball dropped onto the floor", Topic: DefaultTopic, Subtopic: DefaultSubtopic,
		Dt: DefaultDt, Duration: 3.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "ball", Type: "Moving Object", Attributes: map[string]any{
				"mass": 2.0, "size": 20.0, "color": "blue",
				"initialPosition": pt{"x": 400.0, "y": 100.0},
			}},
		},
		Tools: []Item{floor(400)},
	},
	"projectile": {
		Name: "projectile", Description: "shell launched along an arc", Topic: DefaultTopic, Subtopic: DefaultSubtopic,
		Dt: DefaultDt, Duration: 4.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "shell", Type: "Moving Object", Attributes: map[string]any{
				"mass": 1.0, "size": 10.0, "color": "red",
				"initialPosition": pt{"x": 20.0, "y": 390.0},
				"initialVelocity": pt{"x": 120.0, "y": -60.0},
			}},
		},
		Tools: []Item{
			floor(400),
			{ID: "gravity", Type: "Gravity", Attributes: map[string]any{"magnitude": 30.0, "direction": 90.0}},
		},
	},
	"ramp": {
		Name: "ramp", Description: "block sliding down an incline", Topic: DefaultTopic, Subtopic: DefaultSubtopic,
		Dt: DefaultDt, Duration: 5.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "block", Type: "Moving Object", Attributes: map[string]any{
				"mass": 1.0, "size": 15.0, "color": "orange",
				"initialPosition": pt{"x": 110.0, "y": 100.0},
			}},
		},
		Tools: []Item{
			{ID: "ramp", Type: "Surface", Attributes: map[string]any{
				"position": pt{"x": 100.0, "y": 100.0}, "width": 400.0, "angle": 30.0, "color": "gray",
			}},
			{ID: "gravity", Type: "Gravity", Attributes: map[string]any{"magnitude": 50.0, "direction": 90.0}},
		},
	},
	"friction": {
		Name: "friction", Description: "puck slowing to rest", Topic: DefaultTopic, Subtopic: "Dynamics",
		Dt: DefaultDt, Duration: 4.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "puck", Type: "Moving Object", Attributes: map[string]any{
				"mass": 1.0, "size": 12.0, "color": "green",
				"initialPosition": pt{"x": 50.0, "y": 400.0},
				"initialVelocity": pt{"x": 30.0, "y": 0.0},
			}},
		},
		Tools: []Item{
			floor(400),
			{ID: "friction", Type: "Friction", Attributes: map[string]any{"coefficient": 0.5}},
		},
	},
	"pusher": {
		Name: "pusher", Description: "cart under constant acceleration", Topic: DefaultTopic, Subtopic: DefaultSubtopic,
		Dt: DefaultDt, Duration: 4.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "cart", Type: "Moving Object", Attributes: map[string]any{
				"mass": 2.0, "size": 20.0, "color": "purple",
				"initialPosition":     pt{"x": 50.0, "y": 400.0},
				"initialAcceleration": pt{"x": 15.0, "y": 0.0},
			}},
		},
		Tools: []Item{floor(400)},
	},
	"spring": {
		Name: "spring", Description: "bob hanging from a spring", Topic: "oscillations-waves", Subtopic: "Oscillations",
		Dt: DefaultDt, Duration: 6.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "bob", Type: "Moving Object", Attributes: map[string]any{
				"mass": 1.0, "size": 15.0, "color": "blue",
				"initialPosition": pt{"x": 400.0, "y": 300.0},
			}},
		},
		Forces: []physics.Force{
			{ID: "spring", Type: physics.ForceSpring, Enabled: true, TargetObjectID: "bob",
				Attributes: physics.ForceAttributes{Coefficient: physics.Float64(4), AnchorX: 400, AnchorY: 100, RestLength: 120}},
			{ID: "gravity", Type: physics.ForceGravity, Enabled: true,
				Attributes: physics.ForceAttributes{Magnitude: 9.81, Direction: 90}},
		},
	},
	"pendulum": {
		Name: "pendulum", Description: "bob swinging on a rope", Topic: "oscillations-waves", Subtopic: "Oscillations",
		Dt: DefaultDt, Duration: 8.0, Width: DefaultWidth, Height: DefaultHeight,
		Objects: []Item{
			{ID: "bob", Type: "Moving Object", Attributes: map[string]any{
				"mass": 1.0, "size": 15.0, "color": "red",
				"initialPosition": pt{"x": 550.0, "y": 100.0},
			}},
		},
		Forces: []physics.Force{
			{ID: "rope", Type: physics.ForceRope, Enabled: true, TargetObjectID: "bob",
				Attributes: physics.ForceAttributes{Coefficient: physics.Float64(400), AnchorX: 400, AnchorY: 100, RestLength: 150}},
			{ID: "gravity", Type: physics.ForceGravity, Enabled: true,
				Attributes: physics.ForceAttributes{Magnitude: 50, Direction: 90}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scene {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	return s.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
