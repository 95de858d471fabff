package experiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/physics"
)

func setup(t *testing.T, scene *config.Scene) *Experiment {
	t.Helper()
	x := New(scene, config.DefaultCatalog(), nil)
	require.NoError(t, x.Setup())
	return x
}

func ballY(t *testing.T, f Frame, id string) float64 {
	t.Helper()
	for _, s := range f.States {
		if pm, ok := s.(physics.PointMassState); ok && pm.ID == id {
			return pm.Y
		}
	}
	t.Fatalf("object %s not in frame", id)
	return 0
}

func TestRun_FreeFall(t *testing.T) {
	scene := config.GetPreset("freefall")
	scene.Duration = 1
	x := setup(t, scene)

	res, err := x.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "freefall", res.Scene)
	assert.Equal(t, scene.Steps(), res.Steps())
	assert.Equal(t, 0.0, res.Frames[0].Time)
	assert.Equal(t, 100.0, ballY(t, res.Frames[0], "ball"))

	last := res.Frames[len(res.Frames)-1]
	assert.InDelta(t, float64(res.Steps())*scene.Dt, last.Time, 1e-9)
	assert.InEpsilon(t, 100+4.905, ballY(t, last, "ball"), 0.01)

	for _, name := range []string{"energy", "energy_drift", "max_speed", "distance", "bounded"} {
		assert.Contains(t, res.Metrics, name)
	}
	assert.Less(t, res.Metrics["energy_drift"], 0.01)
	assert.Equal(t, 1.0, res.Metrics["bounded"])
	assert.False(t, x.Engine().Running())
}

func TestRun_AddsGravityForKinematics(t *testing.T) {
	x := setup(t, config.GetPreset("freefall"))
	_, err := x.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, x.Engine().HasForceType(physics.ForceGravity))
	assert.InDelta(t, physics.StandardGravity, gravityY(x.Engine().Forces()), 1e-9)
}

func TestRun_LandsOnFloor(t *testing.T) {
	scene := config.GetPreset("freefall")
	scene.Duration = 10
	x := setup(t, scene)

	res, err := x.Run(context.Background())
	require.NoError(t, err)

	y := ballY(t, res.Frames[len(res.Frames)-1], "ball")
	assert.InDelta(t, 400, y, 1)
}

func TestRun_Cancelled(t *testing.T) {
	x := setup(t, config.GetPreset("projectile"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := x.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Steps())
}

func TestRun_NotSetup(t *testing.T) {
	x := New(config.GetPreset("ramp"), config.DefaultCatalog(), nil)

	_, err := x.Run(context.Background())
	assert.Error(t, err)
}

func TestSetup_InvalidScene(t *testing.T) {
	scene := config.DefaultScene()
	scene.Objects = []config.Item{{ID: "a", Type: "Unicorn"}}

	err := New(scene, config.DefaultCatalog(), nil).Setup()
	assert.ErrorIs(t, err, physics.ErrUnknownObjectType)

	scene = config.DefaultScene()
	scene.Dt = 0
	assert.Error(t, New(scene, config.DefaultCatalog(), nil).Setup())
}

func TestGravityY(t *testing.T) {
	forces := map[string]physics.Force{
		"g":        {Type: physics.ForceGravity, Enabled: true, Attributes: physics.ForceAttributes{Magnitude: 10, Direction: 90}},
		"sideways": {Type: physics.ForceGravity, Enabled: true, Attributes: physics.ForceAttributes{Magnitude: 5, Direction: 0}},
		"off":      {Type: physics.ForceGravity, Enabled: false, Attributes: physics.ForceAttributes{Magnitude: 5, Direction: 90}},
		"targeted": {Type: physics.ForceGravity, Enabled: true, TargetObjectID: "a", Attributes: physics.ForceAttributes{Magnitude: 5, Direction: 90}},
		"push":     {Type: physics.ForceApplied, Enabled: true, Attributes: physics.ForceAttributes{Magnitude: 5, Direction: 90}},
	}
	assert.InDelta(t, 10.0, gravityY(forces), 1e-9)
}

func TestRunBatch(t *testing.T) {
	var scenes []*config.Scene
	for _, name := range config.ListPresets() {
		s := config.GetPreset(name)
		s.Duration = 0.5
		scenes = append(scenes, s)
	}

	results, err := RunBatch(context.Background(), scenes, config.DefaultCatalog(), nil, 2)
	require.NoError(t, err)
	require.Len(t, results, len(scenes))
	for i, res := range results {
		assert.Equal(t, scenes[i].Name, res.Scene)
		assert.Equal(t, scenes[i].Steps(), res.Steps())
	}
}

func TestRunBatch_Error(t *testing.T) {
	bad := config.DefaultScene()
	bad.Name = "bad"
	bad.Objects = []config.Item{{ID: "x", Type: "Unicorn"}}

	_, err := RunBatch(context.Background(), []*config.Scene{config.GetPreset("ramp"), bad}, config.DefaultCatalog(), nil, 0)
	assert.Error(t, err)
}
