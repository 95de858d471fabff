package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/config"
)

func TestRange(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Range(0, 1, 0.5))
	assert.Equal(t, []float64{10, 20, 30}, Range(10, 30, 10))
	assert.Equal(t, []float64{5}, Range(5, 1, 1))
	assert.Equal(t, []float64{5}, Range(5, 10, 0))
}

func TestParseParam(t *testing.T) {
	p, err := ParseParam("ball.initialVelocity.x=0:100:50")
	require.NoError(t, err)
	assert.Equal(t, "ball.initialVelocity.x", p.Path)
	assert.Equal(t, []float64{0, 50, 100}, p.Values)

	p, err = ParseParam("ball.mass=1, 2,4")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4}, p.Values)

	for _, bad := range []string{"", "ball.mass", "=1:2:1", "ball.mass=a,b", "ball.mass=0:1:0", "ball.mass=0:x:1"} {
		_, err := ParseParam(bad)
		assert.ErrorIs(t, err, ErrBadParam, bad)
	}
}

func TestApply(t *testing.T) {
	scene := config.GetPreset("freefall")
	require.NotNil(t, scene)

	require.NoError(t, Apply(scene, "ball.mass", 5))
	assert.Equal(t, 5.0, scene.Objects[0].Attributes["mass"])

	require.NoError(t, Apply(scene, "ball.initialPosition.y", 50))
	pos := scene.Objects[0].Attributes["initialPosition"].(map[string]any)
	assert.Equal(t, 400.0, pos["x"])
	assert.Equal(t, 50.0, pos["y"])

	require.NoError(t, Apply(scene, "ball.initialVelocity.x", 3))
	assert.Equal(t, map[string]any{"x": 3.0, "y": 0.0}, scene.Objects[0].Attributes["initialVelocity"])

	require.NoError(t, Apply(scene, "floor.angle", 10))
	assert.Equal(t, 10.0, scene.Tools[0].Attributes["angle"])

	assert.ErrorIs(t, Apply(scene, "ghost.mass", 1), ErrUnknownItem)
	assert.ErrorIs(t, Apply(scene, "ball", 1), ErrBadParam)
	assert.ErrorIs(t, Apply(scene, "ball.initialPosition.z", 1), ErrBadParam)
}

func TestGridSearch_Maximize(t *testing.T) {
	base := config.GetPreset("freefall")
	base.Duration = 1

	p, err := ParseParam("ball.initialVelocity.x=0,50,25")
	require.NoError(t, err)

	best, trials, err := NewGridSearch([]Param{p}, true).WithParallel(2).
		Search(context.Background(), base, config.DefaultCatalog(), "max_speed")
	require.NoError(t, err)

	require.Len(t, trials, 3)
	assert.Equal(t, 0.0, trials[0].Params["ball.initialVelocity.x"])
	assert.Equal(t, 50.0, best.Params["ball.initialVelocity.x"])
	assert.Greater(t, best.Value, trials[2].Value)

	// the base scene is untouched
	_, set := base.Objects[0].Attributes["initialVelocity"]
	assert.False(t, set)
}

func TestGridSearch_Minimize(t *testing.T) {
	base := config.GetPreset("freefall")
	base.Duration = 1

	best, trials, err := NewGridSearch([]Param{
		{Path: "ball.initialVelocity.x", Values: []float64{10, 0}},
		{Path: "ball.initialVelocity.y", Values: []float64{0, -20}},
	}, false).Search(context.Background(), base, config.DefaultCatalog(), "max_speed")
	require.NoError(t, err)

	assert.Len(t, trials, 4)
	assert.Equal(t, 0.0, best.Params["ball.initialVelocity.x"])
}

func TestGridSearch_Errors(t *testing.T) {
	base := config.GetPreset("freefall")
	catalog := config.DefaultCatalog()

	_, _, err := NewGridSearch(nil, false).Search(context.Background(), base, catalog, "max_speed")
	assert.Error(t, err)

	_, _, err = NewGridSearch([]Param{{Path: "ghost.mass", Values: []float64{1}}}, false).
		Search(context.Background(), base, catalog, "max_speed")
	assert.ErrorIs(t, err, ErrUnknownItem)

	base.Duration = 0.1
	_, _, err = NewGridSearch([]Param{{Path: "ball.mass", Values: []float64{1}}}, false).
		Search(context.Background(), base, catalog, "no_such_metric")
	assert.Error(t, err)
}
