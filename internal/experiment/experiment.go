package experiment

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/manager"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
)

// Frame is the scene snapshot after one step.
type Frame struct {
	Time   float64         `json:"time"`
	States []physics.State `json:"states"`
}

type Result struct {
	Scene    string             `json:"scene"`
	Topic    string             `json:"topic"`
	Subtopic string             `json:"subtopic"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Frames   []Frame            `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Steps is the number of integration steps taken, excluding the initial
// frame.
func (r *Result) Steps() int {
	if len(r.Frames) == 0 {
		return 0
	}
	return len(r.Frames) - 1
}

// Experiment runs one scene headless at a fixed timestep.
type Experiment struct {
	scene   *config.Scene
	catalog manager.Catalog
	log     *zap.Logger

	engine  *engine.Engine
	manager *manager.Manager
	metrics []metrics.Metric
	frames  []Frame
}

func New(scene *config.Scene, catalog manager.Catalog, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{
		scene:   scene,
		catalog: catalog,
		log:     log.With(zap.String("scene", scene.Name)),
	}
}

// Setup builds the engine for the scene. Extra metrics are recorded
// alongside the standard set.
func (x *Experiment) Setup(extra ...metrics.Metric) error {
	if err := x.scene.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", x.scene.Name, err)
	}

	x.engine = engine.New(
		engine.WithClock(engine.NewManualClock()),
		engine.WithLogger(x.log),
	)
	x.manager = manager.New(x.engine, x.catalog, manager.WithLogger(x.log))
	if err := x.manager.ApplyScene(x.scene); err != nil {
		return err
	}

	x.metrics = extra
	x.frames = nil
	x.engine.AddObserver(engine.ObserverFunc(func(states []physics.State, t float64) {
		x.frames = append(x.frames, Frame{Time: t, States: states})
	}))
	return nil
}

// Run steps the scene for its duration. Cancelling ctx stops the run and
// returns the frames recorded so far together with ctx.Err().
func (x *Experiment) Run(ctx context.Context) (*Result, error) {
	if x.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := x.manager.Run(); err != nil {
		return nil, err
	}
	defer x.manager.Stop()

	g := gravityY(x.engine.Forces())
	all := append(metrics.Standard(g, x.scene.Height, x.scene.Width, x.scene.Height), x.metrics...)
	x.engine.AddObserver(metrics.Observer(all...))

	initial := x.engine.State()
	x.frames = append(x.frames, Frame{Time: 0, States: initial})
	for _, m := range all {
		m.Observe(initial, 0)
	}

	steps := x.scene.Steps()
	x.log.Debug("run started", zap.Int("steps", steps), zap.Float64("dt", x.scene.Dt))

	var runErr error
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		x.engine.Step(x.scene.Dt)
	}

	res := &Result{
		Scene:    x.scene.Name,
		Topic:    x.scene.Topic,
		Subtopic: x.scene.Subtopic,
		Dt:       x.scene.Dt,
		Duration: x.scene.Duration,
		Frames:   x.frames,
		Metrics:  make(map[string]float64, len(all)),
	}
	for _, m := range all {
		res.Metrics[m.Name()] = m.Value()
	}
	x.log.Info("run finished", zap.Int("steps", res.Steps()), zap.Error(runErr))
	return res, runErr
}

func (x *Experiment) Engine() *engine.Engine    { return x.engine }
func (x *Experiment) Manager() *manager.Manager { return x.manager }

// gravityY is the downward acceleration of untargeted enabled gravity
// forces, used as g for potential energy.
func gravityY(forces map[string]physics.Force) float64 {
	var g float64
	for _, f := range forces {
		if f.Type != physics.ForceGravity || !f.Enabled || f.TargetObjectID != "" {
			continue
		}
		g += f.Attributes.Magnitude * math.Sin(f.Attributes.Direction*math.Pi/180)
	}
	return g
}
