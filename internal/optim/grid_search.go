package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/manager"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates every combination of parameter values on copies
// of a base scene and keeps the best value of one metric.
type GridSearch struct {
	params   []Param
	maximize bool
	parallel int
	log      *zap.Logger
}

func NewGridSearch(params []Param, maximize bool) *GridSearch {
	return &GridSearch{params: params, maximize: maximize, parallel: 4, log: zap.NewNop()}
}

func (g *GridSearch) WithParallel(n int) *GridSearch { g.parallel = n; return g }

func (g *GridSearch) WithLogger(l *zap.Logger) *GridSearch {
	if l != nil {
		g.log = l
	}
	return g
}

// Search runs the grid and returns the best trial plus every trial in
// grid order.
func (g *GridSearch) Search(ctx context.Context, base *config.Scene, catalog manager.Catalog, metricName string) (Trial, []Trial, error) {
	if len(g.params) == 0 {
		return Trial{}, nil, errors.New("no parameters to sweep")
	}

	var combos []map[string]float64
	g.combinations(0, make(map[string]float64), &combos)

	scenes := make([]*config.Scene, len(combos))
	for i, params := range combos {
		scene := base.Clone()
		scene.Name = fmt.Sprintf("%s_sweep%03d", base.Name, i)
		for path, v := range params {
			if err := Apply(scene, path, v); err != nil {
				return Trial{}, nil, err
			}
		}
		scenes[i] = scene
	}

	g.log.Info("sweep started", zap.Int("trials", len(scenes)), zap.String("metric", metricName))
	results, err := experiment.RunBatch(ctx, scenes, catalog, g.log, g.parallel)
	if err != nil {
		return Trial{}, nil, err
	}

	trials := make([]Trial, len(results))
	best := Trial{Value: math.Inf(1)}
	if g.maximize {
		best.Value = math.Inf(-1)
	}
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return Trial{}, nil, fmt.Errorf("unknown metric %q", metricName)
		}
		trials[i] = Trial{Params: combos[i], Value: val}
		if g.better(val, best.Value) {
			best = trials[i]
		}
	}
	return best, trials, nil
}

func (g *GridSearch) better(v, best float64) bool {
	if g.maximize {
		return v > best
	}
	return v < best
}

func (g *GridSearch) combinations(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.params) {
		*out = append(*out, current)
		return
	}

	p := g.params[depth]
	for _, val := range p.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[p.Path] = val

		g.combinations(depth+1, next, out)
	}
}
