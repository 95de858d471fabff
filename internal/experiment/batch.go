package experiment

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/manager"
)

// RunBatch runs each scene on its own engine, at most limit at a time
// (limit <= 0 means no limit). Results keep the order of scenes. The first
// failure cancels the remaining runs.
func RunBatch(ctx context.Context, scenes []*config.Scene, catalog manager.Catalog, log *zap.Logger, limit int) ([]*Result, error) {
	results := make([]*Result, len(scenes))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, scene := range scenes {
		g.Go(func() error {
			x := New(scene.Clone(), catalog, log)
			if err := x.Setup(); err != nil {
				return err
			}
			res, err := x.Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
