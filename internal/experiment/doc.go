// Package experiment runs scenes headless at a fixed timestep and collects
// per-step snapshots and metrics.
package experiment
