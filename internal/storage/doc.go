// Package storage persists run records on disk. Each run is a directory
// holding metadata.json and a states.csv of point mass trajectories.
package storage
