package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type ExportData struct {
	RunMetadata
	Trajectories []*Trajectory `json:"trajectories"`
}

// ExportJSON writes the run's metadata and trajectories as indented JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trajectories, err := s.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Trajectories: trajectories})
}

// ExportCSV copies the run's states.csv to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
