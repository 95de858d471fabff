package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/physics"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrRunNotFound = errors.New("run not found")

var csvHeader = []string{"time", "id", "x", "y", "vx", "vy"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Topic     string             `json:"topic"`
	Subtopic  string             `json:"subtopic"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Objects   []string           `json:"objects"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata and point mass trajectories and returns
// the new run id.
func (s *Store) Save(result *experiment.Result) (string, error) {
	ts := s.now()
	name := result.Scene
	if name == "" {
		name = "scene"
	}
	runID := fmt.Sprintf("%s_%d", sanitize(name), ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     result.Scene,
		Topic:     result.Topic,
		Subtopic:  result.Subtopic,
		Timestamp: ts,
		Dt:        result.Dt,
		Duration:  result.Duration,
		Steps:     result.Steps(),
		Objects:   objectIDs(result),
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, frame := range result.Frames {
		t := formatFloat(frame.Time)
		for _, st := range frame.States {
			pm, ok := st.(physics.PointMassState)
			if !ok {
				continue
			}
			row := []string{t, pm.ID, formatFloat(pm.X), formatFloat(pm.Y), formatFloat(pm.VelocityX), formatFloat(pm.VelocityY)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Trajectory is the recorded path of one point mass.
type Trajectory struct {
	ID    string    `json:"id"`
	Times []float64 `json:"times"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	VX    []float64 `json:"vx"`
	VY    []float64 `json:"vy"`
}

// Speeds returns |v| per sample.
func (t *Trajectory) Speeds() []float64 {
	out := make([]float64, len(t.VX))
	for i := range t.VX {
		out[i] = math.Hypot(t.VX[i], t.VY[i])
	}
	return out
}

// LoadTrajectories reads states.csv grouped by object, in order of first
// appearance. Malformed rows are skipped.
func (s *Store) LoadTrajectories(runID string) ([]*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var order []*Trajectory
	byID := make(map[string]*Trajectory)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < len(csvHeader) {
			continue
		}
		vals, ok := parseFloats(rec[0], rec[2], rec[3], rec[4], rec[5])
		if !ok {
			continue
		}

		tr, seen := byID[rec[1]]
		if !seen {
			tr = &Trajectory{ID: rec[1]}
			byID[rec[1]] = tr
			order = append(order, tr)
		}
		tr.Times = append(tr.Times, vals[0])
		tr.X = append(tr.X, vals[1])
		tr.Y = append(tr.Y, vals[2])
		tr.VX = append(tr.VX, vals[3])
		tr.VY = append(tr.VY, vals[4])
	}
	return order, nil
}

func objectIDs(result *experiment.Result) []string {
	if len(result.Frames) == 0 {
		return []string{}
	}
	ids := make([]string, 0, len(result.Frames[0].States))
	for _, st := range result.Frames[0].States {
		ids = append(ids, st.StateID())
	}
	return ids
}

func parseFloats(fields ...string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
