package physics

// State is a renderer-facing snapshot of one object. It is either a
// PointMassState or a SurfaceState.
type State interface {
	StateID() string
	StateType() string
}

type PointMassState struct {
	ID        string  `json:"id" yaml:"id"`
	Type      string  `json:"type" yaml:"type"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Angle     float64 `json:"angle" yaml:"angle"`
	Label     string  `json:"label" yaml:"label"`
	Size      float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	VelocityX float64 `json:"velocityX" yaml:"velocityX"`
	VelocityY float64 `json:"velocityY" yaml:"velocityY"`
	Mass      float64 `json:"-" yaml:"-"`
}

func (s PointMassState) StateID() string   { return s.ID }
func (s PointMassState) StateType() string { return s.Type }

type SurfaceState struct {
	ID     string  `json:"id" yaml:"id"`
	Type   string  `json:"type" yaml:"type"`
	StartX float64 `json:"startX" yaml:"startX"`
	StartY float64 `json:"startY" yaml:"startY"`
	EndX   float64 `json:"endX" yaml:"endX"`
	EndY   float64 `json:"endY" yaml:"endY"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
}

func (s SurfaceState) StateID() string   { return s.ID }
func (s SurfaceState) StateType() string { return s.Type }
