package optim

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/san-kum/physlab/internal/config"
)

var (
	ErrBadParam    = errors.New("invalid parameter")
	ErrUnknownItem = errors.New("unknown item")
)

// Param is one swept attribute. Path is "<item id>.<attribute>" with an
// optional ".x" or ".y" suffix for point attributes.
type Param struct {
	Path   string
	Values []float64
}

// Range returns start, start+step, ... up to and including stop.
func Range(start, stop, step float64) []float64 {
	if step <= 0 || stop < start {
		return []float64{start}
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// ParseParam reads "path=start:stop:step" or "path=v1,v2,...".
func ParseParam(s string) (Param, error) {
	path, rhs, ok := strings.Cut(s, "=")
	if !ok || path == "" || rhs == "" {
		return Param{}, fmt.Errorf("%w: %q (want path=start:stop:step)", ErrBadParam, s)
	}

	if parts := strings.Split(rhs, ":"); len(parts) == 3 {
		vals := make([]float64, 3)
		for i, p := range parts {
			v, err := cast.ToFloat64E(strings.TrimSpace(p))
			if err != nil {
				return Param{}, fmt.Errorf("%w: %q: %v", ErrBadParam, s, err)
			}
			vals[i] = v
		}
		if vals[2] <= 0 {
			return Param{}, fmt.Errorf("%w: %q: step must be > 0", ErrBadParam, s)
		}
		return Param{Path: path, Values: Range(vals[0], vals[1], vals[2])}, nil
	}

	var values []float64
	for _, p := range strings.Split(rhs, ",") {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return Param{}, fmt.Errorf("%w: %q: %v", ErrBadParam, s, err)
		}
		values = append(values, v)
	}
	return Param{Path: path, Values: values}, nil
}

// Apply sets the attribute named by path on the matching object or tool.
func Apply(scene *config.Scene, path string, v float64) error {
	id, rest, ok := strings.Cut(path, ".")
	if !ok || rest == "" {
		return fmt.Errorf("%w: path %q", ErrBadParam, path)
	}

	item := findItem(scene, id)
	if item == nil {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if item.Attributes == nil {
		item.Attributes = make(map[string]any)
	}

	key, axis, nested := strings.Cut(rest, ".")
	if !nested {
		item.Attributes[key] = v
		return nil
	}
	if axis != "x" && axis != "y" {
		return fmt.Errorf("%w: path %q: component must be x or y", ErrBadParam, path)
	}

	point, _ := item.Attributes[key].(map[string]any)
	if point == nil {
		point = map[string]any{"x": 0.0, "y": 0.0}
		item.Attributes[key] = point
	}
	point[axis] = v
	return nil
}

func findItem(scene *config.Scene, id string) *config.Item {
	for i := range scene.Objects {
		if scene.Objects[i].ID == id {
			return &scene.Objects[i]
		}
	}
	for i := range scene.Tools {
		if scene.Tools[i].ID == id {
			return &scene.Tools[i]
		}
	}
	return nil
}
