package physics

import (
	"strings"

	"github.com/spf13/cast"
)

// Attributes is the flat attribute schema understood by the object
// constructors. Values arrive from editors and scene files, so the getters
// are permissive: a missing key yields the default and a malformed value
// coalesces to zero.
type Attributes map[string]any

// Float returns the numeric value at key.
func (a Attributes) Float(key string, def float64) float64 {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// String returns the string value at key.
func (a Attributes) String(key, def string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	return cast.ToString(v)
}

// Bool returns the boolean value at key.
func (a Attributes) Bool(key string, def bool) bool {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Has reports whether key is present with a non-nil value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Clone returns a shallow copy.
func (a Attributes) Clone() Attributes {
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Point reads a nested {x, y} value such as an editor position field. It
// accepts maps keyed by string or any, and reports false when key does not
// hold an object.
func (a Attributes) Point(key string) (x, y float64, ok bool) {
	v, present := a[key]
	if !present || v == nil {
		return 0, 0, false
	}
	var m map[string]any
	switch p := v.(type) {
	case map[string]any:
		m = p
	case Attributes:
		m = p
	case map[any]any:
		m = make(map[string]any, len(p))
		for k, val := range p {
			m[cast.ToString(k)] = val
		}
	case map[string]float64:
		return p["x"], p["y"], true
	default:
		return 0, 0, false
	}
	nested := Attributes(m)
	return nested.Float("x", 0), nested.Float("y", 0), true
}

// canonicalType lower-cases a type name and folds separators so that
// "appliedForce", "Applied Force" and "applied_force" compare equal.
func canonicalType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
