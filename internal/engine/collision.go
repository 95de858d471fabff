package engine

import "github.com/san-kum/physlab/internal/physics"

func (e *Engine) resolveCollisions() {
	var surfaces []*physics.Surface
	for _, id := range e.objectOrder {
		if s, ok := e.objects[id].(*physics.Surface); ok {
			surfaces = append(surfaces, s)
		}
	}
	if len(surfaces) == 0 {
		return
	}

	for _, id := range e.objectOrder {
		body, ok := e.objects[id].(physics.Body)
		if !ok || body.IsStatic() {
			continue
		}
		for _, s := range surfaces {
			resolveContact(body, s, e.threshold)
		}
	}
}

// resolveContact pushes b back onto the segment of s when it has penetrated
// less than threshold along the segment normal, and removes the velocity
// component pointing into the surface. Points projecting outside the
// segment are ignored. It reports whether a correction was made.
func resolveContact(b physics.Body, s *physics.Surface, threshold float64) bool {
	start := s.Position()
	line := s.EndPosition().Sub(start)
	length := line.Length()
	if length == 0 {
		return false
	}

	normal := line.Perp().Normalize()
	rel := b.Position().Sub(start)
	proj := rel.Dot(line.Normalize())
	if proj < 0 || proj > length {
		return false
	}

	dist := rel.Dot(normal)
	if dist <= 0 || dist >= threshold {
		return false
	}

	b.SetPosition(b.Position().Sub(normal.Scale(dist)))
	if vn := b.Velocity().Dot(normal); vn > 0 {
		b.SetVelocity(b.Velocity().Sub(normal.Scale(vn)))
	}
	return true
}
