package transform

import (
	"math"

	"shelfmap/internal/shape"
)

// refit closes seams between contiguous fixtures after a resize. Every
// fixture that touched a resized fixture before the gesture is re-measured
// against it, and its span along the free axis is rewritten to meet that
// neighbor's new edge while keeping its own far edge. Fixtures outside the
// selection that move are appended to changes.
func (e *Engine) refit(changes []Change, scene []shape.Shape) []Change {
	index := make(map[string]int, len(changes))
	for i, c := range changes {
		index[c.Present.ID] = i
	}

	past := make(map[string]shape.Shape, len(scene)+len(changes))
	order := make([]string, 0, len(scene)+len(changes))
	for _, s := range scene {
		if _, dup := past[s.ID]; !dup {
			order = append(order, s.ID)
		}
		past[s.ID] = s
	}
	for _, c := range changes {
		if _, ok := past[c.Past.ID]; !ok {
			order = append(order, c.Past.ID)
		}
		past[c.Past.ID] = c.Past
	}

	current := func(id string) shape.Shape {
		if i, ok := index[id]; ok {
			return changes[i].Present
		}
		return past[id]
	}
	resized := func(id string) bool {
		i, ok := index[id]
		return ok && !changes[i].Present.Locked
	}

	for _, id := range order {
		target := past[id]
		if !refittable(target) {
			continue
		}
		n, side, ok := neighborOf(target, order, past, resized)
		if !ok {
			continue
		}
		cur := current(id)
		nb := current(n).Bounds()
		next := cur.Clone()
		if !fitTo(&next, nb, side) {
			continue
		}
		if i, ok := index[id]; ok {
			changes[i].Present = next
			continue
		}
		index[id] = len(changes)
		changes = append(changes, Change{Past: target.Clone(), Present: next})
	}
	return changes
}

// side names which edge of the target a neighbor touches.
type side int

const (
	above side = iota
	below
	left
	right
)

func refittable(s shape.Shape) bool {
	return s.Has(shape.IsFixture|shape.HasPosition|shape.HasSize) && s.Rotation == 0 && !s.Locked
}

// neighborOf finds the resized fixture touching target before the gesture.
// Vertical fixtures look above, then below; horizontal fixtures look left,
// then right. Among touching candidates on one side the one farthest from
// the target on the other axis wins, picking the outer end of a run.
func neighborOf(target shape.Shape, order []string, past map[string]shape.Shape, resized func(string) bool) (string, side, bool) {
	tb := target.Bounds()
	sides := []side{above, below}
	if target.Fixture.Orientation == shape.Horizontal {
		sides = []side{left, right}
	}
	for _, sd := range sides {
		best, bestDist := "", -1.0
		for _, id := range order {
			if id == target.ID || !resized(id) {
				continue
			}
			cand := past[id]
			if !refittable(cand) {
				continue
			}
			cb := cand.Bounds()
			if !touches(tb, cb, sd) {
				continue
			}
			var d float64
			if sd == above || sd == below {
				d = math.Abs(cb.X - tb.X)
			} else {
				d = math.Abs(cb.Y - tb.Y)
			}
			if d > bestDist {
				best, bestDist = id, d
			}
		}
		if best != "" {
			return best, sd, true
		}
	}
	return "", 0, false
}

func touches(t, c shape.Rect, sd side) bool {
	switch sd {
	case above:
		return c.Bottom() == t.Y && overlaps(t.X, t.Right(), c.X, c.Right())
	case below:
		return c.Y == t.Bottom() && overlaps(t.X, t.Right(), c.X, c.Right())
	case left:
		return c.Right() == t.X && overlaps(t.Y, t.Bottom(), c.Y, c.Bottom())
	case right:
		return c.X == t.Right() && overlaps(t.Y, t.Bottom(), c.Y, c.Bottom())
	}
	return false
}

func overlaps(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && b0 < a1
}

// fitTo moves the edge of s facing the neighbor onto the neighbor's far
// edge. It reports false if nothing changed or the span would collapse.
func fitTo(s *shape.Shape, nb shape.Rect, sd side) bool {
	p, sz := s.Position, s.Size
	switch sd {
	case above:
		far := p.Y + sz.Height
		if nb.Bottom() == p.Y || far-nb.Bottom() <= 0 {
			return false
		}
		p.Y, sz.Height = nb.Bottom(), far-nb.Bottom()
	case below:
		if nb.Y == p.Y+sz.Height || nb.Y-p.Y <= 0 {
			return false
		}
		sz.Height = nb.Y - p.Y
	case left:
		far := p.X + sz.Width
		if nb.Right() == p.X || far-nb.Right() <= 0 {
			return false
		}
		p.X, sz.Width = nb.Right(), far-nb.Right()
	case right:
		if nb.X == p.X+sz.Width || nb.X-p.X <= 0 {
			return false
		}
		sz.Width = nb.X - p.X
	}
	return true
}
