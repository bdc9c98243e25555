package transform

import (
	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

func (e *Engine) drag(sel []shape.Shape, g Drag) Result {
	snapping := true
	if g.RotationInclusive {
		for _, s := range sel {
			if s.Rotation != 0 {
				snapping = false
				break
			}
		}
	}
	res := Result{Changes: make([]Change, 0, len(sel))}
	for _, s := range sel {
		next := s.Clone()
		x, y := s.Position.X+g.DX, s.Position.Y+g.DY
		if snapping {
			x, y = e.cfg.Lattice.Point(x, y, snap.Nearest)
		}
		next.Position.X, next.Position.Y = x, y
		res.Changes = append(res.Changes, Change{Past: s.Clone(), Present: next})
	}
	return res
}
