package transform

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"

	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

func (e *Engine) rotate(sel []shape.Shape, g Rotate) Result {
	if g.Delta == 0 {
		return Result{}
	}
	if !e.CanResize(len(sel)) {
		return Result{Degraded: true}
	}
	if len(sel) == 1 {
		return e.rotateSingle(sel[0], g.Delta)
	}

	shared := true
	for _, s := range sel[1:] {
		if s.Rotation != sel[0].Rotation {
			shared = false
			break
		}
	}
	if shared && math.Abs(g.Delta) < 1 {
		// a sub-degree nudge on a uniformly rotated selection settles back
		// onto the lattice instead of drifting
		res := Result{Changes: make([]Change, 0, len(sel))}
		for _, s := range sel {
			next := s.Clone()
			next.Position.X, next.Position.Y = e.cfg.Lattice.Point(s.Position.X, s.Position.Y, snap.Nearest)
			res.Changes = append(res.Changes, Change{Past: s.Clone(), Present: next})
		}
		return res
	}

	f := newFrame(sel, e.cfg.StageScale)
	res := Result{Changes: make([]Change, 0, len(sel))}
	for _, s := range sel {
		next := s.Clone()
		rel := f.enter(r2.Vec{X: s.Position.X, Y: s.Position.Y})
		abs := f.exit(rel, g.Delta)
		next.Position.X, next.Position.Y = abs.X, abs.Y
		next.Rotation = s.Rotation + g.Delta
		res.Changes = append(res.Changes, Change{Past: s.Clone(), Present: next})
	}
	return res
}

// rotateSingle turns one shape about the center of its box. Rotation is
// kept to whole degrees.
func (e *Engine) rotateSingle(s shape.Shape, delta float64) Result {
	rotation := math.Trunc(s.Rotation + delta)
	applied := rotation - s.Rotation
	if applied == 0 {
		return Result{}
	}
	f := newFrame([]shape.Shape{s}, e.cfg.StageScale)
	abs := f.exit(f.enter(r2.Vec{X: s.Position.X, Y: s.Position.Y}), applied)

	next := s.Clone()
	next.Rotation = rotation
	next.Position.X, next.Position.Y = e.cfg.Lattice.Point(abs.X, abs.Y, snap.Ceil)
	return Result{Changes: []Change{{Past: s.Clone(), Present: next}}}
}

// frame is a temporary parent for a selection: members enter it relative to
// its origin, the frame turns about its own center, and members are read
// back out in stage coordinates.
type frame struct {
	origin r2.Vec
	size   r2.Vec
	scale  float64
}

func newFrame(sel []shape.Shape, scale float64) frame {
	b := SelectionBound(sel)
	if scale == 0 {
		scale = 1
	}
	return frame{
		origin: r2.Vec{X: b.Min.X(), Y: b.Min.Y()},
		size:   r2.Vec{X: b.Max.X() - b.Min.X(), Y: b.Max.Y() - b.Min.Y()},
		scale:  scale,
	}
}

// enter expresses p relative to the frame origin in screen units.
func (f frame) enter(p r2.Vec) r2.Vec {
	return r2.Scale(f.scale, r2.Sub(p, f.origin))
}

// exit rotates the frame by delta degrees about its center and returns the
// stage position of a member at rel.
func (f frame) exit(rel r2.Vec, delta float64) r2.Vec {
	rot := r2.NewRotation(delta*math.Pi/180, r2.Vec{})
	half := r2.Scale(0.5, f.size)
	// rotating the corner offset and shifting by the difference keeps the
	// center fixed
	origin := r2.Add(f.origin, r2.Sub(half, rot.Rotate(half)))
	return r2.Add(origin, rot.Rotate(r2.Scale(1/f.scale, rel)))
}

// SelectionBound is the axis-aligned box around every shape in sel.
func SelectionBound(sel []shape.Shape) orb.Bound {
	var b orb.Bound
	for i, s := range sel {
		r := s.Bounds()
		sb := orb.Bound{
			Min: orb.Point{r.X, r.Y},
			Max: orb.Point{r.Right(), r.Bottom()},
		}
		if i == 0 {
			b = sb
			continue
		}
		b = b.Union(sb)
	}
	return b
}

// SelectionRect is SelectionBound as a shape.Rect.
func SelectionRect(sel []shape.Shape) shape.Rect {
	b := SelectionBound(sel)
	return shape.Rect{
		X:      b.Min.X(),
		Y:      b.Min.Y(),
		Width:  b.Max.X() - b.Min.X(),
		Height: b.Max.Y() - b.Min.Y(),
	}
}
