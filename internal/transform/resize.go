package transform

import (
	"math"

	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

// resizeContext is what every resize rule sees for one gesture.
type resizeContext struct {
	sx, sy  float64
	mode    snap.Mode
	lattice snap.Lattice
}

type resizeRule func(c resizeContext, past shape.Shape, next *shape.Shape)

// resizeRules run in order for every capability a shape has.
var resizeRules = []struct {
	cap   shape.Capability
	apply resizeRule
}{
	{shape.HasSize, resizeSize},
	{shape.HasRadius, resizeRadius},
	{shape.HasPoints, resizePoints},
	{shape.HasScale, resizeScale},
	{shape.HasFontSize, keep},
}

// resizeOverrides replace the generic rule for a capability on one kind.
var resizeOverrides = map[shape.Kind]map[shape.Capability]resizeRule{
	shape.KindLine:  {shape.HasPoints: resizeLine},
	shape.KindArrow: {shape.HasPoints: resizeLine},
	shape.KindText:  {shape.HasFontSize: resizeFont},
	// pen strokes carry their scale in Scale, points stay as drawn
	shape.KindPen: {shape.HasPoints: keep},
}

func (e *Engine) resize(sel, scene []shape.Shape, g Resize) Result {
	sx, sy := round2(g.ScaleX), round2(g.ScaleY)
	if sx <= 0 || sy <= 0 || (sx == 1 && sy == 1) {
		return Result{}
	}
	c := resizeContext{sx: sx, sy: sy, mode: snap.Nearest, lattice: e.cfg.Lattice}
	if len(sel) > 1 {
		// neighbors must not end up short of each other's edges
		c.mode = snap.Ceil
	}
	res := Result{Changes: make([]Change, 0, len(sel)), Degraded: !e.CanResize(len(sel))}

	for _, s := range sel {
		next := s.Clone()
		x := g.Origin.X + (s.Position.X-g.Origin.X)*sx
		y := g.Origin.Y + (s.Position.Y-g.Origin.Y)*sy
		next.Position.X, next.Position.Y = c.lattice.Point(x, y, snap.Nearest)
		if !res.Degraded {
			applyResizeRules(c, s, &next)
		}
		res.Changes = append(res.Changes, Change{Past: s.Clone(), Present: next})
	}
	if !res.Degraded {
		res.Changes = e.refit(res.Changes, scene)
	}
	return res
}

func applyResizeRules(c resizeContext, past shape.Shape, next *shape.Shape) {
	caps := past.Capabilities()
	overrides := resizeOverrides[past.Kind]
	for _, r := range resizeRules {
		if caps&r.cap == 0 {
			continue
		}
		apply := r.apply
		if o, ok := overrides[r.cap]; ok {
			apply = o
		}
		apply(c, past, next)
	}
}

func keep(resizeContext, shape.Shape, *shape.Shape) {}

func resizeSize(c resizeContext, past shape.Shape, next *shape.Shape) {
	w := c.lattice.X(past.Size.Width*c.sx, c.mode)
	h := c.lattice.Y(past.Size.Height*c.sy, c.mode)
	if w <= 0 {
		w = cellOr(c.lattice.Width, 1)
	}
	if h <= 0 {
		h = cellOr(c.lattice.Height, 1)
	}
	if past.MinSize != nil {
		w = math.Max(w, past.MinSize.Width)
		h = math.Max(h, past.MinSize.Height)
	}
	next.Size.Width, next.Size.Height = w, h
}

func resizeRadius(c resizeContext, past shape.Shape, next *shape.Shape) {
	rx := c.lattice.X(math.Max(past.MinRadius, 2*past.Radius.X*c.sx)/2, c.mode)
	ry := c.lattice.Y(math.Max(past.MinRadius, 2*past.Radius.Y*c.sy)/2, c.mode)
	if rx <= 0 {
		rx = math.Max(past.MinRadius/2, 1)
	}
	if ry <= 0 {
		ry = math.Max(past.MinRadius/2, 1)
	}
	next.Radius.X, next.Radius.Y = rx, ry
}

func resizePoints(c resizeContext, past shape.Shape, next *shape.Shape) {
	for i, p := range past.Points {
		next.Points[i] = shape.Point{
			X: c.lattice.X(p.X*c.sx, snap.Nearest),
			Y: c.lattice.Y(p.Y*c.sy, snap.Nearest),
		}
	}
}

func resizeScale(c resizeContext, past shape.Shape, next *shape.Shape) {
	next.Scale.X = round2(past.Scale.X * c.sx)
	next.Scale.Y = round2(past.Scale.Y * c.sy)
}

// resizeLine scales endpoints on their own and moves the scale of the axis
// the line has no extent along into its stroke width.
func resizeLine(c resizeContext, past shape.Shape, next *shape.Shape) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range past.Points {
		next.Points[i] = shape.Point{X: round2(p.X * c.sx), Y: round2(p.Y * c.sy)}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	across := c.sx
	if maxY-minY < maxX-minX {
		across = c.sy
	}
	next.Style.StrokeWidth = math.Max(1, round2(past.Style.StrokeWidth*across))
}

// resizeFont grows text by the larger factor and shrinks it by the smaller
// one. Mixed gestures follow whichever axis moved further from 1.
func resizeFont(c resizeContext, past shape.Shape, next *shape.Shape) {
	var f float64
	switch {
	case c.sx >= 1 && c.sy >= 1:
		f = math.Max(c.sx, c.sy)
	case c.sx <= 1 && c.sy <= 1:
		f = math.Min(c.sx, c.sy)
	case math.Abs(c.sx-1) >= math.Abs(c.sy-1):
		f = c.sx
	default:
		f = c.sy
	}
	next.Text.FontSize = math.Max(1, round2(past.Text.FontSize*f))
}

func cellOr(cell, fallback float64) float64 {
	if cell > 0 {
		return cell
	}
	return fallback
}
