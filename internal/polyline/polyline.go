// Package polyline builds multi-point shapes (areas, polygons, lines, pen
// strokes) one pointer event at a time.
package polyline

import (
	"errors"
	"fmt"
	"math"

	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

// CloseTolerance is how close, in pixels, a click must land to the first
// anchor to close an area or polygon.
const CloseTolerance = 15.0

// minClosePoints is the number of distinct anchors needed before closing.
const minClosePoints = 3

// ErrNotPolyline is returned when drawing starts with a kind that is not
// built from points.
var ErrNotPolyline = errors.New("kind is not drawn as a polyline")

// State is the drawing state of an in-progress shape.
type State int

const (
	Drawing State = iota
	Closed
	Finalized
	Cancelled
)

func (s State) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case Closed:
		return "closed"
	case Finalized:
		return "finalized"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Builder holds a shape that is still being drawn. Nothing about it is
// committed until it reaches Closed or Finalized.
type Builder struct {
	shape   shape.Shape
	state   State
	lattice snap.Lattice
}

// Begin starts a polyline of kind with its anchor at start (stage
// coordinates). Pen strokes are freehand and never snapped.
func Begin(kind shape.Kind, start shape.Point, style shape.Style, lattice snap.Lattice) (*Builder, error) {
	switch kind {
	case shape.KindArea, shape.KindPolygon, shape.KindLine, shape.KindArrow, shape.KindPen:
	default:
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %q", shape.ErrInvalidShapeKind, kind)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotPolyline, kind)
	}
	if kind == shape.KindPen {
		lattice = snap.Lattice{}
	}
	x, y := lattice.Point(start.X, start.Y, snap.Nearest)
	s, err := shape.New(kind, shape.Shape{
		Position: &shape.Point{X: x, Y: y},
		Points:   []shape.Point{{}},
		Style:    style,
	})
	if err != nil {
		return nil, err
	}
	return &Builder{shape: s, state: Drawing, lattice: lattice}, nil
}

// State returns the current drawing state.
func (b *Builder) State() State { return b.state }

// Shape returns a copy of the shape as drawn so far.
func (b *Builder) Shape() shape.Shape { return b.shape.Clone() }

// Append handles a click or drag-move at p (stage coordinates).
func (b *Builder) Append(p shape.Point) State {
	if b.state != Drawing {
		return b.state
	}
	x, y := b.lattice.Point(p.X, p.Y, snap.Nearest)
	local := shape.Point{X: x - b.shape.Position.X, Y: y - b.shape.Position.Y}
	pts := b.shape.Points

	switch b.shape.Kind {
	case shape.KindLine, shape.KindArrow:
		if len(pts) < 2 {
			b.shape.Points = append(pts, local)
		} else {
			pts[1] = local
		}
		return b.state
	case shape.KindPen:
		if pts[len(pts)-1] != local {
			b.shape.Points = append(pts, local)
		}
		return b.state
	}

	if distance(local, pts[0]) <= CloseTolerance {
		// too few anchors to close; a click near the start is ignored
		if distinct(pts) < minClosePoints {
			return b.state
		}
		b.shape.Points = append(pts, pts[0])
		b.shape.Closed = true
		b.state = Closed
		return b.state
	}
	for _, q := range pts {
		if q == local {
			// clicking an existing anchor before the shape can close does nothing
			return b.state
		}
	}
	b.shape.Points = append(pts, local)
	return b.state
}

// Finish ends an open polyline on pointer-up. Areas and polygons only
// finish by closing, and zero-length strokes are dropped.
func (b *Builder) Finish() (shape.Shape, bool) {
	switch b.state {
	case Closed, Finalized:
		return b.Shape(), true
	case Cancelled:
		return shape.Shape{}, false
	}
	if b.shape.Kind.Closable() || distinct(b.shape.Points) < 2 {
		return shape.Shape{}, false
	}
	b.state = Finalized
	return b.Shape(), true
}

// Cancel discards the shape if it is still being drawn.
func (b *Builder) Cancel() {
	if b.state == Drawing {
		b.state = Cancelled
	}
}

// DragAnchor moves anchor index of a closed shape to stage position to,
// snapped on release. The first and last anchors of a closed shape move
// together. It reports false when nothing changed.
func DragAnchor(s shape.Shape, index int, to shape.Point, lattice snap.Lattice) (shape.Shape, bool) {
	if !s.Closed || !s.Has(shape.HasPosition|shape.HasPoints) {
		return s, false
	}
	if index < 0 || index >= len(s.Points) {
		return s, false
	}
	x, y := lattice.Point(to.X, to.Y, snap.Nearest)
	local := shape.Point{X: x - s.Position.X, Y: y - s.Position.Y}
	if s.Points[index] == local {
		return s, false
	}
	out := s.Clone()
	out.Points[index] = local
	last := len(out.Points) - 1
	switch index {
	case 0:
		out.Points[last] = local
	case last:
		out.Points[0] = local
	}
	return out, true
}

func distinct(pts []shape.Point) int {
	seen := make(map[shape.Point]struct{}, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
	}
	return len(seen)
}

func distance(a, b shape.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
