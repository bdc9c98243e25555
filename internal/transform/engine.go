// Package transform turns drag, resize and rotate gestures on a selection
// into snapped shape snapshots.
package transform

import (
	"math"
	"reflect"

	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

// Config holds the inputs the engine reads from the surrounding editor.
type Config struct {
	Lattice snap.Lattice
	// MaxBatch bounds the selection size that gets full resize and rotate
	// handling. Zero means no limit.
	MaxBatch int
	// StageScale is the current zoom of the stage; zero reads as 1.
	StageScale float64
}

// Gesture is a Drag, Resize or Rotate.
type Gesture interface {
	gesture()
}

// Drag moves the selection by a pointer delta.
type Drag struct {
	DX, DY float64
	// RotationInclusive is set while the pointer drags a rotated selection
	// as a whole; rotated shapes then keep sub-pixel positions.
	RotationInclusive bool
}

// Resize scales the selection about Origin, the point held fixed by the
// transform handle.
type Resize struct {
	ScaleX, ScaleY float64
	Origin         shape.Point
}

// Rotate turns the selection by Delta degrees.
type Rotate struct {
	Delta float64
}

func (Drag) gesture()   {}
func (Resize) gesture() {}
func (Rotate) gesture() {}

// Change is the before and after snapshot of one shape.
type Change struct {
	Past    shape.Shape
	Present shape.Shape
}

// Result is what a gesture produced. Degraded is set when the selection was
// over the batch limit and only positions were updated.
type Result struct {
	Changes  []Change
	Degraded bool
}

// Changed reports whether any shape differs from its past snapshot.
func (r Result) Changed() bool {
	for _, c := range r.Changes {
		if !reflect.DeepEqual(c.Past, c.Present) {
			return true
		}
	}
	return false
}

// Past returns the before snapshots in change order.
func (r Result) Past() []shape.Shape {
	out := make([]shape.Shape, len(r.Changes))
	for i, c := range r.Changes {
		out[i] = c.Past
	}
	return out
}

// Present returns the after snapshots in change order.
func (r Result) Present() []shape.Shape {
	out := make([]shape.Shape, len(r.Changes))
	for i, c := range r.Changes {
		out[i] = c.Present
	}
	return out
}

// Engine applies gestures. It never mutates its inputs.
type Engine struct {
	cfg Config
}

// New returns an engine using cfg.
func New(cfg Config) *Engine {
	if cfg.StageScale == 0 {
		cfg.StageScale = 1
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// CanResize reports whether a selection of n shapes gets resize and rotate
// handling. The editor surfaces this as the resize handle state.
func (e *Engine) CanResize(n int) bool {
	return e.cfg.MaxBatch <= 0 || n <= e.cfg.MaxBatch
}

// Apply runs g on selection. scene is every live shape and is consulted for
// fixture neighbors; it may include the selection itself. Locked shapes in
// the selection are left alone.
func (e *Engine) Apply(selection, scene []shape.Shape, g Gesture) Result {
	sel := make([]shape.Shape, 0, len(selection))
	for _, s := range selection {
		if !s.Locked && s.Has(shape.HasPosition) {
			sel = append(sel, s)
		}
	}
	if len(sel) == 0 {
		return Result{}
	}
	switch g := g.(type) {
	case Drag:
		return e.drag(sel, g)
	case Resize:
		return e.resize(sel, scene, g)
	case Rotate:
		return e.rotate(sel, g)
	}
	return Result{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
