package render

import (
	"shelfmap/internal/layout"
	"shelfmap/internal/shape"
)

// Projector caches the drawable shapes and refreshes them only after the
// store reports a change. Subscribe Handle to the store.
type Projector struct {
	list  func() []shape.Shape
	cache []shape.Shape
	dirty bool
}

// NewProjector returns a projector reading shapes through list.
func NewProjector(list func() []shape.Shape) *Projector {
	return &Projector{list: list, dirty: true}
}

// Handle marks the cache stale.
func (p *Projector) Handle(layout.Event) { p.dirty = true }

// Dirty reports whether the next Shapes call will reload.
func (p *Projector) Dirty() bool { return p.dirty }

// Shapes returns the current drawable shapes.
func (p *Projector) Shapes() []shape.Shape {
	if p.dirty {
		p.cache = p.list()
		p.dirty = false
	}
	return p.cache
}
