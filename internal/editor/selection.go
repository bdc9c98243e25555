package editor

import "shelfmap/internal/shape"

// Select replaces the selection with the selectable live shapes among ids.
func (e *Editor) Select(ids ...string) {
	var sel []string
	for _, s := range e.resolve(ids) {
		if s.Selectable {
			sel = append(sel, s.ID)
		}
	}
	e.selection = sel
}

// Toggle adds id to the selection, or drops it if already selected.
func (e *Editor) Toggle(id string) {
	for i, sel := range e.selection {
		if sel == id {
			e.selection = append(e.selection[:i], e.selection[i+1:]...)
			return
		}
	}
	if s, ok := e.store.Get(id); ok && s.Selectable {
		e.selection = append(e.selection, id)
	}
}

// SelectAll selects every selectable, visible shape.
func (e *Editor) SelectAll() {
	var sel []string
	for _, s := range e.store.List(func(s shape.Shape) bool { return s.Selectable && s.Visible }) {
		sel = append(sel, s.ID)
	}
	e.selection = sel
}

// Selection returns the selected ids in selection order.
func (e *Editor) Selection() []string {
	return append([]string(nil), e.selection...)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() { e.selection = nil }

// HitTest returns the topmost visible shape whose bounds contain p.
func (e *Editor) HitTest(p shape.Point) (shape.Shape, bool) {
	shapes := e.store.List(func(s shape.Shape) bool { return s.Visible })
	for i := len(shapes) - 1; i >= 0; i-- {
		b := shapes[i].Bounds()
		if p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom() {
			return shapes[i], true
		}
	}
	return shape.Shape{}, false
}

func (e *Editor) dropFromSelection(gone []shape.Shape) {
	drop := make(map[string]struct{}, len(gone))
	for _, s := range gone {
		drop[s.ID] = struct{}{}
	}
	kept := e.selection[:0]
	for _, id := range e.selection {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	e.selection = kept
}

// pruneSelection drops ids that undo or redo removed from the store.
func (e *Editor) pruneSelection() {
	kept := e.selection[:0]
	for _, id := range e.selection {
		if e.store.Has(id) {
			kept = append(kept, id)
		}
	}
	e.selection = kept
}
