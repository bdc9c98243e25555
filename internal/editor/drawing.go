package editor

import (
	"fmt"

	"shelfmap/internal/history"
	"shelfmap/internal/polyline"
	"shelfmap/internal/shape"
)

// BeginDrawing starts a polyline of kind at stage position at. Any shape
// still being drawn is discarded first.
func (e *Editor) BeginDrawing(kind shape.Kind, at shape.Point, style shape.Style) error {
	if e.drawing != nil {
		e.drawing.Cancel()
	}
	b, err := polyline.Begin(kind, at, style, e.cfg.Lattice)
	if err != nil {
		return err
	}
	e.drawing = b
	e.selection = nil
	return nil
}

// DrawTo feeds a pointer event to the shape being drawn.
func (e *Editor) DrawTo(p shape.Point) (polyline.State, error) {
	if e.drawing == nil {
		return polyline.Cancelled, ErrNotDrawing
	}
	return e.drawing.Append(p), nil
}

// Drawing returns the shape being drawn, for previews.
func (e *Editor) Drawing() (shape.Shape, polyline.State, bool) {
	if e.drawing == nil {
		return shape.Shape{}, polyline.Cancelled, false
	}
	return e.drawing.Shape(), e.drawing.State(), true
}

// FinishDrawing commits the shape being drawn as one ADD operation. It
// reports false, recording nothing, when the shape is not complete; an
// unclosed area stays in progress so drawing can continue.
func (e *Editor) FinishDrawing() (history.Operation, bool, error) {
	if e.drawing == nil {
		return history.Operation{}, false, ErrNotDrawing
	}
	s, ok := e.drawing.Finish()
	if !ok {
		if e.drawing.State() == polyline.Cancelled {
			e.drawing = nil
		}
		return history.Operation{}, false, nil
	}
	e.drawing = nil
	op, err := e.Add(s)
	if err != nil {
		return history.Operation{}, false, err
	}
	e.selection = []string{s.ID}
	return op, true, nil
}

// Escape abandons the shape being drawn and clears the selection. Nothing
// is recorded.
func (e *Editor) Escape() {
	if e.drawing != nil {
		e.drawing.Cancel()
		e.drawing = nil
		e.log.Debug("drawing cancelled")
	}
	e.selection = nil
}

// DragAnchor moves one anchor of a closed area or polygon and records a
// CHANGE when it lands somewhere new.
func (e *Editor) DragAnchor(id string, index int, to shape.Point) (history.Operation, bool, error) {
	s, ok := e.store.Get(id)
	if !ok {
		return history.Operation{}, false, fmt.Errorf("%w: %s", ErrUnknownShape, id)
	}
	if s.Locked {
		return history.Operation{}, false, nil
	}
	next, moved := polyline.DragAnchor(s, index, to, e.cfg.Lattice)
	if !moved {
		return history.Operation{}, false, nil
	}
	e.store.Put(next)
	op := e.record(history.Operation{
		Kind:    history.Change,
		Past:    []shape.Shape{s},
		Present: []shape.Shape{next},
	})
	return op, true, nil
}
