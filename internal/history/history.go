// Package history records shape mutations as invertible operations and
// replays them for undo and redo.
package history

import (
	"fmt"

	"shelfmap/internal/shape"
)

// Kind is the type of an operation.
type Kind int

const (
	Add Kind = iota
	Change
	Remove
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "ADD"
	case Change:
		return "CHANGE"
	case Remove:
		return "REMOVE"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operation is one undoable unit. Past is empty for Add; for Remove,
// Present holds the shapes that were deleted. For Change, Past[i] and
// Present[i] describe the same shape.
type Operation struct {
	Kind    Kind
	Past    []shape.Shape
	Present []shape.Shape
}

// IDs lists the shapes the operation touches.
func (op Operation) IDs() []string {
	ids := make([]string, len(op.Present))
	for i, s := range op.Present {
		ids[i] = s.ID
	}
	return ids
}

// Target is the shape store operations are applied to.
type Target interface {
	Put(s shape.Shape)
	Delete(id string) bool
}

// History is a linear undo stack with a cursor. Operations at or past the
// cursor form the redo tail.
type History struct {
	stack   []Operation
	cursor  int
	unsaved bool
}

// New returns an empty history.
func New() *History {
	return &History{stack: []Operation{}}
}

// Record appends op, dropping any redo tail. Snapshots are copied so later
// edits to the caller's shapes cannot reach into history.
func (h *History) Record(op Operation) {
	h.stack = append(h.stack[:h.cursor], Operation{
		Kind:    op.Kind,
		Past:    cloneAll(op.Past),
		Present: cloneAll(op.Present),
	})
	h.cursor = len(h.stack)
	h.unsaved = true
}

// Undo reverts the operation before the cursor. It reports false when
// there is nothing to undo.
func (h *History) Undo(t Target) bool {
	if h.cursor == 0 {
		return false
	}
	op := h.stack[h.cursor-1]
	switch op.Kind {
	case Add:
		for _, s := range op.Present {
			t.Delete(s.ID)
		}
	case Remove:
		for _, s := range op.Present {
			t.Put(s.Clone())
		}
	case Change:
		for _, s := range op.Past {
			t.Put(s.Clone())
		}
	}
	h.cursor--
	h.unsaved = true
	return true
}

// Redo reapplies the operation at the cursor. It reports false when there
// is nothing to redo.
func (h *History) Redo(t Target) bool {
	if h.cursor >= len(h.stack) {
		return false
	}
	op := h.stack[h.cursor]
	switch op.Kind {
	case Add, Change:
		for _, s := range op.Present {
			t.Put(s.Clone())
		}
	case Remove:
		for _, s := range op.Present {
			t.Delete(s.ID)
		}
	}
	h.cursor++
	h.unsaved = true
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return h.cursor < len(h.stack) }

// Unsaved reports whether anything was recorded, undone or redone since
// the last MarkSaved.
func (h *History) Unsaved() bool { return h.unsaved }

// MarkSaved clears the unsaved flag.
func (h *History) MarkSaved() { h.unsaved = false }

// Len is the number of operations held, including the redo tail.
func (h *History) Len() int { return len(h.stack) }

// Cursor is the number of operations currently applied.
func (h *History) Cursor() int { return h.cursor }

// Peek returns the operation Undo would revert.
func (h *History) Peek() (Operation, bool) {
	if h.cursor == 0 {
		return Operation{}, false
	}
	return h.stack[h.cursor-1], true
}

// Clear forgets every operation.
func (h *History) Clear() {
	h.stack = h.stack[:0]
	h.cursor = 0
	h.unsaved = false
}

func cloneAll(in []shape.Shape) []shape.Shape {
	if in == nil {
		return nil
	}
	out := make([]shape.Shape, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
