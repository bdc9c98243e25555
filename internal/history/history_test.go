package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmap/internal/shape"
)

// mapTarget is the smallest Target: a map of live shapes.
type mapTarget map[string]shape.Shape

func (m mapTarget) Put(s shape.Shape) { m[s.ID] = s.Clone() }

func (m mapTarget) Delete(id string) bool {
	_, ok := m[id]
	delete(m, id)
	return ok
}

func (m mapTarget) clone() mapTarget {
	out := make(mapTarget, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

func rect(t *testing.T, x float64) shape.Shape {
	t.Helper()
	s, err := shape.New(shape.KindRect, shape.Shape{Position: &shape.Point{X: x}})
	require.NoError(t, err)
	return s
}

func moved(s shape.Shape, dx float64) shape.Shape {
	c := s.Clone()
	c.Position.X += dx
	return c
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New()
	m := mapTarget{}

	a, b := rect(t, 0), rect(t, 100)
	apply := func(op Operation) {
		switch op.Kind {
		case Add, Change:
			for _, s := range op.Present {
				m.Put(s)
			}
		case Remove:
			for _, s := range op.Present {
				m.Delete(s.ID)
			}
		}
		h.Record(op)
	}

	apply(Operation{Kind: Add, Present: []shape.Shape{a, b}})
	apply(Operation{Kind: Change, Past: []shape.Shape{a, b}, Present: []shape.Shape{moved(a, 10), moved(b, 10)}})
	apply(Operation{Kind: Remove, Present: []shape.Shape{moved(a, 10)}})
	apply(Operation{Kind: Change, Past: []shape.Shape{moved(b, 10)}, Present: []shape.Shape{moved(b, 30)}})

	final := m.clone()
	states := []mapTarget{final}
	for h.CanUndo() {
		require.True(t, h.Undo(m))
		states = append(states, m.clone())
	}
	assert.Empty(t, m)
	assert.False(t, h.Undo(m))

	for i := len(states) - 2; i >= 0; i-- {
		require.True(t, h.Redo(m))
		assert.Equal(t, states[i], m)
	}
	assert.False(t, h.CanRedo())
	assert.Equal(t, final, m)
}

func TestUndoChangeRestoresPast(t *testing.T) {
	h := New()
	a := rect(t, 0)
	m := mapTarget{a.ID: a}

	next := moved(a, 50)
	m.Put(next)
	h.Record(Operation{Kind: Change, Past: []shape.Shape{a}, Present: []shape.Shape{next}})

	require.True(t, h.Undo(m))
	assert.Equal(t, 0.0, m[a.ID].Position.X)
	require.True(t, h.Redo(m))
	assert.Equal(t, 50.0, m[a.ID].Position.X)
}

func TestRecordTruncatesRedoTail(t *testing.T) {
	h := New()
	m := mapTarget{}
	a, b := rect(t, 0), rect(t, 10)

	h.Record(Operation{Kind: Add, Present: []shape.Shape{a}})
	h.Record(Operation{Kind: Add, Present: []shape.Shape{b}})
	require.True(t, h.Undo(m))
	assert.True(t, h.CanRedo())

	c := rect(t, 20)
	h.Record(Operation{Kind: Add, Present: []shape.Shape{c}})
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, h.Cursor())

	op, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, []string{c.ID}, op.IDs())
}

func TestRecordCopiesSnapshots(t *testing.T) {
	h := New()
	a := rect(t, 0)
	m := mapTarget{}
	h.Record(Operation{Kind: Add, Present: []shape.Shape{a}})

	a.Position.X = 999
	h.Undo(m)
	h.Redo(m)
	assert.Equal(t, 0.0, m[a.ID].Position.X)

	m[a.ID].Position.X = 500
	h.Undo(m)
	h.Redo(m)
	assert.Equal(t, 0.0, m[a.ID].Position.X)
}

func TestUnsavedFlag(t *testing.T) {
	h := New()
	assert.False(t, h.Unsaved())
	h.Record(Operation{Kind: Add, Present: []shape.Shape{rect(t, 0)}})
	assert.True(t, h.Unsaved())
	h.MarkSaved()
	assert.False(t, h.Unsaved())
	h.Undo(mapTarget{})
	assert.True(t, h.Unsaved())

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.Unsaved())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ADD", Add.String())
	assert.Equal(t, "CHANGE", Change.String())
	assert.Equal(t, "REMOVE", Remove.String())
}
