package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmap/internal/shape"
)

func mustShape(t *testing.T, kind shape.Kind, x, y float64) shape.Shape {
	t.Helper()
	s, err := shape.New(kind, shape.Shape{Position: &shape.Point{X: x, Y: y}})
	require.NoError(t, err)
	return s
}

func TestStoreCopiesInAndOut(t *testing.T) {
	st := NewStore()
	s := mustShape(t, shape.KindRect, 10, 10)
	st.Put(s)

	s.Position.X = 99
	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, got.Position.X)

	got.Position.X = 77
	again, _ := st.Get(s.ID)
	assert.Equal(t, 10.0, again.Position.X)
}

func TestStoreKeepsSlotAcrossRemoval(t *testing.T) {
	st := NewStore()
	a := mustShape(t, shape.KindRect, 0, 0)
	b := mustShape(t, shape.KindRect, 10, 0)
	c := mustShape(t, shape.KindRect, 20, 0)
	st.Put(a)
	st.Put(b)
	st.Put(c)

	require.True(t, st.Delete(a.ID))
	assert.False(t, st.Delete(a.ID))
	st.Put(a)

	var ids []string
	for _, s := range st.List(nil) {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids)
}

func TestStoreListPredicate(t *testing.T) {
	st := NewStore()
	st.Put(mustShape(t, shape.KindRect, 0, 0))
	st.Put(mustShape(t, shape.KindGondola, 0, 0))
	st.Put(mustShape(t, shape.KindGondola, 0, 100))

	fixtures := st.List(func(s shape.Shape) bool { return s.Has(shape.IsFixture) })
	assert.Len(t, fixtures, 2)
	assert.Equal(t, 3, st.Len())
}

func TestStoreEvents(t *testing.T) {
	st := NewStore()
	var got []EventKind
	st.Subscribe(func(ev Event) { got = append(got, ev.Kind) })

	s := mustShape(t, shape.KindRect, 0, 0)
	st.Put(s)
	st.Put(s)
	st.Delete(s.ID)
	st.Replace(nil)
	assert.Equal(t, []EventKind{EventAdded, EventChanged, EventRemoved, EventReset}, got)
}

func TestLayoutRoundTrip(t *testing.T) {
	st := NewStore()
	st.Put(mustShape(t, shape.KindTable, 40, 40))
	area, err := shape.New(shape.KindArea, shape.Shape{
		Points: []shape.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 0}},
		Closed: true,
	})
	require.NoError(t, err)
	st.Put(area)

	data, err := Marshal(st.Snapshot())
	require.NoError(t, err)

	l, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, st.Snapshot(), l)
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte(`{"shapes":[{"id":"x","kind":"sofa","position":{"x":0,"y":0}}]}`))
	assert.ErrorIs(t, err, shape.ErrInvalidShapeKind)
}

func TestUnmarshalRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`{"shapes":[
		{"id":"x","kind":"register","position":{"x":0,"y":0}},
		{"id":"x","kind":"register","position":{"x":5,"y":0}}
	]}`)
	_, err := Unmarshal(data)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestMarshalEmptyLayout(t *testing.T) {
	data, err := Marshal(Layout{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"shapes":[]}`, string(data))
}
