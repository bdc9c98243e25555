// Package layout keeps the live shapes of a floor plan, keyed by id, and
// tells subscribers when they change.
package layout

import (
	"sort"

	"shelfmap/internal/shape"
)

// EventKind says what happened to the shapes named in an Event.
type EventKind int

const (
	EventAdded EventKind = iota
	EventChanged
	EventRemoved
	EventReset
)

// Event is delivered to listeners after the store has been mutated.
type Event struct {
	Kind EventKind
	IDs  []string
}

// Listener receives store events.
type Listener func(Event)

// Store is the shape arena. Shapes are held by value and copied on the way
// in and out, so nothing outside the store can mutate a live shape.
type Store struct {
	shapes map[string]shape.Shape
	// seq gives each id a stable slot that survives removal, so a shape
	// restored by undo comes back in its original drawing order.
	seq       map[string]uint64
	next      uint64
	listeners []Listener
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		shapes: make(map[string]shape.Shape),
		seq:    make(map[string]uint64),
	}
}

// Subscribe registers l for every subsequent event.
func (st *Store) Subscribe(l Listener) {
	st.listeners = append(st.listeners, l)
}

func (st *Store) emit(kind EventKind, ids ...string) {
	if len(st.listeners) == 0 {
		return
	}
	ev := Event{Kind: kind, IDs: ids}
	for _, l := range st.listeners {
		l(ev)
	}
}

// Get returns a copy of the shape with id.
func (st *Store) Get(id string) (shape.Shape, bool) {
	s, ok := st.shapes[id]
	if !ok {
		return shape.Shape{}, false
	}
	return s.Clone(), true
}

// Has reports whether id is live.
func (st *Store) Has(id string) bool {
	_, ok := st.shapes[id]
	return ok
}

// Len is the number of live shapes.
func (st *Store) Len() int { return len(st.shapes) }

// List returns copies of the live shapes accepted by pred, in drawing
// order. A nil pred accepts everything.
func (st *Store) List(pred func(shape.Shape) bool) []shape.Shape {
	ids := st.orderedIDs()
	out := make([]shape.Shape, 0, len(ids))
	for _, id := range ids {
		s := st.shapes[id]
		if pred != nil && !pred(s) {
			continue
		}
		out = append(out, s.Clone())
	}
	return out
}

func (st *Store) orderedIDs() []string {
	ids := make([]string, 0, len(st.shapes))
	for id := range st.shapes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return st.seq[ids[i]] < st.seq[ids[j]] })
	return ids
}

// Put inserts or replaces s.
func (st *Store) Put(s shape.Shape) {
	_, existed := st.shapes[s.ID]
	st.put(s)
	if existed {
		st.emit(EventChanged, s.ID)
	} else {
		st.emit(EventAdded, s.ID)
	}
}

func (st *Store) put(s shape.Shape) {
	if _, ok := st.seq[s.ID]; !ok {
		st.seq[s.ID] = st.next
		st.next++
	}
	st.shapes[s.ID] = s.Clone()
}

// Delete removes id. It reports false if id was not live.
func (st *Store) Delete(id string) bool {
	if _, ok := st.shapes[id]; !ok {
		return false
	}
	delete(st.shapes, id)
	st.emit(EventRemoved, id)
	return true
}

// Replace swaps the whole content of the store for shapes.
func (st *Store) Replace(shapes []shape.Shape) {
	st.shapes = make(map[string]shape.Shape, len(shapes))
	st.seq = make(map[string]uint64, len(shapes))
	st.next = 0
	for _, s := range shapes {
		st.put(s)
	}
	st.emit(EventReset)
}
