// Package editor is the entry point the UI and persistence layers talk to.
// It owns the live shapes, the undo history and the transform engine, and
// turns each user gesture into exactly one recorded operation.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"shelfmap/internal/history"
	"shelfmap/internal/layout"
	"shelfmap/internal/polyline"
	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
	"shelfmap/internal/transform"
)

var (
	ErrUnknownShape = errors.New("unknown shape")
	ErrShapeExists  = errors.New("shape already exists")
	ErrNotDrawing   = errors.New("no shape is being drawn")
)

// Config is everything the editor consumes from outside.
type Config struct {
	Lattice    snap.Lattice
	Location   shape.LocationConfig
	MaxBatch   int
	StageScale float64
}

// Editor is single-threaded: call it from the goroutine that handles input.
type Editor struct {
	cfg     Config
	store   *layout.Store
	history *history.History
	engine  *transform.Engine
	log     *slog.Logger

	selection []string
	drawing   *polyline.Builder
	hooks     []func(history.Operation)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// OnRecord registers fn to run after every recorded operation. Hooks run
// after the store is updated and must hand any slow work to a goroutine.
func OnRecord(fn func(history.Operation)) Option {
	return func(e *Editor) { e.hooks = append(e.hooks, fn) }
}

// New returns an editor with an empty layout.
func New(cfg Config, opts ...Option) (*Editor, error) {
	if err := cfg.Location.Format.Validate(); err != nil {
		return nil, err
	}
	e := &Editor{
		cfg:     cfg,
		store:   layout.NewStore(),
		history: history.New(),
		engine: transform.New(transform.Config{
			Lattice:    cfg.Lattice,
			MaxBatch:   cfg.MaxBatch,
			StageScale: cfg.StageScale,
		}),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the active configuration.
func (e *Editor) Config() Config { return e.cfg }

// Subscribe forwards store events to l. Renderers use this to stay a pure
// projection of the layout.
func (e *Editor) Subscribe(l layout.Listener) { e.store.Subscribe(l) }

func (e *Editor) record(op history.Operation) history.Operation {
	e.history.Record(op)
	e.log.Debug("operation recorded", "kind", op.Kind.String(), "shapes", len(op.Present), "depth", e.history.Cursor())
	for _, h := range e.hooks {
		h(op)
	}
	return op
}

// Shape returns a copy of the live shape with id.
func (e *Editor) Shape(id string) (shape.Shape, bool) {
	return e.store.Get(id)
}

// Shapes lists live shapes accepted by pred, in drawing order.
func (e *Editor) Shapes(pred func(shape.Shape) bool) []shape.Shape {
	return e.store.List(pred)
}

func (e *Editor) resolve(ids []string) []shape.Shape {
	out := make([]shape.Shape, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := e.store.Get(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// Create builds a shape of kind, snaps it onto the lattice and adds it. The
// returned shape is the stored copy, location number included.
func (e *Editor) Create(kind shape.Kind, initial shape.Shape) (shape.Shape, error) {
	s, err := shape.New(kind, initial)
	if err != nil {
		return shape.Shape{}, err
	}
	if s.Position != nil {
		s.Position.X, s.Position.Y = e.cfg.Lattice.Point(s.Position.X, s.Position.Y, snap.Nearest)
	}
	op, err := e.Add(s)
	if err != nil {
		return shape.Shape{}, err
	}
	return op.Present[0].Clone(), nil
}

// Add inserts fully built shapes as one ADD operation.
func (e *Editor) Add(shapes ...shape.Shape) (history.Operation, error) {
	if len(shapes) == 0 {
		return history.Operation{}, nil
	}
	seen := make(map[string]struct{}, len(shapes))
	added := make([]shape.Shape, 0, len(shapes))
	for _, s := range shapes {
		s = s.Clone()
		if s.Location != nil {
			s.Location.Recompute(e.cfg.Location)
		}
		if err := s.Validate(); err != nil {
			return history.Operation{}, err
		}
		if _, dup := seen[s.ID]; dup || e.store.Has(s.ID) {
			return history.Operation{}, fmt.Errorf("%w: %s", ErrShapeExists, s.ID)
		}
		seen[s.ID] = struct{}{}
		added = append(added, s)
	}
	for _, s := range added {
		e.store.Put(s)
	}
	return e.record(history.Operation{Kind: history.Add, Present: added}), nil
}

// Paste adds copies of shapes with fresh ids, offset by (dx, dy) and
// rebased against what is already on the stage.
func (e *Editor) Paste(shapes []shape.Shape, dx, dy float64) (history.Operation, error) {
	fresh := make([]shape.Shape, 0, len(shapes))
	for _, s := range shapes {
		c, err := shape.New(s.Kind, s)
		if err != nil {
			return history.Operation{}, err
		}
		c.Selectable, c.Visible, c.Locked = s.Selectable, s.Visible, s.Locked
		if c.Position != nil {
			c.Position.X += dx
			c.Position.Y += dy
		}
		fresh = append(fresh, c)
	}
	placed := transform.Rebase(fresh, e.store.List(nil), e.cfg.Lattice)
	op, err := e.Add(placed...)
	if err == nil {
		e.Select(op.IDs()...)
	}
	return op, err
}

// Remove deletes the live shapes among ids as one REMOVE operation.
func (e *Editor) Remove(ids ...string) (history.Operation, bool) {
	gone := e.resolve(ids)
	if len(gone) == 0 {
		return history.Operation{}, false
	}
	for _, s := range gone {
		e.store.Delete(s.ID)
	}
	e.dropFromSelection(gone)
	return e.record(history.Operation{Kind: history.Remove, Present: gone}), true
}

// ApplyGesture runs a drag, resize or rotate on the shapes named by ids and
// records the whole gesture as one CHANGE operation. It reports false when
// the gesture changed nothing.
func (e *Editor) ApplyGesture(ids []string, g transform.Gesture) (history.Operation, bool) {
	sel := e.resolve(ids)
	res := e.engine.Apply(sel, e.store.List(nil), g)
	if res.Degraded {
		e.log.Debug("selection over batch limit, resize skipped", "selected", len(sel), "limit", e.cfg.MaxBatch)
	}
	if !res.Changed() {
		return history.Operation{}, false
	}
	present := res.Present()
	for _, s := range present {
		e.store.Put(s)
	}
	return e.record(history.Operation{Kind: history.Change, Past: res.Past(), Present: present}), true
}

// Preview computes what a gesture would produce without touching the
// store. Interrupted gestures simply never commit.
func (e *Editor) Preview(ids []string, g transform.Gesture) []shape.Shape {
	return e.engine.Apply(e.resolve(ids), e.store.List(nil), g).Present()
}

// CanResize reports whether the selection gets resize and rotate handles.
func (e *Editor) CanResize(ids []string) bool {
	return e.engine.CanResize(len(e.resolve(ids)))
}

// EditProperties applies edit to a copy of every shape in ids and records
// the result as one CHANGE. Ids and kinds cannot be edited; location
// numbers are recomputed.
func (e *Editor) EditProperties(ids []string, edit func(*shape.Shape)) (history.Operation, bool, error) {
	sel := e.resolve(ids)
	past := make([]shape.Shape, 0, len(sel))
	present := make([]shape.Shape, 0, len(sel))
	changed := false
	for _, s := range sel {
		next := s.Clone()
		edit(&next)
		next.ID, next.Kind = s.ID, s.Kind
		if next.Location != nil {
			next.Location.Recompute(e.cfg.Location)
		}
		if err := next.Validate(); err != nil {
			return history.Operation{}, false, err
		}
		if !changed && !reflect.DeepEqual(s, next) {
			changed = true
		}
		past = append(past, s)
		present = append(present, next)
	}
	if !changed {
		return history.Operation{}, false, nil
	}
	for _, s := range present {
		e.store.Put(s)
	}
	return e.record(history.Operation{Kind: history.Change, Past: past, Present: present}), true, nil
}

// SetLocationConfig swaps the location configuration and recomputes every
// location number, recording one CHANGE if any moved.
func (e *Editor) SetLocationConfig(cfg shape.LocationConfig) (history.Operation, bool, error) {
	if err := cfg.Format.Validate(); err != nil {
		return history.Operation{}, false, err
	}
	e.cfg.Location = cfg
	var ids []string
	for _, s := range e.store.List(func(s shape.Shape) bool { return s.Has(shape.HasLocationNumber) }) {
		ids = append(ids, s.ID)
	}
	return e.EditProperties(ids, func(*shape.Shape) {})
}

// DisplayLocation formats the location number of id for display.
func (e *Editor) DisplayLocation(id string) (string, error) {
	s, ok := e.store.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownShape, id)
	}
	if s.Location == nil {
		return "", nil
	}
	return s.Location.Display(e.cfg.Location)
}

// Undo reverts the last operation.
func (e *Editor) Undo() bool {
	ok := e.history.Undo(e.store)
	if ok {
		e.pruneSelection()
	}
	return ok
}

// Redo reapplies the last undone operation.
func (e *Editor) Redo() bool {
	ok := e.history.Redo(e.store)
	if ok {
		e.pruneSelection()
	}
	return ok
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Unsaved reports whether the layout changed since MarkSaved.
func (e *Editor) Unsaved() bool { return e.history.Unsaved() }

// MarkSaved records that the layout was persisted.
func (e *Editor) MarkSaved() { e.history.MarkSaved() }

// SerializeLayout snapshots every live shape.
func (e *Editor) SerializeLayout() layout.Layout {
	return e.store.Snapshot()
}

// MarshalLayout is SerializeLayout encoded as JSON.
func (e *Editor) MarshalLayout() ([]byte, error) {
	return layout.Marshal(e.SerializeLayout())
}

// DeserializeLayout replaces the layout with data. History and selection
// start over. On error the current layout is left as it was.
func (e *Editor) DeserializeLayout(data []byte) error {
	l, err := layout.Unmarshal(data)
	if err != nil {
		return err
	}
	e.LoadLayout(l)
	return nil
}

// LoadLayout replaces the layout with an already validated one.
func (e *Editor) LoadLayout(l layout.Layout) {
	e.store.Replace(l.Shapes)
	e.history.Clear()
	e.selection = nil
	e.drawing = nil
	e.log.Info("layout loaded", "shapes", len(l.Shapes))
}
