package layout

import (
	"encoding/json"
	"errors"
	"fmt"

	"shelfmap/internal/shape"
)

// ErrDuplicateID is returned when a serialized layout names the same shape
// twice.
var ErrDuplicateID = errors.New("duplicate shape id")

// Layout is the persisted form of a floor plan.
type Layout struct {
	Shapes []shape.Shape `json:"shapes"`
}

// Snapshot captures every live shape in drawing order.
func (st *Store) Snapshot() Layout {
	return Layout{Shapes: st.List(nil)}
}

// Marshal encodes l as JSON.
func Marshal(l Layout) ([]byte, error) {
	if l.Shapes == nil {
		l.Shapes = []shape.Shape{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal decodes and validates a layout. Unknown kinds fail with
// shape.ErrInvalidShapeKind; nothing is dropped silently.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks every shape and that ids are unique.
func (l Layout) Validate() error {
	seen := make(map[string]struct{}, len(l.Shapes))
	for i, s := range l.Shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
