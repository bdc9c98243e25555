// Package shape holds the plain-data model for everything drawn on a floor
// plan. Transform and editing code asks a Shape what it can do through its
// capability set instead of switching on Kind.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Point is a stage-local coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Radius holds the two radii of an ellipse centered on the shape position.
type Radius struct {
	X float64 `json:"radiusX"`
	Y float64 `json:"radiusY"`
}

// Scale is kept as its own field by shapes whose drawing is not re-measured
// on resize (pen strokes, icons).
type Scale struct {
	X float64 `json:"scaleX"`
	Y float64 `json:"scaleY"`
}

// Text is the label carried by text-bearing kinds.
type Text struct {
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize"`
}

// Orientation is the placement axis of a fixture.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Fixture marks a shelving unit that must stay contiguous with its
// neighbors.
type Fixture struct {
	Orientation Orientation `json:"orientation"`
}

// Style is the visual treatment of a shape, independent of geometry.
type Style struct {
	Stroke      string  `json:"stroke,omitempty"`
	StrokeAlpha float64 `json:"strokeAlpha,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	FillAlpha   float64 `json:"fillAlpha,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dash        bool    `json:"dash,omitempty"`
}

// Shape is one editable entity. Optional geometry lives behind pointers or
// nil slices so capabilities can be derived from what is present.
type Shape struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Position  *Point    `json:"position,omitempty"`
	Size      *Size     `json:"size,omitempty"`
	MinSize   *Size     `json:"minSize,omitempty"`
	Radius    *Radius   `json:"radius,omitempty"`
	MinRadius float64   `json:"minRadius,omitempty"`
	Points    []Point   `json:"points,omitempty"`
	Closed    bool      `json:"closed,omitempty"`
	Scale     *Scale    `json:"scale,omitempty"`
	Rotation  float64   `json:"rotation"`
	Text      *Text     `json:"text,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Fixture   *Fixture  `json:"fixture,omitempty"`
	Style     Style     `json:"style"`

	Selectable bool `json:"selectable"`
	Visible    bool `json:"visible"`
	Locked     bool `json:"locked,omitempty"`
}

var (
	ErrMissingID   = errors.New("shape has no id")
	ErrEmptyPoints = errors.New("polyline shape has no points")
	ErrOpenClosed  = errors.New("closed shape does not end on its first point")
)

// New builds a shape of the given kind from initial, filling the defaults
// the kind implies and assigning a fresh id. Any id on initial is ignored.
func New(kind Kind, initial Shape) (Shape, error) {
	fill, ok := kinds[kind]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %q", ErrInvalidShapeKind, kind)
	}
	s := initial.Clone()
	s.Kind = kind
	s.ID = uuid.NewString()
	fill(&s)
	if s.Style.Stroke == "" {
		s.Style.Stroke = "#000000"
	}
	if s.Style.StrokeAlpha == 0 {
		s.Style.StrokeAlpha = 1
	}
	if s.Style.Fill == "" {
		s.Style.Fill = "#ffffff"
	}
	if s.Style.FillAlpha == 0 {
		s.Style.FillAlpha = 1
	}
	if s.Style.StrokeWidth == 0 {
		s.Style.StrokeWidth = 1
	}
	s.Selectable = true
	s.Visible = true
	return s, nil
}

// Clone returns a deep copy sharing no memory with s.
func (s Shape) Clone() Shape {
	c := s
	if s.Position != nil {
		p := *s.Position
		c.Position = &p
	}
	if s.Size != nil {
		v := *s.Size
		c.Size = &v
	}
	if s.MinSize != nil {
		v := *s.MinSize
		c.MinSize = &v
	}
	if s.Radius != nil {
		v := *s.Radius
		c.Radius = &v
	}
	if s.Points != nil {
		c.Points = append([]Point(nil), s.Points...)
	}
	if s.Scale != nil {
		v := *s.Scale
		c.Scale = &v
	}
	if s.Text != nil {
		v := *s.Text
		c.Text = &v
	}
	if s.Location != nil {
		v := *s.Location
		c.Location = &v
	}
	if s.Fixture != nil {
		v := *s.Fixture
		c.Fixture = &v
	}
	return c
}

// Validate checks the structural invariants of a single shape.
func (s Shape) Validate() error {
	if s.ID == "" {
		return ErrMissingID
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidShapeKind, s.Kind)
	}
	if s.Kind.Closable() || s.Kind == KindPen || s.Kind == KindLine || s.Kind == KindArrow {
		if len(s.Points) == 0 {
			return fmt.Errorf("shape %s: %w", s.ID, ErrEmptyPoints)
		}
	}
	if s.Closed && len(s.Points) > 0 && s.Points[0] != s.Points[len(s.Points)-1] {
		return fmt.Errorf("shape %s: %w", s.ID, ErrOpenClosed)
	}
	return nil
}

// XY returns the position, or the origin for shapes without one.
func (s Shape) XY() (float64, float64) {
	if s.Position == nil {
		return 0, 0
	}
	return s.Position.X, s.Position.Y
}

// Rect is an axis-aligned box in stage coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Right is the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom is the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Bounds returns the axis-aligned box enclosing the drawn shape, rotation
// included.
func (s Shape) Bounds() Rect {
	x0, y0, x1, y1 := s.localExtent()
	px, py := s.XY()
	if s.Rotation == 0 {
		return Rect{X: px + x0, Y: py + y0, Width: x1 - x0, Height: y1 - y0}
	}
	rad := s.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4]Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}} {
		rx := px + c.X*cos - c.Y*sin
		ry := py + c.X*sin + c.Y*cos
		minX, maxX = math.Min(minX, rx), math.Max(maxX, rx)
		minY, maxY = math.Min(minY, ry), math.Max(maxY, ry)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Extent is the unrotated drawing box relative to Position.
func (s Shape) Extent() Rect {
	x0, y0, x1, y1 := s.localExtent()
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (s Shape) localExtent() (x0, y0, x1, y1 float64) {
	sx, sy := 1.0, 1.0
	if s.Scale != nil {
		sx, sy = s.Scale.X, s.Scale.Y
	}
	switch {
	case s.Size != nil:
		return 0, 0, s.Size.Width, s.Size.Height
	case s.Radius != nil:
		return -s.Radius.X, -s.Radius.Y, s.Radius.X, s.Radius.Y
	case len(s.Points) > 0:
		x0, y0 = math.Inf(1), math.Inf(1)
		x1, y1 = math.Inf(-1), math.Inf(-1)
		for _, p := range s.Points {
			x0, x1 = math.Min(x0, p.X*sx), math.Max(x1, p.X*sx)
			y0, y1 = math.Min(y0, p.Y*sy), math.Max(y1, p.Y*sy)
		}
		return x0, y0, x1, y1
	case s.Text != nil:
		// rough monospace estimate, good enough for hit boxes
		return 0, 0, float64(len(s.Text.Content)) * s.Text.FontSize * 0.6, s.Text.FontSize
	}
	if sz, ok := implicitSizes[s.Kind]; ok {
		return 0, 0, sz.Width * sx, sz.Height * sy
	}
	return 0, 0, 0, 0
}
