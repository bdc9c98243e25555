package shape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillsKindDefaults(t *testing.T) {
	table, err := New(KindTable, Shape{Position: &Point{X: 20, Y: 40}})
	require.NoError(t, err)

	assert.NotEmpty(t, table.ID)
	assert.Equal(t, Point{X: 20, Y: 40}, *table.Position)
	assert.True(t, table.Has(HasPosition|HasSize|HasMinSize|HasFontSize|HasLocationNumber))
	assert.False(t, table.Has(HasRadius))
	assert.Equal(t, 12.0, table.Text.FontSize)
	assert.True(t, table.Visible)
	assert.True(t, table.Selectable)

	gondola, err := New(KindGondola, Shape{})
	require.NoError(t, err)
	assert.True(t, gondola.Has(IsFixture))
	assert.Equal(t, Vertical, gondola.Fixture.Orientation)
}

func TestNewAssignsFreshIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := New(KindRect, Shape{ID: "ignored"})
		require.NoError(t, err)
		assert.NotEqual(t, "ignored", s.ID)
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Kind("sofa"), Shape{})
	assert.ErrorIs(t, err, ErrInvalidShapeKind)
}

func TestKindJSONRejectsUnknown(t *testing.T) {
	var s Shape
	err := json.Unmarshal([]byte(`{"id":"a","kind":"sofa"}`), &s)
	assert.ErrorIs(t, err, ErrInvalidShapeKind)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","kind":"gondola"}`), &s))
	assert.Equal(t, KindGondola, s.Kind)
}

func TestEveryKindBuilds(t *testing.T) {
	for _, k := range Kinds() {
		s, err := New(k, Shape{})
		require.NoError(t, err, k)
		assert.True(t, s.Has(HasPosition), k)
		assert.NoError(t, s.Validate(), k)
	}
}

func TestCapabilitiesFollowFields(t *testing.T) {
	var s Shape
	assert.Equal(t, Capability(0), s.Capabilities())
	assert.Equal(t, "none", s.Capabilities().String())

	s.Radius = &Radius{X: 1, Y: 1}
	s.Points = []Point{{}}
	assert.True(t, s.Has(HasRadius|HasPoints))
	assert.False(t, s.Has(HasRadius|HasSize))
	assert.Equal(t, "radius|points", s.Capabilities().String())
}

func TestCloneIsDeep(t *testing.T) {
	s, err := New(KindArea, Shape{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 0}}, Closed: true})
	require.NoError(t, err)
	c := s.Clone()
	c.Points[1].X = 99
	c.Position.X = 50
	assert.Equal(t, 10.0, s.Points[1].X)
	assert.Equal(t, 0.0, s.Position.X)
	assert.Equal(t, s.ID, c.ID)
}

func TestValidateClosedShape(t *testing.T) {
	s, err := New(KindArea, Shape{Points: []Point{{0, 0}, {10, 0}, {10, 10}}, Closed: true})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Validate(), ErrOpenClosed)

	s.Points = nil
	assert.ErrorIs(t, s.Validate(), ErrEmptyPoints)
}

func TestBounds(t *testing.T) {
	rect := Shape{Kind: KindRect, Position: &Point{X: 10, Y: 20}, Size: &Size{Width: 30, Height: 40}}
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 30, Height: 40}, rect.Bounds())

	ellipse := Shape{Kind: KindEllipse, Position: &Point{X: 50, Y: 50}, Radius: &Radius{X: 10, Y: 5}}
	assert.Equal(t, Rect{X: 40, Y: 45, Width: 20, Height: 10}, ellipse.Bounds())

	rect.Rotation = 90
	b := rect.Bounds()
	assert.InDelta(t, -30, b.X, 1e-9)
	assert.InDelta(t, 20, b.Y, 1e-9)
	assert.InDelta(t, 40, b.Width, 1e-9)
	assert.InDelta(t, 30, b.Height, 1e-9)

	register, err := New(KindRegister, Shape{})
	require.NoError(t, err)
	assert.Equal(t, Rect{Width: 60, Height: 40}, register.Bounds())
}
