package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

var grid10 = snap.Lattice{Width: 10, Height: 10}

func newShape(t *testing.T, kind shape.Kind, init shape.Shape) shape.Shape {
	t.Helper()
	s, err := shape.New(kind, init)
	require.NoError(t, err)
	return s
}

func rectAt(t *testing.T, x, y, w, h float64) shape.Shape {
	t.Helper()
	return newShape(t, shape.KindRect, shape.Shape{
		Position: &shape.Point{X: x, Y: y},
		Size:     &shape.Size{Width: w, Height: h},
	})
}

func TestDragSnapsEveryShape(t *testing.T) {
	e := New(Config{Lattice: grid10})
	var sel []shape.Shape
	for i := 0; i < 5; i++ {
		sel = append(sel, rectAt(t, float64(i*20), 0, 10, 10))
	}

	res := e.Apply(sel, sel, Drag{DX: 13, DY: 26})
	require.Len(t, res.Changes, 5)
	assert.True(t, res.Changed())
	for i, c := range res.Changes {
		assert.Equal(t, sel[i].ID, c.Present.ID)
		assert.Equal(t, float64(i*20)+10, c.Present.Position.X)
		assert.Equal(t, 30.0, c.Present.Position.Y)
		assert.Equal(t, *sel[i].Position, *c.Past.Position)
	}
}

func TestDragKeepsSubPixelWhenRotated(t *testing.T) {
	e := New(Config{Lattice: grid10})
	a := rectAt(t, 0, 0, 10, 10)
	b := rectAt(t, 50, 0, 10, 10)
	b.Rotation = 15

	res := e.Apply([]shape.Shape{a, b}, nil, Drag{DX: 3.5, DY: 1.25, RotationInclusive: true})
	assert.Equal(t, 3.5, res.Changes[0].Present.Position.X)
	assert.Equal(t, 53.5, res.Changes[1].Present.Position.X)

	res = e.Apply([]shape.Shape{a, b}, nil, Drag{DX: 3.5, DY: 1.25})
	assert.Equal(t, 0.0, res.Changes[0].Present.Position.X)
}

func TestApplySkipsLockedShapes(t *testing.T) {
	e := New(Config{Lattice: grid10})
	a := rectAt(t, 0, 0, 10, 10)
	a.Locked = true
	res := e.Apply([]shape.Shape{a}, nil, Drag{DX: 20})
	assert.Empty(t, res.Changes)
}

func TestResizeSingleSnapsNearestAndClamps(t *testing.T) {
	e := New(Config{Lattice: grid10})
	table := newShape(t, shape.KindTable, shape.Shape{
		Position: &shape.Point{X: 0, Y: 0},
		Size:     &shape.Size{Width: 80, Height: 40},
	})

	res := e.Apply([]shape.Shape{table}, nil, Resize{ScaleX: 1.234, ScaleY: 0.1, Origin: shape.Point{}})
	require.Len(t, res.Changes, 1)
	got := res.Changes[0].Present
	// 80 * 1.23 = 98.4 -> 100; 40 * 0.1 = 4 -> 0 -> min height 20
	assert.Equal(t, 100.0, got.Size.Width)
	assert.Equal(t, 20.0, got.Size.Height)
}

func TestResizeMultiSnapsCeil(t *testing.T) {
	e := New(Config{Lattice: grid10})
	a := rectAt(t, 0, 0, 50, 50)
	b := rectAt(t, 50, 0, 50, 50)

	res := e.Apply([]shape.Shape{a, b}, nil, Resize{ScaleX: 1.1, ScaleY: 1, Origin: shape.Point{}})
	require.Len(t, res.Changes, 2)
	// 50 * 1.1 = 55 -> ceil 60
	assert.Equal(t, 60.0, res.Changes[0].Present.Size.Width)
	assert.Equal(t, 60.0, res.Changes[1].Present.Size.Width)
	assert.Equal(t, 60.0, res.Changes[1].Present.Position.X)
}

func TestResizeIdentityIsNoop(t *testing.T) {
	e := New(Config{Lattice: grid10})
	a := rectAt(t, 0, 0, 50, 50)
	assert.Empty(t, e.Apply([]shape.Shape{a}, nil, Resize{ScaleX: 1.001, ScaleY: 0.999}).Changes)
	assert.Empty(t, e.Apply([]shape.Shape{a}, nil, Resize{ScaleX: 0, ScaleY: 1.5}).Changes)
}

func TestResizeRadius(t *testing.T) {
	e := New(Config{Lattice: grid10})
	round := newShape(t, shape.KindRoundTable, shape.Shape{
		Position: &shape.Point{X: 100, Y: 100},
		Radius:   &shape.Radius{X: 30, Y: 30},
	})
	res := e.Apply([]shape.Shape{round}, nil, Resize{ScaleX: 1.2, ScaleY: 0.1, Origin: shape.Point{X: 100, Y: 100}})
	got := res.Changes[0].Present
	// 60 * 1.2 / 2 = 36 -> 40; max(10, 6) / 2 = 5 -> 10
	assert.Equal(t, 40.0, got.Radius.X)
	assert.Equal(t, 10.0, got.Radius.Y)
}

func TestResizeLineMovesCrossScaleIntoStroke(t *testing.T) {
	e := New(Config{Lattice: grid10})
	line := newShape(t, shape.KindLine, shape.Shape{
		Position: &shape.Point{},
		Points:   []shape.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		Style:    shape.Style{StrokeWidth: 2},
	})
	res := e.Apply([]shape.Shape{line}, nil, Resize{ScaleX: 1.5, ScaleY: 2, Origin: shape.Point{}})
	got := res.Changes[0].Present
	assert.Equal(t, []shape.Point{{X: 0, Y: 0}, {X: 150, Y: 0}}, got.Points)
	assert.Equal(t, 4.0, got.Style.StrokeWidth)
	assert.Nil(t, got.Size)
}

func TestResizeTextFont(t *testing.T) {
	e := New(Config{})
	text := newShape(t, shape.KindText, shape.Shape{Text: &shape.Text{Content: "Aisle 4", FontSize: 10}})

	grow := e.Apply([]shape.Shape{text}, nil, Resize{ScaleX: 1.5, ScaleY: 2})
	assert.Equal(t, 20.0, grow.Changes[0].Present.Text.FontSize)

	shrink := e.Apply([]shape.Shape{text}, nil, Resize{ScaleX: 0.5, ScaleY: 0.8})
	assert.Equal(t, 5.0, shrink.Changes[0].Present.Text.FontSize)

	// tables keep their label size
	table := newShape(t, shape.KindTable, shape.Shape{})
	res := e.Apply([]shape.Shape{table}, nil, Resize{ScaleX: 2, ScaleY: 2})
	assert.Equal(t, 12.0, res.Changes[0].Present.Text.FontSize)
}

func TestResizePenKeepsScaleFields(t *testing.T) {
	e := New(Config{Lattice: grid10})
	pen := newShape(t, shape.KindPen, shape.Shape{
		Position: &shape.Point{},
		Points:   []shape.Point{{X: 0, Y: 0}, {X: 3, Y: 4}},
	})
	res := e.Apply([]shape.Shape{pen}, nil, Resize{ScaleX: 2, ScaleY: 3})
	got := res.Changes[0].Present
	assert.Equal(t, pen.Points, got.Points)
	assert.Equal(t, shape.Scale{X: 2, Y: 3}, *got.Scale)
}

func TestResizeAreaScalesPoints(t *testing.T) {
	e := New(Config{Lattice: grid10})
	area := newShape(t, shape.KindArea, shape.Shape{
		Position: &shape.Point{},
		Points:   []shape.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 0}},
		Closed:   true,
	})
	res := e.Apply([]shape.Shape{area}, nil, Resize{ScaleX: 2, ScaleY: 1.5})
	got := res.Changes[0].Present
	assert.Equal(t, []shape.Point{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 60}, {X: 0, Y: 0}}, got.Points)
	assert.NoError(t, got.Validate())
}

func TestRotateSingleTruncatesAndCeils(t *testing.T) {
	e := New(Config{Lattice: grid10})
	r := rectAt(t, 100, 100, 40, 20)

	res := e.Apply([]shape.Shape{r}, nil, Rotate{Delta: 30.7})
	require.Len(t, res.Changes, 1)
	got := res.Changes[0].Present
	assert.Equal(t, 30.0, got.Rotation)
	assert.Equal(t, shape.Point{X: 110, Y: 100}, *got.Position)

	assert.Empty(t, e.Apply([]shape.Shape{r}, nil, Rotate{Delta: 0.4}).Changes)
}

func TestRotateMultiSubDegreeSettles(t *testing.T) {
	e := New(Config{Lattice: grid10})
	a := rectAt(t, 3, 3, 10, 10)
	b := rectAt(t, 21, 7, 10, 10)

	res := e.Apply([]shape.Shape{a, b}, nil, Rotate{Delta: 0.5})
	require.Len(t, res.Changes, 2)
	assert.Equal(t, 0.0, res.Changes[0].Present.Rotation)
	assert.Equal(t, shape.Point{X: 0, Y: 0}, *res.Changes[0].Present.Position)
	assert.Equal(t, shape.Point{X: 20, Y: 10}, *res.Changes[1].Present.Position)
}

func TestRotateMultiAroundSharedCenter(t *testing.T) {
	e := New(Config{Lattice: grid10, StageScale: 2})
	a := rectAt(t, 0, 0, 10, 10)
	b := rectAt(t, 30, 0, 10, 10)

	res := e.Apply([]shape.Shape{a, b}, nil, Rotate{Delta: 90})
	require.Len(t, res.Changes, 2)
	pa, pb := res.Changes[0].Present, res.Changes[1].Present
	assert.InDelta(t, 25, pa.Position.X, 1e-9)
	assert.InDelta(t, -15, pa.Position.Y, 1e-9)
	assert.InDelta(t, 25, pb.Position.X, 1e-9)
	assert.InDelta(t, 15, pb.Position.Y, 1e-9)
	assert.Equal(t, 90.0, pa.Rotation)
	assert.Equal(t, 90.0, pb.Rotation)
}

func TestBatchLimitDegradesToMoveOnly(t *testing.T) {
	e := New(Config{Lattice: grid10, MaxBatch: 2})
	sel := []shape.Shape{rectAt(t, 0, 0, 10, 10), rectAt(t, 20, 0, 10, 10), rectAt(t, 40, 0, 10, 10)}
	assert.False(t, e.CanResize(len(sel)))
	assert.True(t, e.CanResize(2))

	res := e.Apply(sel, sel, Resize{ScaleX: 2, ScaleY: 1})
	assert.True(t, res.Degraded)
	require.Len(t, res.Changes, 3)
	for i, c := range res.Changes {
		assert.Equal(t, 10.0, c.Present.Size.Width)
		assert.Equal(t, float64(i*40), c.Present.Position.X)
	}

	rot := e.Apply(sel, sel, Rotate{Delta: 45})
	assert.True(t, rot.Degraded)
	assert.Empty(t, rot.Changes)
}

func TestSelectionRect(t *testing.T) {
	sel := []shape.Shape{rectAt(t, 10, 10, 10, 10), rectAt(t, 40, 30, 20, 5)}
	assert.Equal(t, shape.Rect{X: 10, Y: 10, Width: 50, Height: 25}, SelectionRect(sel))
}
