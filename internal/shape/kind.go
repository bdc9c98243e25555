package shape

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidShapeKind is returned when a shape is built or decoded with a
// kind outside the closed set below.
var ErrInvalidShapeKind = errors.New("invalid shape kind")

// Kind names a drawable entity.
type Kind string

const (
	KindRect       Kind = "rect"
	KindEllipse    Kind = "ellipse"
	KindLine       Kind = "line"
	KindArrow      Kind = "arrow"
	KindPolygon    Kind = "polygon"
	KindArea       Kind = "area"
	KindText       Kind = "text"
	KindTable      Kind = "table"
	KindRoundTable Kind = "round-table"
	KindWall       Kind = "wall"
	KindGondola    Kind = "gondola"
	KindMeshEnd    Kind = "mesh-end"
	KindSpecial    Kind = "special"
	KindPen        Kind = "pen"
	KindRegister   Kind = "register"
)

// template fills the fields a freshly created shape of a kind must carry.
type template func(s *Shape)

var kinds = map[Kind]template{
	KindRect: func(s *Shape) {
		defaultPosition(s)
		defaultSize(s, 100, 60)
	},
	KindEllipse: func(s *Shape) {
		defaultPosition(s)
		defaultRadius(s, 50, 50, 10)
	},
	KindLine: func(s *Shape) {
		defaultPosition(s)
		defaultPoints(s, Point{}, Point{X: 100})
		defaultStrokeWidth(s, 2)
	},
	KindArrow: func(s *Shape) {
		defaultPosition(s)
		defaultPoints(s, Point{}, Point{X: 100})
		defaultStrokeWidth(s, 2)
	},
	KindPolygon: func(s *Shape) {
		defaultPosition(s)
		defaultPoints(s, Point{})
	},
	KindArea: func(s *Shape) {
		defaultPosition(s)
		defaultPoints(s, Point{})
		if s.Style.FillAlpha == 0 {
			s.Style.FillAlpha = 0.3
		}
	},
	KindText: func(s *Shape) {
		defaultPosition(s)
		defaultText(s, 16)
	},
	KindTable: func(s *Shape) {
		defaultPosition(s)
		defaultSize(s, 80, 40)
		defaultMinSize(s, 20, 20)
		defaultText(s, 12)
		defaultLocation(s)
	},
	KindRoundTable: func(s *Shape) {
		defaultPosition(s)
		defaultRadius(s, 30, 30, 10)
		defaultText(s, 12)
		defaultLocation(s)
	},
	KindWall: func(s *Shape) {
		defaultPosition(s)
		defaultSize(s, 200, 10)
		defaultMinSize(s, 10, 10)
	},
	KindGondola: func(s *Shape) {
		defaultPosition(s)
		defaultSize(s, 90, 40)
		defaultMinSize(s, 30, 10)
		defaultText(s, 12)
		defaultLocation(s)
		defaultFixture(s, Vertical)
	},
	KindMeshEnd: func(s *Shape) {
		defaultPosition(s)
		defaultSize(s, 40, 10)
		defaultMinSize(s, 10, 10)
		defaultFixture(s, Horizontal)
	},
	KindSpecial: func(s *Shape) {
		defaultPosition(s)
		defaultScale(s)
	},
	KindPen: func(s *Shape) {
		defaultPosition(s)
		defaultPoints(s, Point{})
		defaultScale(s)
		defaultStrokeWidth(s, 3)
	},
	KindRegister: func(s *Shape) {
		defaultPosition(s)
	},
}

// implicitSizes holds the drawn size of kinds that carry no size fields.
var implicitSizes = map[Kind]Size{
	KindSpecial:  {Width: 40, Height: 40},
	KindRegister: {Width: 60, Height: 40},
}

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindRect, KindEllipse, KindLine, KindArrow, KindPolygon, KindArea,
		KindText, KindTable, KindRoundTable, KindWall, KindGondola,
		KindMeshEnd, KindSpecial, KindPen, KindRegister,
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// ParseKind validates s as a kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShapeKind, s)
	}
	return k, nil
}

// UnmarshalJSON refuses unknown kinds instead of passing them through.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Closable reports whether a polyline of this kind ends by closing on its
// first anchor rather than on pointer-up.
func (k Kind) Closable() bool {
	return k == KindArea || k == KindPolygon
}

func defaultPosition(s *Shape) {
	if s.Position == nil {
		s.Position = &Point{}
	}
}

func defaultSize(s *Shape, w, h float64) {
	if s.Size == nil {
		s.Size = &Size{Width: w, Height: h}
	}
}

func defaultMinSize(s *Shape, w, h float64) {
	if s.MinSize == nil {
		s.MinSize = &Size{Width: w, Height: h}
	}
}

func defaultRadius(s *Shape, rx, ry, minRadius float64) {
	if s.Radius == nil {
		s.Radius = &Radius{X: rx, Y: ry}
	}
	if s.MinRadius == 0 {
		s.MinRadius = minRadius
	}
}

func defaultPoints(s *Shape, pts ...Point) {
	if len(s.Points) == 0 {
		s.Points = append([]Point(nil), pts...)
	}
}

func defaultScale(s *Shape) {
	if s.Scale == nil {
		s.Scale = &Scale{X: 1, Y: 1}
	}
}

func defaultStrokeWidth(s *Shape, w float64) {
	if s.Style.StrokeWidth == 0 {
		s.Style.StrokeWidth = w
	}
}

func defaultText(s *Shape, fontSize float64) {
	if s.Text == nil {
		s.Text = &Text{}
	}
	if s.Text.FontSize == 0 {
		s.Text.FontSize = fontSize
	}
}

func defaultLocation(s *Shape) {
	if s.Location == nil {
		s.Location = &Location{}
	}
}

func defaultFixture(s *Shape, o Orientation) {
	if s.Fixture == nil {
		s.Fixture = &Fixture{Orientation: o}
	}
}
