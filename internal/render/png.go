// Package render draws a floor plan, as a PNG through gg and as a grid of
// terminal cells for the editor view.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"shelfmap/internal/shape"
	"shelfmap/internal/transform"
)

// ErrNothingToExport is returned when no visible shape is left to draw.
var ErrNothingToExport = errors.New("nothing to export")

// Exporter rasterizes shapes into a PNG.
type Exporter struct {
	font  *truetype.Font
	faces map[float64]font.Face

	// Padding is the blank margin around the drawing, in pixels.
	Padding float64
	// Location formats the labels of location-bearing shapes.
	Location shape.LocationConfig
}

// NewExporter loads the monospace face used for labels.
func NewExporter() (*Exporter, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	return &Exporter{font: f, faces: make(map[float64]font.Face), Padding: 20}, nil
}

func (x *Exporter) face(size float64) font.Face {
	if f, ok := x.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(x.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	x.faces[size] = f
	return f
}

// Image draws the visible shapes in order onto a white canvas sized to
// their bounds.
func (x *Exporter) Image(shapes []shape.Shape) (image.Image, error) {
	dc, err := x.context(shapes)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG encodes the drawing to w.
func (x *Exporter) WritePNG(w io.Writer, shapes []shape.Shape) error {
	dc, err := x.context(shapes)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (x *Exporter) context(shapes []shape.Shape) (*gg.Context, error) {
	var visible []shape.Shape
	for _, s := range shapes {
		if s.Visible {
			visible = append(visible, s)
		}
	}
	if len(visible) == 0 {
		return nil, ErrNothingToExport
	}
	b := transform.SelectionBound(visible).Pad(x.Padding)
	w := int(math.Ceil(b.Max.X() - b.Min.X()))
	h := int(math.Ceil(b.Max.Y() - b.Min.Y()))

	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetColor(color.White)
	dc.Clear()
	dc.Translate(-b.Min.X(), -b.Min.Y())
	for _, s := range visible {
		x.draw(dc, s)
	}
	return dc, nil
}

// SavePNG writes the drawing to filename.
func (x *Exporter) SavePNG(filename string, shapes []shape.Shape) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := x.WritePNG(f, shapes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (x *Exporter) draw(dc *gg.Context, s shape.Shape) {
	if s.Position == nil {
		return
	}
	dc.Push()
	defer dc.Pop()
	dc.Translate(s.Position.X, s.Position.Y)
	if s.Rotation != 0 {
		dc.Rotate(gg.Radians(s.Rotation))
	}
	dc.SetLineWidth(s.Style.StrokeWidth)
	if s.Style.Dash {
		dc.SetDash(6, 4)
	}

	switch {
	case s.Size != nil:
		dc.DrawRectangle(0, 0, s.Size.Width, s.Size.Height)
		x.paint(dc, s, true)
	case s.Radius != nil:
		dc.DrawEllipse(0, 0, s.Radius.X, s.Radius.Y)
		x.paint(dc, s, true)
	case len(s.Points) > 0:
		x.drawPoints(dc, s)
	case s.Kind == shape.KindText:
		// handled with the label below
	default:
		e := s.Extent()
		dc.DrawRectangle(e.X, e.Y, e.Width, e.Height)
		x.paint(dc, s, true)
	}
	x.label(dc, s)
}

func (x *Exporter) drawPoints(dc *gg.Context, s shape.Shape) {
	sx, sy := 1.0, 1.0
	if s.Scale != nil {
		sx, sy = s.Scale.X, s.Scale.Y
	}
	for i, p := range s.Points {
		if i == 0 {
			dc.MoveTo(p.X*sx, p.Y*sy)
			continue
		}
		dc.LineTo(p.X*sx, p.Y*sy)
	}
	if s.Closed {
		dc.ClosePath()
	}
	x.paint(dc, s, s.Closed)

	if s.Kind == shape.KindArrow && len(s.Points) >= 2 {
		from, to := s.Points[len(s.Points)-2], s.Points[len(s.Points)-1]
		drawArrowHead(dc, from.X*sx, from.Y*sy, to.X*sx, to.Y*sy, 3*s.Style.StrokeWidth+6)
		setColor(dc, s.Style.Stroke, s.Style.StrokeAlpha)
		dc.Fill()
	}
}

// paint fills the current path when fill is set, then strokes it.
func (x *Exporter) paint(dc *gg.Context, s shape.Shape, fill bool) {
	if fill && s.Style.Fill != "" {
		setColor(dc, s.Style.Fill, s.Style.FillAlpha)
		dc.FillPreserve()
	}
	setColor(dc, s.Style.Stroke, s.Style.StrokeAlpha)
	dc.Stroke()
}

func (x *Exporter) label(dc *gg.Context, s shape.Shape) {
	if s.Text == nil {
		return
	}
	text := s.Text.Content
	if s.Location != nil {
		if num, err := s.Location.Display(x.Location); err == nil && num != "" {
			text = num
		}
	}
	if text == "" {
		return
	}
	dc.SetFontFace(x.face(s.Text.FontSize))
	setColor(dc, s.Style.Stroke, s.Style.StrokeAlpha)
	switch {
	case s.Size != nil:
		dc.DrawStringAnchored(text, s.Size.Width/2, s.Size.Height/2, 0.5, 0.5)
	case s.Radius != nil:
		dc.DrawStringAnchored(text, 0, 0, 0.5, 0.5)
	default:
		dc.DrawStringAnchored(text, 0, 0, 0, 1)
	}
}

func drawArrowHead(dc *gg.Context, fx, fy, tx, ty, size float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	const spread = 0.5
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*dx+size*dy*spread, ty-size*dy-size*dx*spread)
	dc.LineTo(tx-size*dx-size*dy*spread, ty-size*dy+size*dx*spread)
	dc.ClosePath()
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{}
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}
