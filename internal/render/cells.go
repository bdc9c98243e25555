package render

import (
	"math"

	"shelfmap/internal/shape"
)

// View maps stage coordinates onto a terminal grid. Each cell covers
// CellWidth by CellHeight stage pixels; Origin is the stage point shown in
// the top-left cell.
type View struct {
	Cols, Rows            int
	CellWidth, CellHeight float64
	Origin                shape.Point
}

// Cell is one terminal character.
type Cell struct {
	Ch       rune
	Selected bool
}

// Grid is a rows-by-cols block of cells.
type Grid [][]Cell

// Lines flattens the grid without styling.
func (g Grid) Lines() []string {
	out := make([]string, len(g))
	for y, row := range g {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.Ch
		}
		out[y] = string(rs)
	}
	return out
}

// Cells rasterizes shapes in drawing order. Later shapes overwrite earlier
// ones. Shapes whose id is in selected draw with '#' borders.
func Cells(shapes []shape.Shape, v View, selected map[string]bool) Grid {
	v.Cols, v.Rows = max(v.Cols, 1), max(v.Rows, 1)
	if v.CellWidth <= 0 {
		v.CellWidth = 1
	}
	if v.CellHeight <= 0 {
		v.CellHeight = 1
	}
	g := make(Grid, v.Rows)
	for y := range g {
		g[y] = make([]Cell, v.Cols)
		for x := range g[y] {
			g[y][x] = Cell{Ch: ' '}
		}
	}
	for _, s := range shapes {
		if !s.Visible || s.Position == nil {
			continue
		}
		sel := selected[s.ID]
		switch {
		case len(s.Points) > 0 && s.Size == nil:
			g.polyline(v, s, sel)
		case s.Kind == shape.KindText && s.Text != nil:
			col, row := v.cell(s.Position.X, s.Position.Y)
			g.text(col, row, s.Text.Content, math.MaxInt, sel)
		default:
			g.box(v, s, sel)
		}
	}
	return g
}

func (v View) cell(x, y float64) (int, int) {
	return int(math.Floor((x - v.Origin.X) / v.CellWidth)), int(math.Floor((y - v.Origin.Y) / v.CellHeight))
}

func (g Grid) set(col, row int, ch rune, sel bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return
	}
	g[row][col] = Cell{Ch: ch, Selected: sel}
}

func (g Grid) box(v View, s shape.Shape, sel bool) {
	b := s.Bounds()
	x0, y0 := v.cell(b.X, b.Y)
	x1, y1 := v.cell(b.Right(), b.Bottom())
	x1, y1 = max(x1, x0+1), max(y1, y0+1)

	corner, horizontal, vertical := '+', '-', '|'
	if s.Radius != nil {
		corner = '.'
	}
	if sel {
		corner, horizontal, vertical = '#', '#', '#'
	}
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			edgeY := row == y0 || row == y1
			edgeX := col == x0 || col == x1
			switch {
			case edgeX && edgeY:
				g.set(col, row, corner, sel)
			case edgeY:
				g.set(col, row, horizontal, sel)
			case edgeX:
				g.set(col, row, vertical, sel)
			}
		}
	}
	if label := cellLabel(s); label != "" && y1-y0 > 1 {
		g.text(x0+1, y0+1, label, x1-x0-1, sel)
	}
}

func cellLabel(s shape.Shape) string {
	if s.Location != nil && s.Location.LocationNum != "" {
		return s.Location.LocationNum
	}
	if s.Text != nil {
		return s.Text.Content
	}
	return string(s.Kind)
}

func (g Grid) text(col, row int, text string, width int, sel bool) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		g.set(col+i, row, ch, sel)
		i++
	}
}

func (g Grid) polyline(v View, s shape.Shape, sel bool) {
	sx, sy := 1.0, 1.0
	if s.Scale != nil {
		sx, sy = s.Scale.X, s.Scale.Y
	}
	ch := '.'
	if sel {
		ch = '#'
	}
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		c0, r0 := v.cell(s.Position.X+a.X*sx, s.Position.Y+a.Y*sy)
		c1, r1 := v.cell(s.Position.X+b.X*sx, s.Position.Y+b.Y*sy)
		g.line(c0, r0, c1, r1, ch, sel)
	}
	if s.Kind == shape.KindArrow && len(s.Points) >= 2 {
		last := s.Points[len(s.Points)-1]
		c, r := v.cell(s.Position.X+last.X*sx, s.Position.Y+last.Y*sy)
		g.set(c, r, '>', sel)
	}
}

// line is Bresenham between two cells.
func (g Grid) line(x0, y0, x1, y1 int, ch rune, sel bool) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	stepX, stepY := 1, 1
	if x0 > x1 {
		stepX = -1
	}
	if y0 > y1 {
		stepY = -1
	}
	e := dx + dy
	for {
		g.set(x0, y0, ch, sel)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += stepX
		}
		if e2 <= dx {
			e += dx
			y0 += stepY
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
