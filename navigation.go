package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"shelfmap/internal/render"
	"shelfmap/internal/shape"
)

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.panX -= dx * speed
	m.panY -= dy * speed
	return *m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	return *m
}

// direction maps a movement key to a cell delta.
func direction(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func isMoveKey(key string) bool {
	dx, dy := direction(key)
	return dx != 0 || dy != 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	maxY := max(m.height-2, 0)
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func (m *model) cellSize() (float64, float64) {
	w, h := m.config.LatticeWidth, m.config.LatticeHeight
	if w <= 0 {
		w = 10
	}
	if h <= 0 {
		h = 10
	}
	return w, h
}

// stagePoint is the stage coordinate of the top-left corner of the cell
// under the cursor.
func (m *model) stagePoint() shape.Point {
	w, h := m.cellSize()
	return shape.Point{X: float64(m.cursorX+m.panX) * w, Y: float64(m.cursorY+m.panY) * h}
}

// cursorCenter is the middle of the cell under the cursor, used for hit
// tests so shapes ending on a cell edge are not picked twice.
func (m *model) cursorCenter() shape.Point {
	w, h := m.cellSize()
	p := m.stagePoint()
	return shape.Point{X: p.X + w/2, Y: p.Y + h/2}
}

func (m *model) view(rows int) render.View {
	w, h := m.cellSize()
	return render.View{
		Cols:       max(m.width, 1),
		Rows:       max(rows, 1),
		CellWidth:  w,
		CellHeight: h,
		Origin:     shape.Point{X: float64(m.panX) * w, Y: float64(m.panY) * h},
	}
}
