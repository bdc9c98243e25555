package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelfmap/internal/render"
	"shelfmap/internal/shape"
	"shelfmap/internal/transform"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle   = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	rows := max(m.height-1, 1)

	var b strings.Builder
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		b.WriteString(m.fileListView(rows))
	} else {
		grid := m.grid(m.view(rows), m.selectedSet())
		for y, row := range grid {
			cursor := -1
			if y == m.cursorY {
				cursor = m.cursorX
			}
			b.WriteString(m.renderRow(row, cursor))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.statusLine())
	return b.String()
}

func (m model) selectedSet() map[string]bool {
	set := make(map[string]bool)
	for _, id := range m.ed.Selection() {
		set[id] = true
	}
	if m.mode == ModeDraw {
		if s, _, ok := m.ed.Drawing(); ok {
			set[s.ID] = true
		}
	}
	return set
}

// grid rasterizes the layout, swapping in the preview of a pending gesture
// and the shape being drawn.
func (m model) grid(v render.View, selected map[string]bool) render.Grid {
	shapes := m.projector.Shapes()
	if m.gesture != nil {
		preview := make(map[string]shape.Shape)
		for _, s := range m.ed.Preview(m.gestureIDs, m.gesture) {
			preview[s.ID] = s
		}
		if len(preview) > 0 {
			out := make([]shape.Shape, len(shapes))
			for i, s := range shapes {
				if p, ok := preview[s.ID]; ok {
					s = p
				}
				out[i] = s
			}
			shapes = out
		}
	}
	if s, _, ok := m.ed.Drawing(); ok {
		shapes = append(shapes[:len(shapes):len(shapes)], s)
	}
	return render.Cells(shapes, v, selected)
}

func (m model) renderRow(row []render.Cell, cursor int) string {
	var b strings.Builder
	style := selectedStyle
	if m.gesture != nil {
		style = previewStyle
	}
	for i := 0; i < len(row); {
		if i == cursor {
			b.WriteRune('█')
			i++
			continue
		}
		j := i
		var run []rune
		for j < len(row) && row[j].Selected == row[i].Selected && j != cursor {
			run = append(run, row[j].Ch)
			j++
		}
		if row[i].Selected {
			b.WriteString(style.Render(string(run)))
		} else {
			b.WriteString(string(run))
		}
		i = j
	}
	return b.String()
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeResize:
		return "RESIZE"
	case ModeRotate:
		return "ROTATE"
	case ModeDraw:
		return "DRAW"
	case ModeTextInput:
		return "TEXT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeTextInput:
		prompt := "Text: "
		if m.textTarget == TextLocation {
			prompt = "Table/branch: "
		}
		return statusStyle.Render(prompt + m.textInput + "█")
	case ModeFileInput:
		prompt := map[FileOperation]string{
			FileOpSave:          "Save as: ",
			FileOpSavePNG:       "Export PNG as: ",
			FileOpSaveVisualTXT: "Export text as: ",
			FileOpOpen:          "Open: ",
		}[m.fileOp]
		return statusStyle.Render(prompt + m.filename + "█")
	case ModeConfirm:
		question := map[ConfirmAction]string{
			ConfirmDelete: fmt.Sprintf("Delete %d shape(s)? (y/n)", len(m.ed.Selection())),
			ConfirmQuit:   "Unsaved changes. Quit anyway? (y/n)",
			ConfirmOpen:   "Unsaved changes. Open another layout? (y/n)",
		}[m.confirmAction]
		return errorStyle.Render(question)
	}

	sel := m.ed.Selection()
	parts := []string{
		m.modeString(),
		"place:" + string(placeKinds[m.placeKind]),
		"draw:" + string(drawKinds[m.drawKind]),
		fmt.Sprintf("sel:%d", len(sel)),
	}
	if len(sel) > 0 {
		if m.ed.CanResize(sel) {
			parts = append(parts, "resize:on")
		} else {
			parts = append(parts, "resize:off")
		}
	}
	if label := m.gestureLabel(); label != "" {
		parts = append(parts, label)
	}
	p := m.stagePoint()
	parts = append(parts, fmt.Sprintf("%.0f,%.0f", p.X, p.Y))
	if m.zPanMode {
		parts = append(parts, "PAN")
	}
	if m.ed.Unsaved() {
		parts = append(parts, "*")
	}
	line := statusStyle.Render(" " + strings.Join(parts, " | ") + " ")
	switch {
	case m.errorMessage != "":
		line += " " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		line += " " + successStyle.Render(m.successMessage)
	default:
		line += " " + dimStyle.Render("? for help")
	}
	return line
}

func (m model) gestureLabel() string {
	switch g := m.gesture.(type) {
	case transform.Drag:
		return fmt.Sprintf("dx:%.0f dy:%.0f", g.DX, g.DY)
	case transform.Resize:
		return fmt.Sprintf("scale:%.1fx%.1f", g.ScaleX, g.ScaleY)
	case transform.Rotate:
		return fmt.Sprintf("rotate:%+.0f", g.Delta)
	}
	return ""
}

func (m model) fileListView(rows int) string {
	var b strings.Builder
	b.WriteString("Select a saved layout:\n")
	b.WriteString(strings.Repeat("─", max(m.width, 1)))
	b.WriteString("\n")
	if len(m.fileList) == 0 {
		b.WriteString("(No " + layoutExtension + " files found)\n")
		return b.String()
	}
	maxFiles := max(rows-3, 1)
	start := 0
	if m.selectedFileIndex >= maxFiles {
		start = m.selectedFileIndex - maxFiles + 1
	}
	end := min(start+maxFiles, len(m.fileList))
	for i := start; i < end; i++ {
		if i == m.selectedFileIndex {
			b.WriteString(selectedStyle.Render("> " + m.fileList[i]))
		} else {
			b.WriteString("  " + m.fileList[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

var helpLines = []string{
	"shelfmap help",
	"=============",
	"",
	"Navigation:",
	"  h/j/k/l, arrows  Move cursor (Shift moves 2 cells)",
	"  z                Toggle pan mode",
	"",
	"Shapes:",
	"  tab              Cycle the kind placed by b",
	"  b                Place a shape at the cursor",
	"  A                Cycle the kind drawn by a",
	"  a                Start drawing an area, polygon, line, arrow or pen stroke",
	"  t                Add a text label at the cursor",
	"  e                Edit the label or table/branch of the shape under the cursor",
	"",
	"Selection:",
	"  space            Toggle the shape under the cursor",
	"  ctrl+a           Select everything",
	"  esc              Clear selection, abandon drawing",
	"",
	"Editing:",
	"  m                Move selection (arrows, enter to apply, esc to cancel)",
	"  r                Resize selection (h/l width, j/k height)",
	"  R                Rotate selection (15 degrees, Shift for 1 degree)",
	"  d                Delete selection",
	"  c / p            Copy selection / paste at cursor",
	"  u / U            Undo / redo",
	"",
	"Draw mode:",
	"  enter, space, a  Add a point at the cursor",
	"  f                Finish an open line",
	"                   Areas and polygons finish when closed on their first point",
	"",
	"Files:",
	"  s                Save layout (" + layoutExtension + ")",
	"  o                Open layout",
	"  x / X            Export PNG / plain text",
	"  q                Quit",
}

func (m model) helpView() string {
	end := min(m.helpScroll+max(m.height-1, 1), len(helpLines))
	start := min(m.helpScroll, end)
	return strings.Join(helpLines[start:end], "\n")
}
