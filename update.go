package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shelfmap/internal/clip"
	"shelfmap/internal/polyline"
	"shelfmap/internal/shape"
	"shelfmap/internal/transform"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		if msg.Type == tea.MouseLeft {
			m.cursorX, m.cursorY = msg.X, msg.Y
			m.ensureCursorInBounds()
			if m.mode == ModeDraw {
				m.drawPoint()
			}
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if m.help {
			return m.updateHelp(key)
		}
		m.errorMessage = ""
		m.successMessage = ""
		switch m.mode {
		case ModeMove, ModeResize, ModeRotate:
			return m.updateGesture(key)
		case ModeDraw:
			return m.updateDraw(key)
		case ModeTextInput:
			return m.updateTextInput(msg)
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeConfirm:
			return m.updateConfirm(key)
		}
		return m.updateNormal(key)
	}
	return m, nil
}

func (m model) updateHelp(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		m.helpScroll = min(m.helpScroll+1, max(len(helpLines)-1, 0))
	case "k", "up":
		m.helpScroll = max(m.helpScroll-1, 0)
	}
	return m, nil
}

func (m model) updateNormal(key string) (tea.Model, tea.Cmd) {
	if isMoveKey(key) {
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}
	switch key {
	case "ctrl+c", "q":
		if m.ed.Unsaved() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "z":
		m.zPanMode = !m.zPanMode
	case "esc":
		m.ed.Escape()
	case " ":
		if s, ok := m.ed.HitTest(m.cursorCenter()); ok {
			m.ed.Toggle(s.ID)
		}
	case "ctrl+a":
		m.ed.SelectAll()
	case "tab":
		m.placeKind = (m.placeKind + 1) % len(placeKinds)
		m.successMessage = "Shape: " + string(placeKinds[m.placeKind])
	case "A":
		m.drawKind = (m.drawKind + 1) % len(drawKinds)
		m.successMessage = "Draw: " + string(drawKinds[m.drawKind])
	case "b":
		p := m.stagePoint()
		s, err := m.ed.Create(placeKinds[m.placeKind], shape.Shape{Position: &p})
		if err != nil {
			m.errorMessage = err.Error()
			break
		}
		m.ed.Select(s.ID)
	case "a":
		if err := m.ed.BeginDrawing(drawKinds[m.drawKind], m.stagePoint(), shape.Style{}); err != nil {
			m.errorMessage = err.Error()
			break
		}
		m.mode = ModeDraw
	case "m":
		m.startGesture(ModeMove, transform.Drag{})
	case "r":
		m.startGesture(ModeResize, transform.Resize{ScaleX: 1, ScaleY: 1})
	case "R":
		m.startGesture(ModeRotate, transform.Rotate{})
	case "d":
		if len(m.selectionOrCursor()) == 0 {
			m.errorMessage = "Nothing selected"
			break
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			break
		}
		m.deleteSelection()
	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()
	case "c":
		m.copySelection()
	case "p":
		m.pasteAtCursor()
	case "t":
		m.startTextInput(TextNew, "", "")
	case "e":
		m.editUnderCursor()
	case "s":
		m.startFileInput(FileOpSave)
	case "x":
		m.startFileInput(FileOpSavePNG)
	case "X":
		m.startFileInput(FileOpSaveVisualTXT)
	case "o":
		if m.ed.Unsaved() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOpen
			break
		}
		m.startFileInput(FileOpOpen)
	}
	return m, nil
}

// selectionOrCursor returns the selection, or selects the shape under the
// cursor when nothing is selected.
func (m *model) selectionOrCursor() []string {
	if ids := m.ed.Selection(); len(ids) > 0 {
		return ids
	}
	if s, ok := m.ed.HitTest(m.cursorCenter()); ok {
		m.ed.Select(s.ID)
	}
	return m.ed.Selection()
}

func (m *model) startGesture(mode Mode, g transform.Gesture) {
	ids := m.selectionOrCursor()
	if len(ids) == 0 {
		m.errorMessage = "Nothing selected"
		return
	}
	if mode != ModeMove && !m.ed.CanResize(ids) {
		m.errorMessage = fmt.Sprintf("Over %d shapes: only positions will change", m.config.MaxBatchEdit)
	}
	if r, ok := g.(transform.Resize); ok {
		var sel []shape.Shape
		for _, id := range ids {
			if s, ok := m.ed.Shape(id); ok {
				sel = append(sel, s)
			}
		}
		b := transform.SelectionRect(sel)
		r.Origin = shape.Point{X: b.X, Y: b.Y}
		g = r
	}
	m.gestureIDs = ids
	m.gesture = g
	m.mode = mode
}

func (m *model) cancelGesture() {
	m.gestureIDs = nil
	m.gesture = nil
	m.mode = ModeNormal
}

func (m model) updateGesture(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.cancelGesture()
		return m, nil
	case "enter":
		n := len(m.gestureIDs)
		if _, ok := m.ed.ApplyGesture(m.gestureIDs, m.gesture); ok {
			m.successMessage = fmt.Sprintf("Updated %d shape(s)", n)
		} else {
			m.successMessage = "No change"
		}
		m.cancelGesture()
		return m, nil
	case "u":
		m.undo()
		return m, nil
	}
	if !isMoveKey(key) {
		return m, nil
	}
	dx, dy := direction(key)
	speed := float64(m.getMoveSpeed(key))
	cw, ch := m.cellSize()
	switch g := m.gesture.(type) {
	case transform.Drag:
		g.DX += float64(dx) * cw * speed
		g.DY += float64(dy) * ch * speed
		m.gesture = g
	case transform.Resize:
		g.ScaleX = max(g.ScaleX+float64(dx)*resizeStep*speed, resizeStep)
		g.ScaleY = max(g.ScaleY+float64(dy)*resizeStep*speed, resizeStep)
		m.gesture = g
	case transform.Rotate:
		step := rotateStep
		if speed > 1 {
			step = rotateFineStep
		}
		g.Delta += float64(dx+dy) * step
		m.gesture = g
	}
	return m, nil
}

func (m model) updateDraw(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.ed.Escape()
		m.mode = ModeNormal
		return m, nil
	case "enter", " ", "a":
		m.drawPoint()
		return m, nil
	case "f":
		m.finishDrawing()
		return m, nil
	}
	if isMoveKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		if s, _, ok := m.ed.Drawing(); ok && s.Kind == shape.KindPen {
			m.drawPoint()
		}
	}
	return m, nil
}

func (m *model) drawPoint() {
	state, err := m.ed.DrawTo(m.stagePoint())
	if err != nil {
		m.errorMessage = err.Error()
		m.mode = ModeNormal
		return
	}
	if state == polyline.Closed {
		m.finishDrawing()
	}
}

func (m *model) finishDrawing() {
	_, ok, err := m.ed.FinishDrawing()
	switch {
	case err != nil:
		m.errorMessage = err.Error()
		m.mode = ModeNormal
	case !ok:
		m.errorMessage = "Not finished: close areas on their first point"
	default:
		m.successMessage = "Shape added"
		m.mode = ModeNormal
	}
}

func (m *model) deleteSelection() {
	ids := m.ed.Selection()
	if _, ok := m.ed.Remove(ids...); ok {
		m.successMessage = fmt.Sprintf("Deleted %d shape(s)", len(ids))
	}
}

func (m *model) copySelection() {
	var shapes []shape.Shape
	for _, id := range m.selectionOrCursor() {
		if s, ok := m.ed.Shape(id); ok {
			shapes = append(shapes, s)
		}
	}
	if len(shapes) == 0 {
		m.errorMessage = "Nothing selected"
		return
	}
	if err := clip.Copy(shapes); err != nil {
		m.errorMessage = "Copy failed: " + err.Error()
		return
	}
	m.successMessage = fmt.Sprintf("Copied %d shape(s)", len(shapes))
}

func (m *model) pasteAtCursor() {
	shapes, err := clip.Paste()
	if err != nil {
		m.errorMessage = "Paste failed: " + err.Error()
		return
	}
	if len(shapes) == 0 {
		return
	}
	b := transform.SelectionRect(shapes)
	at := m.stagePoint()
	if _, err := m.ed.Paste(shapes, at.X-b.X, at.Y-b.Y); err != nil {
		m.errorMessage = "Paste failed: " + err.Error()
		return
	}
	m.successMessage = fmt.Sprintf("Pasted %d shape(s)", len(shapes))
}

func (m *model) editUnderCursor() {
	s, ok := m.ed.HitTest(m.cursorCenter())
	if !ok {
		m.errorMessage = "No shape under cursor"
		return
	}
	switch {
	case s.Location != nil:
		m.startTextInput(TextLocation, s.ID, s.Location.TableID+"/"+s.Location.BranchNum)
	case s.Text != nil:
		m.startTextInput(TextLabel, s.ID, s.Text.Content)
	default:
		m.errorMessage = string(s.Kind) + " has no label"
	}
}

func (m *model) startTextInput(target TextTarget, id, text string) {
	m.mode = ModeTextInput
	m.textTarget = target
	m.textInputID = id
	m.textInput = text
}

func (m model) updateTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
	case tea.KeyEnter:
		m.commitText()
		m.mode = ModeNormal
	case tea.KeyBackspace:
		if r := []rune(m.textInput); len(r) > 0 {
			m.textInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.textInput += " "
	case tea.KeyRunes:
		m.textInput += string(msg.Runes)
	}
	return m, nil
}

func (m *model) commitText() {
	switch m.textTarget {
	case TextNew:
		if strings.TrimSpace(m.textInput) == "" {
			return
		}
		p := m.stagePoint()
		if _, err := m.ed.Create(shape.KindText, shape.Shape{
			Position: &p,
			Text:     &shape.Text{Content: m.textInput},
		}); err != nil {
			m.errorMessage = err.Error()
		}
	case TextLabel:
		_, _, err := m.ed.EditProperties([]string{m.textInputID}, func(s *shape.Shape) {
			s.Text.Content = m.textInput
		})
		if err != nil {
			m.errorMessage = err.Error()
		}
	case TextLocation:
		table, branch, _ := strings.Cut(m.textInput, "/")
		_, _, err := m.ed.EditProperties([]string{m.textInputID}, func(s *shape.Shape) {
			s.Location.TableID = strings.TrimSpace(table)
			s.Location.BranchNum = strings.TrimSpace(branch)
		})
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		if s, ok := m.ed.Shape(m.textInputID); ok && s.Location.LocationNum == "" && table != "" && branch != "" {
			m.errorMessage = fmt.Sprintf("Location needs at most %d+%d digits", m.config.TableIDLength, m.config.BranchNumLength)
		}
	}
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	if op == FileOpOpen {
		m.scanLayoutFiles()
	}
}

func (m model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.runFileOp()
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeyUp, tea.KeyDown:
		if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
			break
		}
		if msg.Type == tea.KeyUp {
			m.selectedFileIndex = max(m.selectedFileIndex-1, 0)
		} else {
			m.selectedFileIndex = min(m.selectedFileIndex+1, len(m.fileList)-1)
		}
		m.filename = m.fileList[m.selectedFileIndex]
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m *model) runFileOp() {
	if strings.TrimSpace(m.filename) == "" {
		m.errorMessage = "No file name"
		return
	}
	var (
		path string
		err  error
	)
	switch m.fileOp {
	case FileOpSave:
		path, err = m.saveLayout(m.filename)
	case FileOpSavePNG:
		path, err = m.exportPNG(m.filename)
	case FileOpSaveVisualTXT:
		path, err = m.exportVisualTXT(m.filename)
	case FileOpOpen:
		err = m.openLayout(m.filename)
		path = m.filename
	}
	if err != nil {
		if errors.Is(err, shape.ErrInvalidShapeKind) {
			m.errorMessage = "Unsupported shape in file: " + err.Error()
		} else {
			m.errorMessage = err.Error()
		}
		m.log.Error("file operation failed", "op", int(m.fileOp), "err", err)
		return
	}
	m.successMessage = "Done: " + path
}

func (m model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if key != "y" && key != "Y" {
		return m, nil
	}
	switch m.confirmAction {
	case ConfirmDelete:
		m.deleteSelection()
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmOpen:
		m.startFileInput(FileOpOpen)
	}
	return m, nil
}
