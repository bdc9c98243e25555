package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, filename string, config *Config) model {
	t.Helper()
	if config == nil {
		config = defaultConfig()
		config.SaveDirectory = t.TempDir()
		config.Confirmations = false
	}
	m, err := initialModel(config, slog.New(slog.NewTextHandler(io.Discard, nil)), filename)
	require.NoError(t, err)
	return send(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

// keys turns key names into key messages; anything not named is typed.
func keys(names ...string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(names))
	for _, name := range names {
		switch name {
		case "enter":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEsc})
		default:
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
		}
	}
	return msgs
}

func TestPlaceMoveAndUndo(t *testing.T) {
	m := newTestModel(t, "", nil)
	m = send(t, m, keys("b")...)

	shapes := m.ed.Shapes(nil)
	require.Len(t, shapes, 1)
	id := shapes[0].ID
	assert.Equal(t, []string{id}, m.ed.Selection())

	m = send(t, m, keys("m", "l", "l")...)
	assert.Equal(t, ModeMove, m.mode)
	assert.Equal(t, "dx:20 dy:0", m.gestureLabel())

	m = send(t, m, keys("enter")...)
	assert.Equal(t, ModeNormal, m.mode)
	s, ok := m.ed.Shape(id)
	require.True(t, ok)
	assert.Equal(t, 20.0, s.Position.X)
	assert.True(t, m.ed.Unsaved())

	m = send(t, m, keys("u")...)
	s, _ = m.ed.Shape(id)
	assert.Equal(t, 0.0, s.Position.X)
}

func TestEscapeCancelsGesture(t *testing.T) {
	m := newTestModel(t, "", nil)
	m = send(t, m, keys("b", "m", "j", "esc")...)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, m.gesture)
	s := m.ed.Shapes(nil)[0]
	assert.Equal(t, 0.0, s.Position.Y)
}

func TestSaveAndOpenLayout(t *testing.T) {
	m := newTestModel(t, "", nil)
	m = send(t, m, keys("b", "s", "shop", "enter")...)
	assert.Empty(t, m.errorMessage)
	assert.False(t, m.ed.Unsaved())
	assert.FileExists(t, filepath.Join(m.config.SaveDirectory, "shop.json"))

	reopened := newTestModel(t, "shop", m.config)
	assert.Len(t, reopened.ed.Shapes(nil), 1)
	assert.Equal(t, "shop", reopened.filename)
	assert.False(t, reopened.ed.CanUndo())
}

func TestExportVisualTXT(t *testing.T) {
	m := newTestModel(t, "", nil)
	m = send(t, m, keys("b", "esc", "X", "plan", "enter")...)
	assert.Empty(t, m.errorMessage)

	data, err := os.ReadFile(filepath.Join(m.config.SaveDirectory, "plan.txt"))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "+-------+", lines[0])
	assert.Equal(t, "|", lines[1][:1])
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := newTestModel(t, "", config)

	m = send(t, m, keys("b", "d")...)
	assert.Equal(t, ModeConfirm, m.mode)
	m = send(t, m, keys("n")...)
	assert.Len(t, m.ed.Shapes(nil), 1)

	m = send(t, m, keys("d", "y")...)
	assert.Empty(t, m.ed.Shapes(nil))
}
