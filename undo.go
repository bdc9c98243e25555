package main

import (
	"log/slog"

	"shelfmap/internal/editor"
	"shelfmap/internal/history"
)

func (m *model) undo() {
	if m.mode != ModeNormal {
		m.cancelGesture()
	}
	if !m.ed.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.successMessage = "Undone"
}

func (m *model) redo() {
	if m.mode != ModeNormal {
		m.cancelGesture()
	}
	if !m.ed.Redo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	m.successMessage = "Redone"
}

// recorded runs after every operation the editor records. Autosave encodes
// on the input goroutine and hands the bytes to the saver.
func recorded(log *slog.Logger, ed *editor.Editor, saver *autosaver, op history.Operation) {
	log.Info("recorded", "op", op.Kind.String(), "shapes", len(op.IDs()))
	if saver == nil || ed == nil {
		return
	}
	data, err := ed.MarshalLayout()
	if err != nil {
		log.Error("autosave encode failed", "err", err)
		return
	}
	saver.Save(data)
}

// autosaver writes layouts from a single goroutine so renames land in
// order. A snapshot still waiting when a newer one arrives is replaced.
type autosaver struct {
	path    string
	log     *slog.Logger
	pending chan []byte
	done    chan struct{}
}

func newAutosaver(path string, log *slog.Logger) *autosaver {
	a := &autosaver{
		path:    path,
		log:     log,
		pending: make(chan []byte, 1),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *autosaver) run() {
	defer close(a.done)
	for data := range a.pending {
		if err := writeFileAtomic(a.path, data); err != nil {
			a.log.Error("autosave failed", "path", a.path, "err", err)
		}
	}
}

// Save queues data. Must be called from one goroutine.
func (a *autosaver) Save(data []byte) {
	for {
		select {
		case a.pending <- data:
			return
		default:
		}
		select {
		case <-a.pending:
		default:
		}
	}
}

// Close flushes the queued snapshot and stops the writer.
func (a *autosaver) Close() error {
	if a == nil {
		return nil
	}
	close(a.pending)
	<-a.done
	return nil
}
