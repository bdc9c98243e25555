package main

import (
	"log/slog"

	"shelfmap/internal/editor"
	"shelfmap/internal/render"
	"shelfmap/internal/transform"
)

type model struct {
	width             int
	height            int
	cursorX           int
	cursorY           int
	panX              int
	panY              int
	zPanMode          bool
	mode              Mode
	help              bool
	helpScroll        int
	ed                *editor.Editor
	projector         *render.Projector
	exporter          *render.Exporter
	config            *Config
	log               *slog.Logger
	autosave          *autosaver
	placeKind         int
	drawKind          int
	gestureIDs        []string
	gesture           transform.Gesture
	textTarget        TextTarget
	textInput         string
	textInputID       string
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	errorMessage      string
	successMessage    string
}
