package main

import "shelfmap/internal/shape"

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeResize
	ModeRotate
	ModeDraw
	ModeTextInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDelete ConfirmAction = iota
	ConfirmQuit
	ConfirmOpen
)

type TextTarget int

const (
	TextNew TextTarget = iota
	TextLabel
	TextLocation
)

const (
	resizeStep      = 0.1
	rotateStep      = 15.0
	rotateFineStep  = 1.0
	layoutExtension = ".json"
)

// placeKinds are created with a single key press; drawKinds are built point
// by point in draw mode.
var (
	placeKinds = []shape.Kind{
		shape.KindTable,
		shape.KindGondola,
		shape.KindMeshEnd,
		shape.KindWall,
		shape.KindRoundTable,
		shape.KindRect,
		shape.KindEllipse,
		shape.KindRegister,
		shape.KindSpecial,
	}
	drawKinds = []shape.Kind{
		shape.KindArea,
		shape.KindPolygon,
		shape.KindLine,
		shape.KindArrow,
		shape.KindPen,
	}
)
