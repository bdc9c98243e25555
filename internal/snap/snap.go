// Package snap maps continuous stage coordinates onto the editing lattice.
package snap

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how a position is rounded onto the lattice.
type Mode int

const (
	Nearest Mode = iota
	Floor
	Ceil
)

func (m Mode) String() string {
	switch m {
	case Floor:
		return "floor"
	case Ceil:
		return "ceil"
	default:
		return "nearest"
	}
}

// ParseMode accepts "nearest", "round", "floor" and "ceil". An empty string
// is Nearest.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest", "round":
		return Nearest, nil
	case "floor":
		return Floor, nil
	case "ceil":
		return Ceil, nil
	}
	return Nearest, fmt.Errorf("unknown snap mode %q", s)
}

// Snap truncates position to whole pixels and rounds it to a multiple of
// lattice. A lattice of zero or less disables snapping.
func Snap(position, lattice float64, mode Mode) float64 {
	if lattice <= 0 {
		return position
	}
	cells := math.Floor(position) / lattice
	switch mode {
	case Floor:
		cells = math.Floor(cells)
	case Ceil:
		cells = math.Ceil(cells)
	default:
		// math.Round rounds half away from zero
		cells = math.Round(cells)
	}
	return cells * lattice
}

// Lattice is the grid spacing along each axis, in stage pixels.
type Lattice struct {
	Width  float64
	Height float64
}

// X snaps a horizontal coordinate.
func (l Lattice) X(v float64, mode Mode) float64 {
	return Snap(v, l.Width, mode)
}

// Y snaps a vertical coordinate.
func (l Lattice) Y(v float64, mode Mode) float64 {
	return Snap(v, l.Height, mode)
}

// Point snaps both coordinates with the same mode.
func (l Lattice) Point(x, y float64, mode Mode) (float64, float64) {
	return l.X(x, mode), l.Y(y, mode)
}

// Enabled reports whether either axis snaps.
func (l Lattice) Enabled() bool {
	return l.Width > 0 || l.Height > 0
}
