package transform

import (
	"math"

	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

// Rebase places pasted or bulk-added shapes. Table-like shapes that land
// within one lattice cell of an already placed shape to their left or above
// are pulled flush against its edge; everything else snaps to the lattice.
// Earlier shapes in incoming count as placed for later ones.
func Rebase(incoming, placed []shape.Shape, lattice snap.Lattice) []shape.Shape {
	onStage := make([]shape.Shape, 0, len(placed)+len(incoming))
	onStage = append(onStage, placed...)
	out := make([]shape.Shape, 0, len(incoming))

	for _, s := range incoming {
		next := s.Clone()
		if !next.Has(shape.HasPosition) {
			out = append(out, next)
			continue
		}
		next.Position.X, next.Position.Y = lattice.Point(next.Position.X, next.Position.Y, snap.Nearest)
		if next.Has(shape.HasLocationNumber|shape.HasSize) && next.Rotation == 0 {
			b := s.Bounds()
			if l, ok := closestLeft(b, onStage, lattice.Width); ok {
				next.Position.X = l.Right()
			}
			b.X = next.Position.X
			if a, ok := closestAbove(b, onStage, lattice.Height); ok {
				next.Position.Y = a.Bottom()
			}
		}
		out = append(out, next)
		onStage = append(onStage, next)
	}
	return out
}

// closestLeft finds the shape whose right edge is nearest b's left edge,
// within reach, among those sharing some vertical extent. Ties go to the
// one closest on the vertical axis.
func closestLeft(b shape.Rect, stage []shape.Shape, reach float64) (shape.Rect, bool) {
	var best shape.Rect
	bestGap, bestPerp := math.Inf(1), math.Inf(1)
	for _, s := range stage {
		r := s.Bounds()
		if !overlaps(b.Y, b.Bottom(), r.Y, r.Bottom()) {
			continue
		}
		if r.Right() > b.X+reach || r.X >= b.X {
			continue
		}
		gap := math.Abs(b.X - r.Right())
		if gap > reach {
			continue
		}
		perp := math.Abs(b.Y - r.Y)
		if gap < bestGap || (gap == bestGap && perp < bestPerp) {
			best, bestGap, bestPerp = r, gap, perp
		}
	}
	return best, !math.IsInf(bestGap, 1)
}

// closestAbove mirrors closestLeft on the vertical axis.
func closestAbove(b shape.Rect, stage []shape.Shape, reach float64) (shape.Rect, bool) {
	var best shape.Rect
	bestGap, bestPerp := math.Inf(1), math.Inf(1)
	for _, s := range stage {
		r := s.Bounds()
		if !overlaps(b.X, b.Right(), r.X, r.Right()) {
			continue
		}
		if r.Bottom() > b.Y+reach || r.Y >= b.Y {
			continue
		}
		gap := math.Abs(b.Y - r.Bottom())
		if gap > reach {
			continue
		}
		perp := math.Abs(b.X - r.X)
		if gap < bestGap || (gap == bestGap && perp < bestPerp) {
			best, bestGap, bestPerp = r, gap, perp
		}
	}
	return best, !math.IsInf(bestGap, 1)
}
