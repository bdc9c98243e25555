package snap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapValues(t *testing.T) {
	assert.Equal(t, 10.0, Snap(9, 5, Nearest))
	assert.Equal(t, 5.0, Snap(4, 5, Nearest))
	assert.Equal(t, 0.0, Snap(1, 5, Floor))
	assert.Equal(t, 5.0, Snap(9, 5, Floor))
	assert.Equal(t, 5.0, Snap(1, 5, Ceil))

	round, err := ParseMode("round")
	require.NoError(t, err)
	assert.Equal(t, 10.0, Snap(8, 5, round))
}

func TestSnapTruncatesFractionalPixels(t *testing.T) {
	// 7.9 is floored to 7 before rounding, so it lands on 5 rather than 10
	assert.Equal(t, 5.0, Snap(7.9, 5, Nearest))
	assert.Equal(t, 10.0, Snap(8.2, 5, Nearest))
}

func TestSnapHalfRoundsUp(t *testing.T) {
	assert.Equal(t, 20.0, Snap(15, 10, Nearest))
	assert.Equal(t, 10.0, Snap(14, 10, Nearest))
}

func TestSnapDisabled(t *testing.T) {
	for _, mode := range []Mode{Nearest, Floor, Ceil} {
		assert.Equal(t, 3.7, Snap(3.7, 0, mode))
		assert.Equal(t, -12.25, Snap(-12.25, -5, mode))
	}
}

func TestSnapAlwaysLatticeMultiple(t *testing.T) {
	lattices := []float64{1, 3, 5, 8, 12.5, 40}
	for _, l := range lattices {
		for p := -200.0; p <= 200; p += 3.3 {
			for _, mode := range []Mode{Nearest, Floor, Ceil} {
				got := Snap(p, l, mode)
				ratio := got / l
				assert.InDelta(t, math.Round(ratio), ratio, 1e-9, "snap(%v, %v, %v) = %v", p, l, mode, got)
			}
		}
	}
}

func TestParseModeRejectsUnknown(t *testing.T) {
	_, err := ParseMode("sideways")
	assert.Error(t, err)
}

func TestLatticeAxes(t *testing.T) {
	l := Lattice{Width: 10, Height: 4}
	x, y := l.Point(14, 14, Nearest)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 16.0, y)
	assert.True(t, l.Enabled())
	assert.False(t, Lattice{}.Enabled())
}
