package chroma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveDirection_UnitAndOrthogonal(t *testing.T) {
	slopes := []float64{0.5, -0.5, 1, -1, 2, -3.7, 1e-3, -1e-3, 42, 1e3}
	for _, s := range slopes {
		d, err := SolveDirection(s)
		require.NoError(t, err, "slope %v", s)

		assert.InDelta(t, 1.0, math.Hypot(d.X, d.Y), 1e-9, "slope %v: not unit length", s)
		assert.InDelta(t, 0.0, d.X*1+d.Y*s, 1e-9, "slope %v: not orthogonal", s)
		assert.GreaterOrEqual(t, d.X, 0.0, "slope %v: horizontal component negative", s)
	}
}

func TestSolveDirection_Reference(t *testing.T) {
	d, err := SolveDirection(0.5)
	require.NoError(t, err)

	// Unit vector at atan(-2).
	assert.InDelta(t, 1/math.Sqrt(5), d.X, 1e-9)
	assert.InDelta(t, -2/math.Sqrt(5), d.Y, 1e-9)
	assert.InDelta(t, 0.4472, d.X, 1e-4)
	assert.InDelta(t, -0.8944, d.Y, 1e-4)
}

func TestSolveDirection_NegativeSlope(t *testing.T) {
	d, err := SolveDirection(-0.5)
	require.NoError(t, err)

	assert.InDelta(t, 1/math.Sqrt(5), d.X, 1e-9)
	assert.InDelta(t, 2/math.Sqrt(5), d.Y, 1e-9)
}

func TestSolveDirection_Invalid(t *testing.T) {
	for _, s := range []float64{0, math.Copysign(0, -1), math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := SolveDirection(s)
		assert.ErrorIs(t, err, ErrInvalidParameter, "slope %v", s)
	}
}

func TestInvarianceScale(t *testing.T) {
	for _, s := range []float64{0.5, -0.5, 2, -7} {
		k, err := InvarianceScale(s)
		require.NoError(t, err)

		want := -math.Copysign(1, s) / math.Sqrt(1+s*s)
		assert.InDelta(t, want, k, 1e-12, "slope %v", s)
	}

	_, err := InvarianceScale(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDirection_Dot(t *testing.T) {
	d := Direction{X: 0.6, Y: -0.8}
	assert.InDelta(t, 0.6*2-0.8*3, d.Dot(Point{X: 2, Y: 3}), 1e-12)
	assert.Equal(t, 0.0, d.Dot(Point{}))
}
