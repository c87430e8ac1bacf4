package chroma

import (
	"fmt"
	"math"
)

// SolveDirection returns the unit vector orthogonal to lines of the given
// slope. The angle is the principal arctangent of the perpendicular slope
// -1/slope, so the horizontal component is always non-negative.
func SolveDirection(slope float64) (Direction, error) {
	if err := checkSlope(slope); err != nil {
		return Direction{}, err
	}

	theta := math.Atan(-1 / slope)
	return Direction{X: math.Cos(theta), Y: math.Sin(theta)}, nil
}

// InvarianceScale returns k such that projecting (x, slope*x + offset)
// onto SolveDirection(slope) yields offset*k for every x.
func InvarianceScale(slope float64) (float64, error) {
	d, err := SolveDirection(slope)
	if err != nil {
		return 0, err
	}
	// The x term cancels because d is orthogonal to (1, slope).
	return d.Y, nil
}

func checkSlope(slope float64) error {
	if slope == 0 {
		return fmt.Errorf("%w: slope must be non-zero", ErrInvalidParameter)
	}
	if !isFinite(slope) {
		return fmt.Errorf("%w: slope must be finite, got %v", ErrInvalidParameter, slope)
	}
	return nil
}
