package chroma

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EvenOffsets returns n offsets evenly spaced over [lo, hi] inclusive.
// A single offset is placed at lo.
func EvenOffsets(n int, lo, hi float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return span(n, lo, hi)
}

// Validate checks the line family parameters without generating anything.
func (lf LineFamily) Validate() error {
	if lf.NumSurfaces < 1 {
		return fmt.Errorf("%w: num_surfaces must be at least 1, got %d", ErrInvalidParameter, lf.NumSurfaces)
	}
	if lf.PointsPerSurface < 2 {
		return fmt.Errorf("%w: points_per_surface must be at least 2, got %d", ErrInvalidParameter, lf.PointsPerSurface)
	}
	if !isFinite(lf.XMin) || !isFinite(lf.XMax) {
		return fmt.Errorf("%w: x range must be finite, got [%v, %v]", ErrInvalidParameter, lf.XMin, lf.XMax)
	}
	if lf.XMax <= lf.XMin {
		return fmt.Errorf("%w: x_max must exceed x_min, got [%v, %v]", ErrInvalidParameter, lf.XMin, lf.XMax)
	}
	if !isFinite(lf.XMax - lf.XMin) {
		return fmt.Errorf("%w: x range [%v, %v] is too wide to sample", ErrInvalidParameter, lf.XMin, lf.XMax)
	}
	if err := checkSlope(lf.Slope); err != nil {
		return err
	}
	if len(lf.Offsets) != lf.NumSurfaces {
		return fmt.Errorf("%w: need %d offsets, got %d", ErrInvalidParameter, lf.NumSurfaces, len(lf.Offsets))
	}
	seen := make(map[float64]int, len(lf.Offsets))
	for i, off := range lf.Offsets {
		if !isFinite(off) {
			return fmt.Errorf("%w: offset %d is not finite (%v)", ErrInvalidParameter, i, off)
		}
		if j, dup := seen[off]; dup {
			return fmt.Errorf("%w: offsets %d and %d are both %v", ErrInvalidParameter, j, i, off)
		}
		seen[off] = i
	}
	// Projections reproduce offset·k with |k| <= 1, so a finite offset
	// spread keeps the projected range finite.
	if spread := floats.Max(lf.Offsets) - floats.Min(lf.Offsets); !isFinite(spread) {
		return fmt.Errorf("%w: offset spread overflows", ErrInvalidParameter)
	}
	// Y is linear in x, so finite endpoints bound every sample.
	for i, off := range lf.Offsets {
		for _, x := range [2]float64{lf.XMin, lf.XMax} {
			if y := lf.Slope*x + off; !isFinite(y) {
				return fmt.Errorf("%w: surface %d overflows at x=%v", ErrInvalidParameter, i+1, x)
			}
		}
	}
	return nil
}

// GenerateSurfaces samples every line of the family on one shared grid of
// PointsPerSurface x positions spanning [XMin, XMax].
func GenerateSurfaces(lf LineFamily) ([]Surface, error) {
	if err := lf.Validate(); err != nil {
		return nil, err
	}

	xs := span(lf.PointsPerSurface, lf.XMin, lf.XMax)

	surfaces := make([]Surface, lf.NumSurfaces)
	for i, off := range lf.Offsets {
		pts := make([]Point, len(xs))
		for j, x := range xs {
			pts[j] = Point{X: x, Y: lf.Slope*x + off}
		}
		surfaces[i] = Surface{ID: i + 1, Offset: off, Points: pts}
	}
	return surfaces, nil
}

// AssemblePointCloud concatenates surfaces in order, keeping each
// surface's sampling order, and tags every point with its surface ID.
func AssemblePointCloud(surfaces []Surface) PointCloud {
	n := 0
	for _, s := range surfaces {
		n += len(s.Points)
	}

	pc := PointCloud{
		Points:     make([]Point, 0, n),
		SurfaceIDs: make([]int, 0, n),
	}
	for _, s := range surfaces {
		for _, p := range s.Points {
			pc.Points = append(pc.Points, p)
			pc.SurfaceIDs = append(pc.SurfaceIDs, s.ID)
		}
	}
	return pc
}

// Generate builds the line family and returns the assembled cloud.
func Generate(lf LineFamily) (PointCloud, error) {
	surfaces, err := GenerateSurfaces(lf)
	if err != nil {
		return PointCloud{}, err
	}
	return AssemblePointCloud(surfaces), nil
}

// span returns n evenly spaced values from lo to hi with both endpoints
// exact.
func span(n int, lo, hi float64) []float64 {
	vals := floats.Span(make([]float64, n), lo, hi)
	vals[n-1] = hi
	return vals
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
