package chroma

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// SurfaceClusters summarises the projections of each surface. proj must be
// the projection of AssemblePointCloud(surfaces), so each surface owns a
// contiguous run of values.
func SurfaceClusters(surfaces []Surface, proj ProjectionSet) ([]SurfaceStats, error) {
	total := 0
	for _, s := range surfaces {
		total += len(s.Points)
	}
	if total != len(proj) {
		return nil, fmt.Errorf("%w: %d projections for %d surface points", ErrInvalidParameter, len(proj), total)
	}

	out := make([]SurfaceStats, 0, len(surfaces))
	start := 0
	for _, s := range surfaces {
		vals := proj[start : start+len(s.Points)]
		start += len(s.Points)

		st := SurfaceStats{SurfaceID: s.ID, Offset: s.Offset, Count: len(vals)}
		switch len(vals) {
		case 0:
		case 1:
			st.Mean = vals[0]
		default:
			mean, variance := stat.MeanVariance(vals, nil)
			st.Mean = mean
			// Rounding can push the variance of a constant run just below zero.
			st.StdDev = math.Sqrt(math.Max(variance, 0))
		}
		out = append(out, st)
	}
	return out, nil
}

// ClusterSpacing returns the differences between consecutive cluster means.
func ClusterSpacing(stats []SurfaceStats) []float64 {
	if len(stats) < 2 {
		return nil
	}
	gaps := make([]float64, len(stats)-1)
	for i := 1; i < len(stats); i++ {
		gaps[i-1] = stats[i].Mean - stats[i-1].Mean
	}
	return gaps
}
