package chroma

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBinCount matches the bin count of the reference figure.
const DefaultBinCount = 30

// DegenerateHalfWidth is how far the binning interval is widened on each
// side when every projection has the same value.
const DegenerateHalfWidth = 0.5

// minBinULPs is the narrowest bin, in ULPs of the interval's magnitude,
// that still gets distinct dividers from floats.Span.
const minBinULPs = 4

// Bin partitions [min, max] of values into bins equal-width bins and counts
// membership. Bins are half-open except the last, which is closed.
func Bin(values ProjectionSet, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("%w: bin count must be at least 1, got %d", ErrInvalidParameter, bins)
	}
	if len(values) == 0 {
		return Histogram{}, fmt.Errorf("%w: cannot bin an empty projection set", ErrInvalidParameter)
	}
	for i, v := range values {
		if !isFinite(v) {
			return Histogram{}, fmt.Errorf("%w: projection %d is not finite (%v)", ErrInvalidParameter, i, v)
		}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	degenerate := tooNarrow(lo, hi, bins)
	if degenerate {
		half := math.Max(DegenerateHalfWidth, minBinULPs*float64(bins)*ulp(math.Max(math.Abs(lo), math.Abs(hi))))
		lo -= half
		hi += half
	}
	if !isFinite(hi - lo) {
		return Histogram{}, fmt.Errorf("%w: projection range [%v, %v] is too wide to bin", ErrInvalidParameter, lo, hi)
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram treats the last divider as exclusive; nudge it so
	// values equal to hi land in the final bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	counts := stat.Histogram(nil, dividers, sorted, nil)

	h := Histogram{Bins: make([]HistogramBin, bins), Degenerate: degenerate}
	for i := range h.Bins {
		h.Bins[i] = HistogramBin{
			Lower: dividers[i],
			Upper: dividers[i+1],
			Count: int(counts[i]),
		}
	}
	h.Bins[bins-1].Upper = hi
	return h, nil
}

// tooNarrow reports whether [lo, hi] cannot be split into bins bins of
// distinct, equal width.
func tooNarrow(lo, hi float64, bins int) bool {
	m := math.Max(math.Abs(lo), math.Abs(hi))
	return (hi-lo)/float64(bins) < minBinULPs*ulp(m)
}

// ulp returns the gap between v and the next float64 above it.
func ulp(v float64) float64 {
	return math.Nextafter(v, math.Inf(1)) - v
}
