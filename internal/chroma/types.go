package chroma

// Point is a single sample in log-chromaticity space.
// X is log(G/R) and Y is log(B/R).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Surface is one simulated material: a line of fixed slope sampled at
// varying illumination. IDs are 1-based.
type Surface struct {
	ID     int     `json:"id"`
	Offset float64 `json:"offset"`
	Points []Point `json:"points"`
}

// LineFamily describes the parallel lines to generate.
type LineFamily struct {
	NumSurfaces      int
	PointsPerSurface int
	XMin             float64
	XMax             float64
	Slope            float64
	Offsets          []float64
}

// PointCloud holds every surface sample in generation order.
// SurfaceIDs[i] is the ID of the surface that produced Points[i].
type PointCloud struct {
	Points     []Point `json:"points"`
	SurfaceIDs []int   `json:"surface_ids"`
}

// Len returns the number of points in the cloud.
func (pc PointCloud) Len() int {
	return len(pc.Points)
}

// Direction is a unit vector orthogonal to a line family's slope.
type Direction struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dot returns the scalar projection of p onto d.
func (d Direction) Dot(p Point) float64 {
	return d.X*p.X + d.Y*p.Y
}

// ProjectionSet holds one projected value per PointCloud entry, in order.
type ProjectionSet []float64

// HistogramBin is one bucket of a Histogram. Bins are half-open
// [Lower, Upper) except the last, which also includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is the binned distribution of a ProjectionSet.
// Degenerate is set when the projections were equal, or too close to
// split into distinct equal-width bins, and the interval was widened.
type Histogram struct {
	Bins       []HistogramBin `json:"bins"`
	Degenerate bool           `json:"degenerate"`
}

// Total returns the sum of all bin counts.
func (h Histogram) Total() int {
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	return total
}

// SurfaceStats summarises the projections of a single surface.
type SurfaceStats struct {
	SurfaceID int     `json:"surface_id"`
	Offset    float64 `json:"offset"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Count     int     `json:"count"`
}
