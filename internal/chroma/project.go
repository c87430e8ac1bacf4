package chroma

import (
	"gonum.org/v1/gonum/mat"
)

// Project returns dot(d, p) for every point of the cloud, in cloud order.
// The whole cloud is projected as a single n×2 by 2×1 product.
func Project(pc PointCloud, d Direction) ProjectionSet {
	n := pc.Len()
	if n == 0 {
		return ProjectionSet{}
	}

	raw := make([]float64, 0, 2*n)
	for _, p := range pc.Points {
		raw = append(raw, p.X, p.Y)
	}
	points := mat.NewDense(n, 2, raw)
	dir := mat.NewVecDense(2, []float64{d.X, d.Y})

	out := make(ProjectionSet, n)
	mat.NewVecDense(n, out).MulVec(points, dir)
	return out
}
