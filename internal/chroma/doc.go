// Package chroma owns the numerical core of the invariant projection.
//
// Responsibilities: generating a family of parallel lines in 2D
// log-chromaticity space, assembling them into a tagged point cloud,
// solving the direction orthogonal to the shared slope, projecting the
// cloud onto that direction, and binning the projections.
// Key types: Surface, PointCloud, Direction, ProjectionSet, Histogram.
//
// Every stage is a pure function over immutable values. Precondition
// failures wrap ErrInvalidParameter and are reported before any work is
// done. No plotting or file I/O is allowed in this package.
package chroma
