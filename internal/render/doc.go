// Package render is the presentation side of the invariant projection.
//
// It turns a pipeline.Result into a two-panel PNG figure (gonum/plot), an
// interactive HTML page (go-echarts), and an HTTP server that serves the
// page alongside the histogram as JSON. No numerical work happens here;
// everything drawn comes straight from the Result.
package render
