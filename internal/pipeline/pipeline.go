package pipeline

import (
	"fmt"
	"time"

	"github.com/banshee-data/invariant/internal/chroma"
	"github.com/banshee-data/invariant/internal/config"
	"github.com/banshee-data/invariant/internal/monitoring"
	"github.com/banshee-data/invariant/internal/timeutil"
	"github.com/google/uuid"
)

// Result holds every intermediate and final value of one run.
type Result struct {
	RunID       string                `json:"run_id"`
	Family      chroma.LineFamily     `json:"-"`
	BinCount    int                   `json:"bin_count"`
	Surfaces    []chroma.Surface      `json:"surfaces"`
	Cloud       chroma.PointCloud     `json:"cloud"`
	Direction   chroma.Direction      `json:"direction"`
	Scale       float64               `json:"scale"`
	Projections chroma.ProjectionSet  `json:"projections"`
	Histogram   chroma.Histogram      `json:"histogram"`
	Clusters    []chroma.SurfaceStats `json:"clusters"`
	Elapsed     time.Duration         `json:"elapsed_ns"`
}

// Runner executes pipeline runs. The zero value is not usable; use NewRunner.
type Runner struct {
	Clock    timeutil.Clock
	NewRunID func() string
}

// NewRunner returns a Runner on the real clock with random run IDs.
func NewRunner() *Runner {
	return &Runner{
		Clock:    timeutil.RealClock{},
		NewRunID: uuid.NewString,
	}
}

// Run executes one pipeline run with a fresh Runner.
func Run(cfg *config.PipelineConfig) (*Result, error) {
	return NewRunner().Run(cfg)
}

// Run validates cfg and executes every stage in order. A nil cfg runs the
// defaults. Nothing is computed if validation fails.
func (r *Runner) Run(cfg *config.PipelineConfig) (*Result, error) {
	if cfg == nil {
		cfg = config.EmptyPipelineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	res := &Result{
		RunID:    r.NewRunID(),
		Family:   cfg.LineFamily(),
		BinCount: cfg.GetBinCount(),
	}
	start := r.Clock.Now()

	t := r.Clock.Now()
	surfaces, err := chroma.GenerateSurfaces(res.Family)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	res.Surfaces = surfaces
	res.Cloud = chroma.AssemblePointCloud(surfaces)
	monitoring.LogStage("generate", res.Cloud.Len(), "points", r.Clock.Since(t))

	res.Direction, err = chroma.SolveDirection(res.Family.Slope)
	if err != nil {
		return nil, fmt.Errorf("solve direction: %w", err)
	}
	res.Scale, err = chroma.InvarianceScale(res.Family.Slope)
	if err != nil {
		return nil, fmt.Errorf("solve direction: %w", err)
	}
	monitoring.Logf("[direction] slope=%.4g direction=(%.4f, %.4f) scale=%.4f",
		res.Family.Slope, res.Direction.X, res.Direction.Y, res.Scale)

	t = r.Clock.Now()
	res.Projections = chroma.Project(res.Cloud, res.Direction)
	monitoring.LogStage("project", len(res.Projections), "values", r.Clock.Since(t))

	t = r.Clock.Now()
	res.Histogram, err = chroma.Bin(res.Projections, res.BinCount)
	if err != nil {
		return nil, fmt.Errorf("bin: %w", err)
	}
	monitoring.LogStage("bin", len(res.Histogram.Bins), "bins", r.Clock.Since(t))
	if res.Histogram.Degenerate {
		monitoring.Logf("[bin] projections (nearly) equal; interval widened by at least ±%g", chroma.DegenerateHalfWidth)
	}

	res.Clusters, err = chroma.SurfaceClusters(res.Surfaces, res.Projections)
	if err != nil {
		return nil, fmt.Errorf("clusters: %w", err)
	}
	for _, c := range res.Clusters {
		monitoring.Logf("[cluster] surface=%d offset=%.4g mean=%.6f std=%.3g n=%d",
			c.SurfaceID, c.Offset, c.Mean, c.StdDev, c.Count)
	}

	res.Elapsed = r.Clock.Since(start)
	monitoring.Logf("[run %s] done in %s", res.RunID, res.Elapsed)
	return res, nil
}

// SurfacePoints returns the cloud points belonging to the given surface,
// in sampling order.
func (res *Result) SurfacePoints(id int) []chroma.Point {
	var pts []chroma.Point
	for i, sid := range res.Cloud.SurfaceIDs {
		if sid == id {
			pts = append(pts, res.Cloud.Points[i])
		}
	}
	return pts
}
