// Package main runs the invariant projection pipeline and renders its charts.
//
// It loads a JSON pipeline config (or the built-in defaults), applies any
// command-line overrides, runs the pipeline, writes a PNG figure and an
// interactive HTML page into a timestamped output directory, and can
// optionally serve the page over HTTP until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/banshee-data/invariant/internal/config"
	"github.com/banshee-data/invariant/internal/fsutil"
	"github.com/banshee-data/invariant/internal/monitoring"
	"github.com/banshee-data/invariant/internal/pipeline"
	"github.com/banshee-data/invariant/internal/render"
	"github.com/banshee-data/invariant/internal/timeutil"
	"github.com/banshee-data/invariant/internal/version"
	"github.com/google/uuid"
)

// options holds the parsed command line.
type options struct {
	ConfigPath  string
	OutDir      string
	WritePNG    bool
	WriteHTML   bool
	Listen      string
	Quiet       bool
	ShowVersion bool

	// Overrides holds only the pipeline flags that were set explicitly.
	Overrides config.PipelineConfig
}

// floatList is a comma-separated list of floats, e.g. "0,1,2.5".
type floatList []float64

func (f *floatList) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *floatList) Set(s string) error {
	var vals []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", part, err)
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return errors.New("offsets list is empty")
	}
	*f = vals
	return nil
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}

	fs.StringVar(&o.ConfigPath, "config", "", "Path to a pipeline config JSON file (defaults are used when empty)")
	fs.StringVar(&o.OutDir, "out", "plots", "Base directory for chart output")
	fs.BoolVar(&o.WritePNG, "png", true, "Write the two-panel PNG figure")
	fs.BoolVar(&o.WriteHTML, "html", true, "Write the interactive HTML page")
	fs.StringVar(&o.Listen, "listen", "", "Serve the interactive page on this address (e.g. :8080) until interrupted")
	fs.BoolVar(&o.Quiet, "quiet", false, "Suppress per-stage pipeline logging")
	fs.BoolVar(&o.ShowVersion, "version", false, "Print version and exit")

	surfaces := fs.Int("surfaces", 5, "Number of parallel surfaces")
	points := fs.Int("points", 50, "Samples per surface")
	xMin := fs.Float64("x-min", 0, "Lower bound of the log(G/R) range")
	xMax := fs.Float64("x-max", 5, "Upper bound of the log(G/R) range")
	slope := fs.Float64("slope", 0.5, "Common slope of the illumination lines (non-zero)")
	bins := fs.Int("bins", 30, "Histogram bin count")
	var offsets floatList
	fs.Var(&offsets, "offsets", "Comma-separated surface offsets (default: evenly spaced over [0, 4])")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "surfaces":
			o.Overrides.NumSurfaces = surfaces
		case "points":
			o.Overrides.PointsPerSurface = points
		case "x-min":
			o.Overrides.XMin = xMin
		case "x-max":
			o.Overrides.XMax = xMax
		case "slope":
			o.Overrides.Slope = slope
		case "bins":
			o.Overrides.BinCount = bins
		case "offsets":
			o.Overrides.Offsets = offsets
		}
	})
	return o, nil
}

// loadConfig returns the file config (or defaults) with flag overrides applied.
func loadConfig(o *options) (*config.PipelineConfig, error) {
	cfg := config.DefaultPipelineConfig()
	if o.ConfigPath != "" {
		loaded, err := config.LoadPipelineConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	ov := o.Overrides
	if ov.NumSurfaces != nil {
		cfg.NumSurfaces = ov.NumSurfaces
	}
	if ov.PointsPerSurface != nil {
		cfg.PointsPerSurface = ov.PointsPerSurface
	}
	if ov.XMin != nil {
		cfg.XMin = ov.XMin
	}
	if ov.XMax != nil {
		cfg.XMax = ov.XMax
	}
	if ov.Slope != nil {
		cfg.Slope = ov.Slope
	}
	if ov.BinCount != nil {
		cfg.BinCount = ov.BinCount
	}
	if ov.Offsets != nil {
		cfg.Offsets = ov.Offsets
		if ov.NumSurfaces == nil {
			n := len(ov.Offsets)
			cfg.NumSurfaces = &n
		}
	} else if ov.NumSurfaces != nil && len(cfg.Offsets) > 0 {
		// An explicit surface count replaces file offsets with even spacing.
		cfg.Offsets = nil
	}
	return cfg, nil
}

// run executes one pipeline run and writes its outputs. It returns the
// output directory.
func run(ctx context.Context, o *options, fsys fsutil.FileSystem, clock timeutil.Clock) (string, error) {
	cfg, err := loadConfig(o)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}

	runner := &pipeline.Runner{Clock: clock, NewRunID: uuid.NewString}
	res, err := runner.Run(cfg)
	if err != nil {
		return "", fmt.Errorf("pipeline: %w", err)
	}

	dir := render.OutputDir(o.OutDir, clock, res.RunID)
	if o.WritePNG {
		path := filepath.Join(dir, render.FigureFile)
		if err := render.WriteFigure(fsys, path, res); err != nil {
			return "", fmt.Errorf("write figure: %w", err)
		}
		log.Printf("Figure written to: %s", path)
	}
	if o.WriteHTML {
		path := filepath.Join(dir, render.PageFile)
		if err := render.WritePageFile(fsys, path, res); err != nil {
			return "", fmt.Errorf("write page: %w", err)
		}
		log.Printf("Interactive page written to: %s", path)
	}

	if o.Listen != "" {
		srv, err := render.NewServer(render.ServerConfig{Address: o.Listen, Result: res})
		if err != nil {
			return "", fmt.Errorf("chart server: %w", err)
		}
		if err := srv.Start(ctx); err != nil {
			return "", fmt.Errorf("chart server: %w", err)
		}
	}
	return dir, nil
}

func main() {
	o, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	if o.ShowVersion {
		fmt.Println(version.String())
		return
	}
	if o.Quiet {
		monitoring.SetLogger(nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, o, fsutil.OSFileSystem{}, timeutil.RealClock{}); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
