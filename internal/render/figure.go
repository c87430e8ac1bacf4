package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	"github.com/banshee-data/invariant/internal/fsutil"
	"github.com/banshee-data/invariant/internal/pipeline"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	figureWidth  = 12 * vg.Inch
	figureHeight = 5 * vg.Inch

	// arrowLength is the drawn length of the direction vector in data units.
	arrowLength = 2.0
)

var errNoResult = errors.New("render: nil pipeline result")

// WriteFigurePNG draws the two-panel figure as PNG: the surfaces in
// log-chromaticity space with the projection direction on the left, and
// the histogram of projected values on the right.
func WriteFigurePNG(w io.Writer, res *pipeline.Result) error {
	if res == nil {
		return errNoResult
	}

	left, err := cloudPlot(res)
	if err != nil {
		return fmt.Errorf("point cloud plot: %w", err)
	}
	right, err := histogramPlot(res)
	if err != nil {
		return fmt.Errorf("histogram plot: %w", err)
	}

	img := vgimg.New(figureWidth, figureHeight)
	dc := draw.New(img)

	plots := [][]*plot.Plot{{left, right}}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteFigure writes the PNG figure to path, creating parent directories.
func WriteFigure(fsys fsutil.FileSystem, path string, res *pipeline.Result) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteFigurePNG(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cloudPlot shows every surface as its own scatter series plus the
// invariant direction as an arrow from the origin.
func cloudPlot(res *pipeline.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Pixels in Log-Chromaticity Space"
	p.X.Label.Text = "log(G/R)"
	p.Y.Label.Text = "log(B/R)"
	p.Add(plotter.NewGrid())

	colors := Palette(len(res.Surfaces))
	for i, s := range res.Surfaces {
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = colors[i]
		sc.GlyphStyle.Radius = vg.Points(2)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(fmt.Sprintf("Surface %d", s.ID), sc)
	}

	tip := plotter.XY{X: arrowLength * res.Direction.X, Y: arrowLength * res.Direction.Y}
	shaft, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, tip})
	if err != nil {
		return nil, err
	}
	shaft.Color = color.Black
	shaft.Width = vg.Points(2)

	head, err := plotter.NewScatter(plotter.XYs{tip})
	if err != nil {
		return nil, err
	}
	head.GlyphStyle.Color = color.Black
	head.GlyphStyle.Radius = vg.Points(4)
	head.GlyphStyle.Shape = draw.TriangleGlyph{}

	p.Add(shaft, head)
	p.Legend.Add("Projection Direction", shaft)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// histogramPlot draws the bins computed by the pipeline rather than
// re-binning, so the chart matches Result.Histogram exactly.
func histogramPlot(res *pipeline.Result) (*plot.Plot, error) {
	if len(res.Histogram.Bins) == 0 {
		return nil, errors.New("empty histogram")
	}

	p := plot.New()
	p.Title.Text = "Projection onto Invariant Direction (Greyscale)"
	p.X.Label.Text = "Projected Intensity"
	p.Y.Label.Text = "Number of Pixels"
	p.Add(plotter.NewGrid())

	bins := make([]plotter.HistogramBin, len(res.Histogram.Bins))
	for i, b := range res.Histogram.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Lower, Max: b.Upper, Weight: float64(b.Count)}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: color.Gray{Y: 128},
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(h)
	return p, nil
}
