package render

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/invariant/internal/fsutil"
	"github.com/banshee-data/invariant/internal/pipeline"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WritePage renders the interactive HTML page: a scatter chart with one
// series per surface plus the direction, and a bar chart of the histogram.
func WritePage(w io.Writer, res *pipeline.Result) error {
	if res == nil {
		return errNoResult
	}

	page := components.NewPage()
	page.PageTitle = "Invariant Projection"
	page.AddCharts(cloudChart(res), histogramChart(res))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// WritePageFile writes the HTML page to path, creating parent directories.
func WritePageFile(fsys fsutil.FileSystem, path string, res *pipeline.Result) error {
	var buf bytes.Buffer
	if err := WritePage(&buf, res); err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func cloudChart(res *pipeline.Result) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Pixels in Log-Chromaticity Space",
			Subtitle: fmt.Sprintf("run=%s slope=%g points=%d", res.RunID, res.Family.Slope, res.Cloud.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "log(G/R)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "log(B/R)", NameLocation: "middle", NameGap: 30}),
	)

	colors := PaletteHex(len(res.Surfaces))
	for i, s := range res.Surfaces {
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, pt := range s.Points {
			data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y}})
		}
		scatter.AddSeries(fmt.Sprintf("Surface %d", s.ID), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[i]}),
		)
	}

	dir := []opts.ScatterData{
		{Value: []interface{}{0.0, 0.0}},
		{Value: []interface{}{arrowLength * res.Direction.X, arrowLength * res.Direction.Y}},
	}
	scatter.AddSeries("Projection Direction", dir,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#000000"}),
	)
	return scatter
}

func histogramChart(res *pipeline.Result) *charts.Bar {
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("bins=%d total=%d", len(res.Histogram.Bins), res.Histogram.Total())
	if res.Histogram.Degenerate {
		subtitle += " (all values equal)"
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Projection onto Invariant Direction (Greyscale)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Projected Intensity", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Pixels"}),
	)

	labels := make([]string, len(res.Histogram.Bins))
	data := make([]opts.BarData, len(res.Histogram.Bins))
	for i, b := range res.Histogram.Bins {
		labels[i] = fmt.Sprintf("%.3f", (b.Lower+b.Upper)/2)
		data[i] = opts.BarData{Value: b.Count}
	}
	bar.SetXAxis(labels).AddSeries("pixels", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#808080"}),
	)
	return bar
}
