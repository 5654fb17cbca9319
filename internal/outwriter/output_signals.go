package outwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// signalsOutputPath returns the configured output file, or a name derived from the joint log.
func signalsOutputPath(signals *schema.SignalSet, cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	base := filepath.Base(signals.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "gaitscore"
	}
	return fmt.Sprintf("%s_signals.%s", base, cfg.PlotFormat)
}

// WriteSignalPlot renders the ankle height traces with their strike markers.
func WriteSignalPlot(signals *schema.SignalSet, cfg *contract.Config) error {
	path := signalsOutputPath(signals, cfg)
	switch cfg.PlotFormat {
	case schema.PNGPlot:
		return writeWithFile(path, func(w io.Writer) error {
			return writeSignalsPNG(w, signals)
		}, "Wrote PNG plot")
	default:
		return writeWithFile(path, func(w io.Writer) error {
			return writeSignalsHTML(w, signals)
		}, "Wrote HTML plot")
	}
}

// strikePoints returns the (frame, value) pairs of a trace at its strike frames.
func strikePoints(trace schema.SignalTrace) [][2]float64 {
	index := make(map[int]int, len(trace.Frames))
	for i, f := range trace.Frames {
		index[f] = i
	}
	points := make([][2]float64, 0, len(trace.Strikes))
	for _, f := range trace.Strikes {
		if i, ok := index[f]; ok {
			points = append(points, [2]float64{float64(f), trace.Values[i]})
		}
	}
	return points
}

// writeSignalsHTML renders an interactive go-echarts page.
func writeSignalsHTML(w io.Writer, signals *schema.SignalSet) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Gait Strike Signals", Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Ankle height", Subtitle: fmt.Sprintf("source=%s fps=%g", signals.Source, signals.FPS)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "height", NameLocation: "middle", NameGap: 40}),
	)

	strikes := charts.NewScatter()
	for _, trace := range []schema.SignalTrace{signals.Left, signals.Right} {
		data := make([]opts.LineData, len(trace.Frames))
		for i, f := range trace.Frames {
			data[i] = opts.LineData{Value: []any{f, trace.Values[i]}}
		}
		line.AddSeries(trace.Side.String(), data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

		points := strikePoints(trace)
		marks := make([]opts.ScatterData, len(points))
		for i, p := range points {
			marks[i] = opts.ScatterData{Value: []any{p[0], p[1]}}
		}
		strikes.AddSeries(trace.Side.String()+" strikes", marks, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	}
	line.Overlap(strikes)

	return line.Render(w)
}

// writeSignalsPNG renders a static gonum/plot chart.
func writeSignalsPNG(w io.Writer, signals *schema.SignalSet) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Ankle height: %s", filepath.Base(signals.Source))
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "height"
	p.Add(plotter.NewGrid())

	for i, trace := range []schema.SignalTrace{signals.Left, signals.Right} {
		pts := make(plotter.XYs, len(trace.Frames))
		for j, f := range trace.Frames {
			pts[j] = plotter.XY{X: float64(f), Y: trace.Values[j]}
		}
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to create %s line: %w", trace.Side, err)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(trace.Side.String(), l)

		marks := strikePoints(trace)
		if len(marks) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(marks))
		for j, m := range marks {
			xys[j] = plotter.XY{X: m[0], Y: m[1]}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to create %s strike markers: %w", trace.Side, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
	}

	wt, err := p.WriterTo(12*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
