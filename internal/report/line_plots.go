package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/coil_analyzer_go/internal/analysis"
)

var (
	traceColor  = color.RGBA{B: 200, A: 255}
	troughColor = color.RGBA{R: 255, A: 255}
	resultColor = color.RGBA{G: 128, B: 128, A: 255}
	cutoffColor = color.Gray{Y: 128}
)

// TracePlotKey is the image key of a test's current plot.
func TracePlotKey(test string) string {
	return "trace_" + test
}

// ResultPlotKey is the image key of the voltage vs result plot.
const ResultPlotKey = "results"

// CreateTracePlot draws the active-region current against time and marks the
// detected troughs and, when a window exists, its cutoff.
func CreateTracePlot(test *analysis.TestAnalysis) ([]byte, error) {
	if test == nil || test.Trace == nil || len(test.Trace.Samples) == 0 {
		return nil, fmt.Errorf("no trace samples to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Time vs Current", test.Test)
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Current"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(test.Trace.Samples))
	for i, s := range test.Trace.Samples {
		pts[i] = plotter.XY{X: s.Time, Y: s.Current}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create current line: %v", err)
	}
	line.Color = traceColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("Current", line)

	if len(test.Troughs) > 0 {
		marks := make(plotter.XYs, len(test.Troughs))
		for i, tr := range test.Troughs {
			marks[i] = plotter.XY{X: tr.Time, Y: tr.Current}
		}
		scatter, err := plotter.NewScatter(marks)
		if err != nil {
			return nil, fmt.Errorf("failed to create trough markers: %v", err)
		}
		scatter.GlyphStyle.Color = troughColor
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add("Local minima", scatter)
	}

	if test.Window != nil {
		_, yMax := currentRange(test.Trace)
		cut, err := plotter.NewLine(plotter.XYs{{X: test.Cutoff, Y: 0}, {X: test.Cutoff, Y: yMax}})
		if err == nil {
			cut.Color = cutoffColor
			cut.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
			p.Add(cut)
			p.Legend.Add(fmt.Sprintf("Cutoff %.2f ms", test.Cutoff), cut)
		}
	}

	p.Legend.Top = true
	return renderPNG(p, 800, 400)
}

// CreateResultPlot draws the representative voltage of every ranked test
// against its energy balance, labelled with the test names.
func CreateResultPlot(table *analysis.ResultTable) ([]byte, error) {
	rows := table.Rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("no results to plot")
	}

	p := plot.New()
	p.Title.Text = "Most Frequent Voltage vs Result"
	p.X.Label.Text = "Most frequent voltage"
	p.Y.Label.Text = "Result"
	p.Add(plotter.NewGrid())

	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(rows)),
		Labels: make([]string, len(rows)),
	}
	for i, r := range rows {
		labels.XYs[i] = plotter.XY{X: r.RepresentativeVoltage, Y: r.Result}
		labels.Labels[i] = r.Test
	}

	line, points, err := plotter.NewLinePoints(labels.XYs)
	if err != nil {
		return nil, fmt.Errorf("failed to create result line: %v", err)
	}
	line.Color = resultColor
	points.GlyphStyle.Color = resultColor
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(line, points)
	p.Legend.Add("Result", line, points)

	text, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to create labels: %v", err)
	}
	p.Add(text)

	return renderPNG(p, 800, 400)
}

func currentRange(trace *analysis.Trace) (low, high float64) {
	low, high = trace.Samples[0].Current, trace.Samples[0].Current
	for _, s := range trace.Samples[1:] {
		if s.Current < low {
			low = s.Current
		}
		if s.Current > high {
			high = s.Current
		}
	}
	return low, high
}

func renderPNG(p *plot.Plot, width, height float64) ([]byte, error) {
	writer, err := p.WriterTo(vg.Points(width), vg.Points(height), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
