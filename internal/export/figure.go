package export

import (
	"fmt"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/sirstab/internal/analysis"
	"github.com/san-kum/sirstab/internal/montecarlo"
)

const (
	panelWidth  = 480
	panelHeight = 400
	barWidth    = 14
	barGap      = 56
	histBins    = 30
)

var (
	blue   = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	orange = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	fill   = drawing.Color{R: 31, G: 119, B: 180, A: 178}
)

// scatterTitle names the R0 > 1 region for every mode; the retention
// threshold is reported by the run itself.
const scatterTitle = "Area of Stability (R0 > 1)"

func panelStyle() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}}
}

// bounds returns [min, max] of data, widened when the data is constant so
// the chart never sees a zero-width range.
func bounds(data []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.05, 0.5)
		return lo - pad, hi + pad
	}
	return lo, hi
}

func scatterPanel(res *montecarlo.Result) ([]byte, float64, float64, error) {
	betas := res.Column(func(r montecarlo.Record) float64 { return r.Beta })
	us := res.Column(func(r montecarlo.Record) float64 { return r.U })
	r0 := res.Column(func(r montecarlo.Record) float64 { return r.R0 })
	lo, hi := bounds(r0)

	xlo, xhi := bounds(append([]float64{res.Options.BetaRange.Min, res.Options.BetaRange.Max}, betas...))
	ylo, yhi := bounds(append([]float64{res.Options.URange.Min, res.Options.URange.Max}, us...))

	graph := chart.Chart{
		Title:      scatterTitle,
		Width:      panelWidth - barGap,
		Height:     panelHeight,
		Background: panelStyle(),
		XAxis:      chart.XAxis{Name: "beta", Range: &chart.ContinuousRange{Min: xlo, Max: xhi}},
		YAxis:      chart.YAxis{Name: "u", Range: &chart.ContinuousRange{Min: ylo, Max: yhi}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "samples",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return chart.Viridis(r0[index], lo, hi)
					},
				},
				XValues: betas,
				YValues: us,
			},
		},
	}

	svg, err := renderPanel(graph)
	return svg, lo, hi, err
}

func trajectoryPanel(res *montecarlo.Result) ([]byte, error) {
	tr := res.Example
	s := tr.Component(0)
	i := tr.Component(1)
	ylo, yhi := bounds(append(append([]float64{0}, s...), i...))

	graph := chart.Chart{
		Title:      "Dynamics of Infection Over Time",
		Width:      panelWidth,
		Height:     panelHeight,
		Background: panelStyle(),
		XAxis:      chart.XAxis{Name: "Time", Range: &chart.ContinuousRange{Min: tr.Times[0], Max: tr.Times[len(tr.Times)-1]}},
		YAxis:      chart.YAxis{Name: "Population", Range: &chart.ContinuousRange{Min: ylo, Max: yhi}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Susceptible",
				Style:   chart.Style{StrokeColor: blue, StrokeWidth: 2},
				XValues: tr.Times,
				YValues: s,
			},
			chart.ContinuousSeries{
				Name:    "Infected",
				Style:   chart.Style{StrokeColor: orange, StrokeWidth: 2},
				XValues: tr.Times,
				YValues: i,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPanel(graph)
}

// stepSeries outlines a histogram as a filled step curve.
func stepSeries(h analysis.Histogram) ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(h.Counts)+2)
	ys := make([]float64, 0, 2*len(h.Counts)+2)
	xs = append(xs, h.Edges[0])
	ys = append(ys, 0)
	for k, c := range h.Counts {
		xs = append(xs, h.Edges[k], h.Edges[k+1])
		ys = append(ys, float64(c), float64(c))
	}
	xs = append(xs, h.Edges[len(h.Edges)-1])
	ys = append(ys, 0)
	return xs, ys
}

func histogramPanel(values []float64, title, xlabel string) ([]byte, error) {
	h, err := analysis.NewHistogram(values, histBins)
	if err != nil {
		return nil, err
	}
	xs, ys := stepSeries(h)
	_, top := bounds(ys)

	graph := chart.Chart{
		Title:      title,
		Width:      panelWidth,
		Height:     panelHeight,
		Background: panelStyle(),
		XAxis:      chart.XAxis{Name: xlabel, Range: &chart.ContinuousRange{Min: h.Edges[0], Max: h.Edges[len(h.Edges)-1]}},
		YAxis:      chart.YAxis{Name: "Frequency", Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{StrokeColor: blue, StrokeWidth: 1, FillColor: fill},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return renderPanel(graph)
}

func ratioPanel(res *montecarlo.Result) ([]byte, error) {
	xs := make([]float64, len(res.Ratios))
	for k := range xs {
		xs[k] = float64(k)
	}
	xhi := math.Max(1, float64(len(xs)-1))
	_, yhi := bounds(append([]float64{0, 1}, res.Ratios...))

	series := chart.ContinuousSeries{
		Style:   chart.Style{StrokeColor: blue, StrokeWidth: 2},
		XValues: xs,
		YValues: res.Ratios,
	}
	if len(res.Ratios) == 0 {
		// no successful checks: keep the axes and draw nothing
		series = chart.ContinuousSeries{
			Style:   chart.Style{StrokeWidth: chart.Disabled},
			XValues: []float64{0},
			YValues: []float64{0},
		}
	}

	graph := chart.Chart{
		Title:      "Stability Ratio per Iteration",
		Width:      2 * panelWidth,
		Height:     panelHeight / 2,
		Background: panelStyle(),
		XAxis:      chart.XAxis{Name: "Iteration", Range: &chart.ContinuousRange{Min: 0, Max: xhi}},
		YAxis:      chart.YAxis{Name: "Stability Ratio", Range: &chart.ContinuousRange{Min: 0, Max: yhi * 1.05}},
		Series:     []chart.Series{series},
	}
	return renderPanel(graph)
}

// Figure renders the full diagnostic figure for a run as an SVG document.
func Figure(res *montecarlo.Result) ([]byte, error) {
	if res == nil || res.Retained() == 0 {
		return nil, montecarlo.ErrNoSamples
	}
	if res.Example == nil || len(res.Example.Times) == 0 {
		return nil, fmt.Errorf("figure: missing example trajectory")
	}

	scatter, lo, hi, err := scatterPanel(res)
	if err != nil {
		return nil, fmt.Errorf("scatter panel: %w", err)
	}
	dynamics, err := trajectoryPanel(res)
	if err != nil {
		return nil, fmt.Errorf("trajectory panel: %w", err)
	}

	panels := []panel{
		{X: 0, Y: 0, SVG: scatter},
		{X: panelWidth, Y: 0, SVG: dynamics},
	}
	bar := colorbar(panelWidth-barGap+4, 60, barWidth, panelHeight-120, lo, hi, "R0")

	switch res.Mode {
	case montecarlo.ModeEigenvalues:
		first, err := histogramPanel(res.EigenReal(0), "Histogram of First Eigenvalue", "Real Part of First Eigenvalue")
		if err != nil {
			return nil, fmt.Errorf("first eigenvalue panel: %w", err)
		}
		second, err := histogramPanel(res.EigenReal(1), "Histogram of Second Eigenvalue", "Real Part of Second Eigenvalue")
		if err != nil {
			return nil, fmt.Errorf("second eigenvalue panel: %w", err)
		}
		panels = append(panels,
			panel{X: 0, Y: panelHeight, SVG: first},
			panel{X: panelWidth, Y: panelHeight, SVG: second},
		)
		return compose(2*panelWidth, 2*panelHeight, panels, bar), nil

	case montecarlo.ModeRatio:
		ratio, err := ratioPanel(res)
		if err != nil {
			return nil, fmt.Errorf("ratio panel: %w", err)
		}
		panels = append(panels, panel{X: 0, Y: panelHeight, SVG: ratio})
		return compose(2*panelWidth, panelHeight+panelHeight/2, panels, bar), nil
	}

	return nil, fmt.Errorf("figure: %q: %w", res.Mode, montecarlo.ErrUnknownMode)
}

// WriteFigure renders the figure and writes it to path.
func WriteFigure(path string, res *montecarlo.Result) error {
	data, err := Figure(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
