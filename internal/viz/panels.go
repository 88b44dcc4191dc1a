package viz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sirstab/internal/analysis"
	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/montecarlo"
)

const (
	plotHeight = 12
	histBins   = 30
)

// panel is one page of output. render gets the usable width in columns.
type panel struct {
	title  string
	render func(width int, color bool) string
}

func buildPanels(res *montecarlo.Result) []panel {
	panels := []panel{
		{title: "summary", render: func(int, bool) string { return summaryText(res) }},
	}
	if res.Example != nil && len(res.Example.Times) > 0 {
		panels = append(panels, panel{title: "dynamics", render: func(w int, c bool) string { return dynamicsPlot(res, w, c) }})
	}
	if res.Retained() == 0 {
		return panels
	}

	r0 := res.Column(func(r montecarlo.Record) float64 { return r.R0 })
	panels = append(panels, panel{title: "R0", render: func(w int, _ bool) string {
		return histogramPlot(r0, w, "retained R0 distribution")
	}})

	switch res.Mode {
	case montecarlo.ModeEigenvalues:
		first, second := res.EigenReal(0), res.EigenReal(1)
		panels = append(panels,
			panel{title: "eigenvalue 1", render: func(w int, _ bool) string {
				return histogramPlot(first, w, "real part of first eigenvalue")
			}},
			panel{title: "eigenvalue 2", render: func(w int, _ bool) string {
				return histogramPlot(second, w, "real part of second eigenvalue")
			}},
		)
	case montecarlo.ModeRatio:
		panels = append(panels, panel{title: "stability ratio", render: func(w int, _ bool) string {
			return ratioPlot(res.Ratios, w)
		}})
	}
	return panels
}

func dynamicsPlot(res *montecarlo.Result, width int, color bool) string {
	tr := res.Example
	ex := res.Options.Example
	opts := []asciigraph.Option{
		asciigraph.Height(plotHeight),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("S and I over t in [%g, %g] (beta=%g, u=%g)",
			tr.Times[0], tr.Times[len(tr.Times)-1], ex.Beta, ex.U)),
	}
	if color {
		opts = append(opts, asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red))
	}
	return asciigraph.PlotMany([][]float64{tr.Component(0), tr.Component(1)}, opts...)
}

func histogramPlot(values []float64, width int, caption string) string {
	h, err := analysis.NewHistogram(values, histBins)
	if err != nil {
		return "no data"
	}
	return asciigraph.Plot(h.Floats(),
		asciigraph.Height(plotHeight),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s, %d bins over [%.4g, %.4g]", caption, histBins, h.Edges[0], h.Edges[histBins])),
	)
}

func ratioPlot(ratios []float64, width int) string {
	if len(ratios) == 0 {
		return "no data"
	}
	return asciigraph.Plot(ratios,
		asciigraph.Height(plotHeight),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption(fmt.Sprintf("stability ratio per iteration, final %.4f", ratios[len(ratios)-1])),
	)
}

func summaryText(res *montecarlo.Result) string {
	var b strings.Builder
	o := res.Options

	fmt.Fprintf(&b, "%-12s %s\n", "mode", res.Mode)
	fmt.Fprintf(&b, "%-12s %d\n", "seed", res.Seed)
	fmt.Fprintf(&b, "%-12s %s\n", "integrator", o.Integrator)
	fmt.Fprintf(&b, "%-12s R0 > %g\n", "threshold", o.Threshold)
	fmt.Fprintf(&b, "%-12s beta in [%g, %g], u in [%g, %g], mu=%g, gamma=%g\n", "sampling",
		o.BetaRange.Min, o.BetaRange.Max, o.URange.Min, o.URange.Max, o.Mu, o.Gamma)
	fmt.Fprintf(&b, "%-12s %d\n", "drawn", res.Drawn)
	fmt.Fprintf(&b, "%-12s %d (%.1f%%)\n", "retained", res.Retained(), percent(res.Retained(), res.Drawn))
	fmt.Fprintf(&b, "%-12s %d\n", "rejected", res.Rejected)

	rep, err := analysis.SummarizeResult(res)
	if errors.Is(err, montecarlo.ErrNoSamples) {
		b.WriteString("\nno samples cleared the R0 threshold\n")
		return b.String()
	}
	if err != nil {
		fmt.Fprintf(&b, "\nsummary failed: %v\n", err)
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-10s %12s %12s %12s %12s %12s\n", "column", "min", "median", "mean", "max", "std")
	b.WriteString(strings.Repeat("-", 75) + "\n")
	rows := []summaryRow{
		{"R0", rep.R0},
		{"S_final", rep.SFinal},
		{"I_final", rep.IFinal},
	}
	if res.Mode == montecarlo.ModeEigenvalues {
		rows = append(rows, summaryRow{"Re(eig1)", rep.Eig1Real}, summaryRow{"Re(eig2)", rep.Eig2Real})
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-10s %12.5g %12.5g %12.5g %12.5g %12.5g\n", r.name, r.s.Min, r.s.Median, r.s.Mean, r.s.Max, r.s.StdDev)
	}

	switch res.Mode {
	case montecarlo.ModeEigenvalues:
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-12s %d/%d\n", "stable", rep.Stable, res.Retained())
		for _, c := range sortedClasses(rep.Classes) {
			fmt.Fprintf(&b, "  %-14s %d\n", c, rep.Classes[c])
		}
	case montecarlo.ModeRatio:
		final := 0.0
		if n := len(res.Ratios); n > 0 {
			final = res.Ratios[n-1]
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-12s %d/%d\n", "stable", res.StableCount, res.Retained())
		fmt.Fprintf(&b, "%-12s %.4f %s\n", "ratio", final, Sparkline(res.Ratios, 40))
	}
	return b.String()
}

type summaryRow struct {
	name string
	s    analysis.Summary
}

func sortedClasses(m map[epidemic.Class]int) []epidemic.Class {
	out := make([]epidemic.Class, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if m[out[i]] != m[out[j]] {
			return m[out[i]] > m[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// stableCount is the number of retained samples judged stable by the
// run's mode.
func stableCount(res *montecarlo.Result) int {
	if res.Mode == montecarlo.ModeRatio {
		return res.StableCount
	}
	n := 0
	for _, e := range res.Eigenvalues {
		if epidemic.Stable(e) {
			n++
		}
	}
	return n
}

func fraction(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of)
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}
