package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/montecarlo"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}

	if s.Count != 5 || s.Min != 1 || s.Max != 5 {
		t.Errorf("unexpected bounds: %+v", s)
	}
	if s.Mean != 3 || s.Median != 3 {
		t.Errorf("expected mean and median 3, got %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(2)) > 1e-12 {
		t.Errorf("expected population std dev sqrt(2), got %f", s.StdDev)
	}

	if _, err := Summarize(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestSummarizeResult(t *testing.T) {
	res := &montecarlo.Result{
		Mode: montecarlo.ModeEigenvalues,
		Records: []montecarlo.Record{
			{Beta: 0.5, U: 0.1, R0: 2, S: 0.2, I: 0.1},
			{Beta: 0.9, U: 0.05, R0: 4, S: 0.1, I: 0.2},
		},
		Eigenvalues: [][2]complex128{
			{complex(-0.1, 0.2), complex(-0.1, -0.2)},
			{-0.3, -0.05},
		},
	}

	rep, err := SummarizeResult(res)
	if err != nil {
		t.Fatal(err)
	}

	if rep.R0.Mean != 3 {
		t.Errorf("expected mean R0 3, got %f", rep.R0.Mean)
	}
	if rep.Eig1Real.Min != -0.3 || rep.Eig2Real.Max != -0.05 {
		t.Errorf("unexpected eigenvalue summaries: %+v %+v", rep.Eig1Real, rep.Eig2Real)
	}
	if rep.Stable != 2 {
		t.Errorf("expected 2 stable spectra, got %d", rep.Stable)
	}
	if rep.Classes[epidemic.StableFocus] != 1 || rep.Classes[epidemic.StableNode] != 1 {
		t.Errorf("unexpected classes: %v", rep.Classes)
	}

	if _, err := SummarizeResult(&montecarlo.Result{}); !errors.Is(err, montecarlo.ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestSummarizeResultRatioMode(t *testing.T) {
	res := &montecarlo.Result{
		Mode:    montecarlo.ModeRatio,
		Records: []montecarlo.Record{{R0: 1.5, S: 0.3, I: 0.01}},
		Ratios:  []float64{1},
	}

	rep, err := SummarizeResult(res)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Classes != nil || rep.Eig1Real.Count != 0 {
		t.Error("ratio mode report should not carry eigenvalue summaries")
	}
}

func TestHistogram(t *testing.T) {
	data := []float64{0, 0.1, 0.2, 0.5, 0.9, 1.0}
	h, err := NewHistogram(data, 5)
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total != len(data) {
		t.Errorf("counts sum to %d, want %d", total, len(data))
	}
	if h.Counts[0] != 2 || h.Counts[4] != 2 {
		t.Errorf("unexpected counts %v", h.Counts)
	}
	if h.Edges[0] != 0 || h.Edges[5] != 1 {
		t.Errorf("unexpected edges %v", h.Edges)
	}
	if math.Abs(h.Center(0)-0.1) > 1e-12 {
		t.Errorf("center of first bin = %f", h.Center(0))
	}

	flat, err := NewHistogram([]float64{2, 2, 2}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if flat.Counts[1] != 3 {
		t.Errorf("constant sample should land in the middle bin, got %v", flat.Counts)
	}

	if _, err := NewHistogram(nil, 3); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}
