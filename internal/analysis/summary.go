package analysis

import (
	"errors"

	"github.com/montanaflynn/stats"

	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/montecarlo"
)

var ErrEmpty = errors.New("analysis: empty sample")

type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
	Q25    float64
	Q75    float64
}

func Summarize(data []float64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, ErrEmpty
	}

	s := Summary{Count: len(data)}
	var err error

	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Q25, err = stats.Percentile(data, 25); err != nil {
		return s, err
	}
	if s.Q75, err = stats.Percentile(data, 75); err != nil {
		return s, err
	}
	return s, nil
}

// Report holds the column summaries of one run. Eigenvalue fields are only
// set in eigenvalue mode.
type Report struct {
	R0     Summary
	SFinal Summary
	IFinal Summary

	Eig1Real Summary
	Eig2Real Summary
	Classes  map[epidemic.Class]int
	Stable   int
}

// classTol is the magnitude below which an eigenvalue part counts as zero.
const classTol = 1e-12

func SummarizeResult(res *montecarlo.Result) (*Report, error) {
	if res.Retained() == 0 {
		return nil, montecarlo.ErrNoSamples
	}

	rep := &Report{}
	var err error
	if rep.R0, err = Summarize(res.Column(func(r montecarlo.Record) float64 { return r.R0 })); err != nil {
		return nil, err
	}
	if rep.SFinal, err = Summarize(res.Column(func(r montecarlo.Record) float64 { return r.S })); err != nil {
		return nil, err
	}
	if rep.IFinal, err = Summarize(res.Column(func(r montecarlo.Record) float64 { return r.I })); err != nil {
		return nil, err
	}

	if len(res.Eigenvalues) == 0 {
		return rep, nil
	}

	if rep.Eig1Real, err = Summarize(res.EigenReal(0)); err != nil {
		return nil, err
	}
	if rep.Eig2Real, err = Summarize(res.EigenReal(1)); err != nil {
		return nil, err
	}

	rep.Classes = make(map[epidemic.Class]int)
	for _, e := range res.Eigenvalues {
		rep.Classes[epidemic.Classify(e, classTol)]++
		if epidemic.Stable(e) {
			rep.Stable++
		}
	}
	return rep, nil
}
