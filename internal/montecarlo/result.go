package montecarlo

import (
	"github.com/san-kum/sirstab/internal/dynamo"
	"github.com/san-kum/sirstab/internal/epidemic"
)

// Record is one retained sample and its simulated end state.
type Record struct {
	Beta float64
	U    float64
	R0   float64
	S    float64
	I    float64
}

func (r Record) Params(mu, gamma float64) epidemic.Params {
	return epidemic.Params{Beta: r.Beta, U: r.U, Mu: mu, Gamma: gamma}
}

type Result struct {
	Mode    Mode
	Options Options
	Seed    int64

	Records []Record

	// Eigenvalues is parallel to Records in ModeEigenvalues.
	Eigenvalues [][2]complex128

	// Ratios and StableCount are filled in ModeRatio.
	Ratios      []float64
	StableCount int

	Drawn    int
	Rejected int

	Example *dynamo.Trajectory
}

func (r *Result) Retained() int { return len(r.Records) }

// Column extracts one field of every record.
func (r *Result) Column(f func(Record) float64) []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = f(rec)
	}
	return out
}

// EigenReal returns the real parts of the k-th eigenvalue of every record.
func (r *Result) EigenReal(k int) []float64 {
	out := make([]float64, len(r.Eigenvalues))
	for i, e := range r.Eigenvalues {
		out[i] = real(e[k])
	}
	return out
}
