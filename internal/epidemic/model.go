package epidemic

import (
	"fmt"

	"github.com/san-kum/sirstab/internal/dynamo"
)

type Params struct {
	Beta  float64 `yaml:"beta"`
	U     float64 `yaml:"u"`
	Mu    float64 `yaml:"mu"`
	Gamma float64 `yaml:"gamma"`
}

func (p Params) String() string {
	return fmt.Sprintf("beta=%.4f u=%.4f mu=%.4f gamma=%.4f", p.Beta, p.U, p.Mu, p.Gamma)
}

// effective transmission rate after intervention
func (p Params) contact() float64 { return p.Beta * (1 - p.U) }

// Derivative returns (dS/dt, dI/dt).
func Derivative(s, i float64, p Params) (float64, float64) {
	b := p.contact()
	dS := p.Mu - b*s*i - (p.Mu+p.U)*s
	dI := b*s*i - (p.Gamma+p.Mu)*i
	return dS, dI
}

// Jacobian returns the partial derivatives of [Derivative] with respect to
// (S, I), row-major.
func Jacobian(s, i float64, p Params) [2][2]float64 {
	b := p.contact()
	return [2][2]float64{
		{-b*i - (p.Mu + p.U), -b * s},
		{b * i, b*s - (p.Gamma + p.Mu)},
	}
}

// R0 is the basic reproduction number beta*mu*(1-u) / ((u+mu)(gamma+mu)).
func R0(p Params) float64 {
	return p.Beta * p.Mu * (1 - p.U) / ((p.U + p.Mu) * (p.Gamma + p.Mu))
}

// SIR adapts the model to dynamo.System. Time is ignored.
type SIR struct {
	p Params
}

func NewSIR(p Params) *SIR { return &SIR{p: p} }

func (m *SIR) StateDim() int { return 2 }

func (m *SIR) Params() Params { return m.p }

func (m *SIR) Derive(x dynamo.State, _ float64) dynamo.State {
	dS, dI := Derivative(x[0], x[1], m.p)
	return dynamo.State{dS, dI}
}

func (m *SIR) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.p.Beta, "u": m.p.U, "mu": m.p.Mu, "gamma": m.p.Gamma}
}

func (m *SIR) SetParam(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s=%v: %w", name, v, dynamo.ErrParameterBounds)
	}
	switch name {
	case "beta":
		m.p.Beta = v
	case "u":
		m.p.U = v
	case "mu":
		m.p.Mu = v
	case "gamma":
		m.p.Gamma = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
