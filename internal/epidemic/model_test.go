package epidemic

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sirstab/internal/dynamo"
)

var reference = Params{Beta: 0.4, U: 0.05, Mu: 0.01, Gamma: 0.01}

func TestR0Reference(t *testing.T) {
	want := 0.4 * 0.01 * 0.95 / (0.06 * 0.02)
	if got := R0(reference); math.Abs(got-want) > 1e-12 {
		t.Errorf("R0 = %v, want %v", got, want)
	}
	if math.Abs(R0(reference)-19.0/6.0) > 1e-12 {
		t.Errorf("R0 = %v, want 3.1666...", R0(reference))
	}
}

func TestR0VanishesWithBeta(t *testing.T) {
	p := reference
	prev := math.Inf(1)
	for _, beta := range []float64{1, 0.1, 0.01, 1e-6, 0} {
		p.Beta = beta
		r := R0(p)
		if math.IsInf(r, 0) || math.IsNaN(r) {
			t.Fatalf("beta=%v: R0 not finite: %v", beta, r)
		}
		if r > prev {
			t.Errorf("beta=%v: R0 increased to %v", beta, r)
		}
		prev = r
	}
	if prev != 0 {
		t.Errorf("R0 at beta=0 = %v, want 0", prev)
	}
}

func TestDerivativeAtOrigin(t *testing.T) {
	for _, mu := range []float64{0, 0.01, 0.3} {
		p := reference
		p.Mu = mu
		dS, dI := Derivative(0, 0, p)
		if dS != mu || dI != 0 {
			t.Errorf("mu=%v: derivative at origin = (%v, %v), want (%v, 0)", mu, dS, dI, mu)
		}
	}
}

func TestJacobianReference(t *testing.T) {
	j := Jacobian(0.05, 0.01, reference)

	want := [2][2]float64{
		{-0.0638, -0.019},
		{0.0038, -0.001},
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if math.Abs(j[r][c]-want[r][c]) > 1e-12 {
				t.Errorf("J[%d][%d] = %v, want %v", r+1, c+1, j[r][c], want[r][c])
			}
		}
	}
}

func TestJacobianMatchesFiniteDifference(t *testing.T) {
	points := []struct {
		s, i float64
		p    Params
	}{
		{0.05, 0.01, reference},
		{0.3, 0.2, Params{Beta: 0.9, U: 0.3, Mu: 0.01, Gamma: 0.01}},
		{0.8, 0.05, Params{Beta: 0.55, U: 0.01, Mu: 0.05, Gamma: 0.2}},
	}

	const h = 1e-6
	for _, pt := range points {
		j := Jacobian(pt.s, pt.i, pt.p)

		sp, ip := Derivative(pt.s+h, pt.i, pt.p)
		sm, im := Derivative(pt.s-h, pt.i, pt.p)
		dsds, dids := (sp-sm)/(2*h), (ip-im)/(2*h)

		sp, ip = Derivative(pt.s, pt.i+h, pt.p)
		sm, im = Derivative(pt.s, pt.i-h, pt.p)
		dsdi, didi := (sp-sm)/(2*h), (ip-im)/(2*h)

		got := []float64{j[0][0], j[0][1], j[1][0], j[1][1]}
		want := []float64{dsds, dsdi, dids, didi}
		for k := range got {
			if math.Abs(got[k]-want[k]) > 1e-8 {
				t.Errorf("%v at (%v, %v): entry %d = %v, finite difference %v", pt.p, pt.s, pt.i, k, got[k], want[k])
			}
		}
	}
}

func TestSIRSystem(t *testing.T) {
	m := NewSIR(reference)

	if m.StateDim() != 2 {
		t.Errorf("expected state dim 2, got %d", m.StateDim())
	}

	dx := m.Derive(dynamo.State{0.05, 0.01}, 123)
	dS, dI := Derivative(0.05, 0.01, reference)
	if dx[0] != dS || dx[1] != dI {
		t.Errorf("Derive = %v, want (%v, %v)", dx, dS, dI)
	}

	if err := m.SetParam("beta", 0.7); err != nil {
		t.Fatal(err)
	}
	if m.GetParams()["beta"] != 0.7 {
		t.Errorf("beta not updated: %v", m.GetParams())
	}
	if err := m.SetParam("u", -1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if err := m.SetParam("delta", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
