package epidemic

import (
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

func sortedReal(e [2]complex128) []float64 {
	out := []float64{real(e[0]), real(e[1])}
	sort.Float64s(out)
	return out
}

func TestEigenvaluesDiagonal(t *testing.T) {
	eigs, err := Eigenvalues([2][2]float64{{-2, 0}, {0, -0.5}})
	if err != nil {
		t.Fatal(err)
	}

	got := sortedReal(eigs)
	if math.Abs(got[0]+2) > 1e-12 || math.Abs(got[1]+0.5) > 1e-12 {
		t.Errorf("eigenvalues = %v, want {-2, -0.5}", eigs)
	}
	if Classify(eigs, 1e-12) != StableNode {
		t.Errorf("expected stable node, got %s", Classify(eigs, 1e-12))
	}
}

func TestEigenvaluesRotation(t *testing.T) {
	eigs, err := Eigenvalues([2][2]float64{{0, -1}, {1, 0}})
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range eigs {
		if math.Abs(real(e)) > 1e-12 || math.Abs(math.Abs(imag(e))-1) > 1e-12 {
			t.Errorf("expected ±i, got %v", e)
		}
	}
	if c := Classify(eigs, 1e-9); c != Center {
		t.Errorf("expected center, got %s", c)
	}
}

func TestEigenvaluesMatchTraceDeterminant(t *testing.T) {
	j := Jacobian(0.05, 0.01, reference)
	eigs, err := Eigenvalues(j)
	if err != nil {
		t.Fatal(err)
	}

	tr := j[0][0] + j[1][1]
	det := j[0][0]*j[1][1] - j[0][1]*j[1][0]

	if cmplx.Abs(eigs[0]+eigs[1]-complex(tr, 0)) > 1e-12 {
		t.Errorf("sum of eigenvalues %v != trace %v", eigs[0]+eigs[1], tr)
	}
	if cmplx.Abs(eigs[0]*eigs[1]-complex(det, 0)) > 1e-12 {
		t.Errorf("product of eigenvalues %v != determinant %v", eigs[0]*eigs[1], det)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		eigs [2]complex128
		want Class
	}{
		{[2]complex128{-1, -2}, StableNode},
		{[2]complex128{complex(-0.1, 0.3), complex(-0.1, -0.3)}, StableFocus},
		{[2]complex128{complex(0.1, 0.3), complex(0.1, -0.3)}, UnstableFocus},
		{[2]complex128{1, 2}, UnstableNode},
		{[2]complex128{-1, 2}, Saddle},
		{[2]complex128{0, -1}, Degenerate},
	}

	for _, tt := range tests {
		if got := Classify(tt.eigs, 1e-12); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.eigs, got, tt.want)
		}
	}

	if !Stable([2]complex128{-1, complex(-0.5, 2)}) {
		t.Error("expected stable spectrum")
	}
	if Stable([2]complex128{-1, 0}) {
		t.Error("zero real part is not stable")
	}
}

func TestEquilibria(t *testing.T) {
	dfe := DiseaseFree(reference)
	dS, dI := Derivative(dfe.S, dfe.I, reference)
	if math.Abs(dS) > 1e-15 || dI != 0 {
		t.Errorf("disease-free equilibrium %v not stationary: (%v, %v)", dfe, dS, dI)
	}

	eq, ok := Endemic(reference)
	if !ok {
		t.Fatalf("expected endemic equilibrium for R0=%v", R0(reference))
	}
	dS, dI = Derivative(eq.S, eq.I, reference)
	if math.Abs(dS) > 1e-15 || math.Abs(dI) > 1e-15 {
		t.Errorf("endemic equilibrium %v not stationary: (%v, %v)", eq, dS, dI)
	}

	low := reference
	low.Beta = 0.05
	if R0(low) >= 1 {
		t.Fatalf("test setup: R0=%v", R0(low))
	}
	if _, ok := Endemic(low); ok {
		t.Error("endemic equilibrium should not exist for R0 < 1")
	}
}
