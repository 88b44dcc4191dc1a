package epidemic

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var ErrEigenFailed = errors.New("epidemic: eigen decomposition failed")

// Eigenvalues of a 2x2 real matrix. The order is whatever the
// factorization produces and carries no meaning.
func Eigenvalues(j [2][2]float64) ([2]complex128, error) {
	a := mat.NewDense(2, 2, []float64{j[0][0], j[0][1], j[1][0], j[1][1]})

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return [2]complex128{}, ErrEigenFailed
	}

	vals := eig.Values(nil)
	return [2]complex128{vals[0], vals[1]}, nil
}

type Class string

const (
	StableNode    Class = "stable node"
	StableFocus   Class = "stable focus"
	UnstableNode  Class = "unstable node"
	UnstableFocus Class = "unstable focus"
	Saddle        Class = "saddle"
	Center        Class = "center"
	Degenerate    Class = "degenerate"
)

// Classify labels a planar equilibrium from its eigenvalues. tol decides
// when a real or imaginary part counts as zero.
func Classify(eigs [2]complex128, tol float64) Class {
	r1, r2 := real(eigs[0]), real(eigs[1])
	oscillating := math.Abs(imag(eigs[0])) > tol || math.Abs(imag(eigs[1])) > tol

	switch {
	case cmplx.IsNaN(eigs[0]) || cmplx.IsNaN(eigs[1]):
		return Degenerate
	case oscillating && math.Abs(r1) <= tol:
		return Center
	case oscillating && r1 < 0:
		return StableFocus
	case oscillating:
		return UnstableFocus
	case math.Abs(r1) <= tol || math.Abs(r2) <= tol:
		return Degenerate
	case r1 < 0 && r2 < 0:
		return StableNode
	case r1 > 0 && r2 > 0:
		return UnstableNode
	default:
		return Saddle
	}
}

// Stable reports whether every eigenvalue has a negative real part.
func Stable(eigs [2]complex128) bool {
	return real(eigs[0]) < 0 && real(eigs[1]) < 0
}

type Equilibrium struct {
	S, I float64
}

// DiseaseFree is the infection-free equilibrium (mu/(mu+u), 0).
func DiseaseFree(p Params) Equilibrium {
	if p.Mu+p.U == 0 {
		return Equilibrium{S: math.NaN()}
	}
	return Equilibrium{S: p.Mu / (p.Mu + p.U)}
}

// Endemic returns the interior equilibrium. ok is false when it does not
// exist with a positive infected fraction, which happens exactly when
// R0 <= 1.
func Endemic(p Params) (Equilibrium, bool) {
	b := p.contact()
	if b == 0 {
		return Equilibrium{}, false
	}
	s := (p.Gamma + p.Mu) / b
	i := (p.Mu - (p.Mu+p.U)*s) / (b * s)
	if !(i > 0) {
		return Equilibrium{S: s, I: i}, false
	}
	return Equilibrium{S: s, I: i}, true
}
