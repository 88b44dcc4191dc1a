package integrators

import (
	"math"

	"github.com/san-kum/sirstab/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64

	k       [7]dynamo.State
	scratch dynamo.State
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) ensureScratch(n int) {
	if len(r.scratch) != n {
		for i := range r.k {
			r.k[i] = make(dynamo.State, n)
		}
		r.scratch = make(dynamo.State, n)
	}
}

// Step takes one fifth-order step of size dt without error control.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	next, _, _ := r.TryStep(dyn, x, t, dt, 1e-6, 1e-6)
	return next
}

// TryStep attempts a step of size dt. errNorm is the RMS of the embedded
// error estimate scaled by atol + rtol*max(|x|, |next|); the step should be
// accepted when errNorm <= 1. dtNext is the suggested size of the next try.
func (r *RK45) TryStep(dyn dynamo.System, x dynamo.State, t, dt, rtol, atol float64) (dynamo.State, float64, float64) {
	n := len(x)
	r.ensureScratch(n)
	k := &r.k

	copy(k[0], dyn.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*b21*k[0][i]
	}
	copy(k[1], dyn.Derive(r.scratch, t+a2*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b31*k[0][i]+b32*k[1][i])
	}
	copy(k[2], dyn.Derive(r.scratch, t+a3*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b41*k[0][i]+b42*k[1][i]+b43*k[2][i])
	}
	copy(k[3], dyn.Derive(r.scratch, t+a4*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b51*k[0][i]+b52*k[1][i]+b53*k[2][i]+b54*k[3][i])
	}
	copy(k[4], dyn.Derive(r.scratch, t+a5*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b61*k[0][i]+b62*k[1][i]+b63*k[2][i]+b64*k[3][i]+b65*k[4][i])
	}
	copy(k[5], dyn.Derive(r.scratch, t+dt))

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k[0][i]+c3*k[2][i]+c4*k[3][i]+c5*k[4][i]+c6*k[5][i])
	}

	copy(k[6], dyn.Derive(xNew, t+dt))

	sum := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k[0][i] + dc3*k[2][i] + dc4*k[3][i] + dc5*k[4][i] + dc6*k[5][i] + dc7*k[6][i])
		scale := atol + rtol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		sum += (errEst / scale) * (errEst / scale)
	}
	errNorm := 0.0
	if n > 0 {
		errNorm = math.Sqrt(sum / float64(n))
	}

	var dtNew float64
	switch {
	case math.IsNaN(errNorm):
		dtNew = dt * r.minScale
	case errNorm > 1:
		dtNew = dt * math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.25))
	case errNorm > 0:
		dtNew = dt * math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
	default:
		dtNew = dt * r.maxScale
	}

	return xNew, errNorm, dtNew
}
