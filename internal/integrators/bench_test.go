package integrators

import (
	"testing"

	"github.com/san-kum/sirstab/internal/dynamo"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkSolveRK45(b *testing.B) {
	dyn := &decay{rate: 0.5}
	grid := dynamo.TimeGrid(0, 50, 100)
	cfg := dynamo.DefaultSolveConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dynamo.Solve(b.Context(), dyn, NewRK45(), dynamo.State{1}, grid, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
