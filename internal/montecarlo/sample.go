package montecarlo

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// resolveSeed returns seed, or a fresh random one when seed is 0.
func resolveSeed(seed int64) int64 {
	for seed == 0 {
		seed = rand.Int64()
	}
	return seed
}

func newSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
}

// drawParams draws all n beta values first and then all n u values from one
// stream, so a seed fixes the whole sample set.
func drawParams(src rand.Source, n int, beta, u Range) ([]float64, []float64) {
	betaDist := distuv.Uniform{Min: beta.Min, Max: beta.Max, Src: src}
	uDist := distuv.Uniform{Min: u.Min, Max: u.Max, Src: src}

	betas := make([]float64, n)
	for i := range betas {
		betas[i] = betaDist.Rand()
	}
	us := make([]float64, n)
	for i := range us {
		us[i] = uDist.Rand()
	}
	return betas, us
}
