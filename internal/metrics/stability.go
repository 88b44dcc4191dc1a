package metrics

// Stability counts equilibrium checks whose distance falls below a
// threshold and keeps the running ratio after each success.
type Stability struct {
	threshold float64
	stable    int
	checked   int
	ratios    []float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

// Observe records one distance check. Only checks under the threshold move
// either counter, so the ratio is stable/checked over successful checks.
func (s *Stability) Observe(distance float64) bool {
	if !(distance < s.threshold) {
		return false
	}
	s.stable++
	s.checked++
	s.ratios = append(s.ratios, float64(s.stable)/float64(s.checked))
	return true
}

func (s *Stability) Count() int {
	return s.stable
}

func (s *Stability) Value() float64 {
	if s.checked == 0 {
		return 0
	}
	return float64(s.stable) / float64(s.checked)
}

// Ratios returns a copy of the running ratio series.
func (s *Stability) Ratios() []float64 {
	out := make([]float64, len(s.ratios))
	copy(out, s.ratios)
	return out
}

func (s *Stability) Reset() {
	s.stable = 0
	s.checked = 0
	s.ratios = nil
}
