package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

type Histogram struct {
	Edges  []float64
	Counts []int
}

// Center returns the midpoint of bin i.
func (h Histogram) Center(i int) float64 {
	return (h.Edges[i] + h.Edges[i+1]) / 2
}

// NewHistogram bins data into equal-width bins spanning [min, max]. The last
// bin is closed on the right. A constant sample gets a unit-wide range
// centered on its value.
func NewHistogram(data []float64, bins int) (Histogram, error) {
	if len(data) == 0 || bins <= 0 {
		return Histogram{}, ErrEmpty
	}

	lo, err := stats.Min(data)
	if err != nil {
		return Histogram{}, err
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Histogram{}, err
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	h := Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		h.Counts[idx]++
	}
	return h, nil
}

// Floats returns the counts as float64 for plotting.
func (h Histogram) Floats() []float64 {
	out := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		out[i] = float64(c)
	}
	return out
}
