package metrics

import (
	"math"
	"testing"
)

func TestStabilityCountsBelowThreshold(t *testing.T) {
	m := NewStability(0.001)

	if !m.Observe(0) {
		t.Error("zero distance should count as stable")
	}
	if m.Observe(0.5) {
		t.Error("large distance should not count")
	}
	if m.Observe(0.001) {
		t.Error("distance equal to threshold should not count")
	}
	if m.Observe(math.NaN()) {
		t.Error("NaN distance should not count")
	}
	m.Observe(0.0005)

	if m.Count() != 2 {
		t.Errorf("expected 2 stable checks, got %d", m.Count())
	}

	ratios := m.Ratios()
	if len(ratios) != 2 || ratios[0] != 1 || ratios[1] != 1 {
		t.Errorf("expected ratios [1 1], got %v", ratios)
	}
	if m.Value() != 1 {
		t.Errorf("expected ratio 1, got %f", m.Value())
	}
}

func TestStabilityReset(t *testing.T) {
	m := NewStability(1)
	m.Observe(0)
	m.Reset()

	if m.Count() != 0 || m.Value() != 0 || len(m.Ratios()) != 0 {
		t.Error("expected empty tracker after reset")
	}
}
