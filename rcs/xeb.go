package rcs

import (
	"gonum.org/v1/gonum/stat"
)

// Reported XEB scores are clamped to this range.
const (
	MinXEB = -0.5
	MaxXEB = 1.0
)

// RawXEB is 2^N·⟨p_ideal(x)⟩ − 1 over the sampled outcomes, where 2^N is the
// length of probs. An empty sample set scores 0.
func RawXEB(samples []int, probs []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	ideal := make([]float64, len(samples))
	for k, x := range samples {
		ideal[k] = probs[x]
	}
	return float64(len(probs))*stat.Mean(ideal, nil) - 1
}

// XEB is RawXEB clamped to [MinXEB, MaxXEB]. The clamp applies to a single
// run's score; aggregate statistics are computed over clamped run scores.
func XEB(samples []int, probs []float64) float64 {
	return min(max(RawXEB(samples, probs), MinXEB), MaxXEB)
}
