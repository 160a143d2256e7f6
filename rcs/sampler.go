package rcs

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Sampler draws basis states from a fixed distribution by inverse transform.
// The cumulative sums are built once with the same left-to-right accumulation
// State.Sample uses, so both pick the same index for the same draw.
type Sampler struct {
	cdf []float64
}

func NewSampler(probs []float64) *Sampler {
	cdf := make([]float64, len(probs))
	floats.CumSum(cdf, probs)
	return &Sampler{cdf: cdf}
}

// Index returns the first index whose cumulative probability is at least u,
// or the last index if rounding kept the total below u.
func (s *Sampler) Index(u float64) int {
	i := sort.SearchFloat64s(s.cdf, u)
	if i == len(s.cdf) {
		return len(s.cdf) - 1
	}
	return i
}

// Draw returns count independent outcomes, one uniform draw from src each.
func (s *Sampler) Draw(src Source, count int) []int {
	out := make([]int, count)
	for k := range out {
		out[k] = s.Index(src.Float64())
	}
	return out
}
