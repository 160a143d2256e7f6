package rcs

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXEB_UniformIsExactlyZero(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		dim := 1 << n
		probs := make([]float64, dim)
		for i := range probs {
			probs[i] = 1 / float64(dim)
		}
		samples := make([]int, 1000)
		for k := range samples {
			samples[k] = k % dim
		}

		assert.Equal(t, 0.0, XEB(samples, probs), "qubits=%d", n)
	}
}

func TestXEB_WorkedTwoQubitExample(t *testing.T) {
	probs := []float64{0.45, 0.05, 0.10, 0.40}

	tests := []struct {
		name   string
		counts []int
		want   float64
	}{
		{"ideal sampler", []int{450, 50, 100, 400}, 0.5},
		{"noisy sampler", []int{300, 200, 200, 300}, 0.14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []int
			for x, c := range tt.counts {
				for range c {
					samples = append(samples, x)
				}
			}
			assert.InDelta(t, tt.want, XEB(samples, probs), 1e-9)
		})
	}
}

func TestXEB_Clamped(t *testing.T) {
	probs := []float64{1, 0, 0, 0}

	assert.Equal(t, 3.0, RawXEB([]int{0, 0}, probs))
	assert.Equal(t, MaxXEB, XEB([]int{0, 0}, probs))

	assert.Equal(t, -1.0, RawXEB([]int{1, 2, 3}, probs))
	assert.Equal(t, MinXEB, XEB([]int{1, 2, 3}, probs))
}

func TestXEB_EmptySamples(t *testing.T) {
	assert.Equal(t, 0.0, XEB(nil, []float64{0.5, 0.5}))
}

func TestXEB_HadamardOnlyCircuitScoresZero(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	src := NewSource(8)
	st, _, err := r.Simulate(0, 2, src)
	require.NoError(t, err)
	probs := st.Probabilities()
	for _, p := range probs {
		require.InDelta(t, 0.25, p, 1e-12)
	}

	samples := NewSampler(probs).Draw(src, 1000)

	assert.InDelta(t, 0.0, XEB(samples, probs), 1e-9)
}

func TestXEB_SelfConsistentSamplingApproachesIdeal(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	inRange := 0
	const runs = 20
	for seed := range uint64(runs) {
		src := NewSource(seed)
		st, _, err := r.Simulate(10, 4, src)
		require.NoError(t, err)
		probs := st.Probabilities()

		// D·Σp² − 1 is the score an exact sampler converges to.
		var sq float64
		for _, p := range probs {
			sq += p * p
		}
		expected := float64(len(probs))*sq - 1

		raw := RawXEB(NewSampler(probs).Draw(src, 8192), probs)
		assert.InDelta(t, expected, raw, 0.15, "seed=%d", seed)
		assert.False(t, math.IsNaN(raw))

		if score := min(max(raw, MinXEB), MaxXEB); score >= 0.3 && score <= 1.0 {
			inRange++
		}
	}
	assert.GreaterOrEqual(t, inRange, runs*6/10)
}
