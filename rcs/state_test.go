package rcs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_StartsInZeroState(t *testing.T) {
	st, err := NewState(3)
	require.NoError(t, err)

	assert.Equal(t, 3, st.NumQubits())
	assert.Equal(t, 8, st.Dim())
	assert.Equal(t, complex(1, 0), st.Amplitude(0))
	for i := 1; i < st.Dim(); i++ {
		assert.Equal(t, complex(0, 0), st.Amplitude(i))
	}
}

func TestNewState_RejectsOutOfRangeQubits(t *testing.T) {
	for _, n := range []int{0, -1, MaxQubits + 1} {
		_, err := NewState(n)
		assert.True(t, errors.Is(err, ErrInvalidParams), "qubits=%d", n)
	}
}

func TestHadamard_SingleQubitIsBalanced(t *testing.T) {
	st, err := NewState(1)
	require.NoError(t, err)

	st.ApplyGate(GateH, 0)
	probs := st.Probabilities()

	assert.InDelta(t, 0.5, probs[0], 1e-10)
	assert.InDelta(t, 0.5, probs[1], 1e-10)
}

func TestApplyCZ_NegatesBothSetAmplitude(t *testing.T) {
	st, err := NewState(2)
	require.NoError(t, err)
	st.SetBasisState(3)

	st.ApplyCZ(0, 1)

	assert.InDelta(t, -1.0, real(st.Amplitude(3)), 1e-10)
	assert.InDelta(t, 0.0, imag(st.Amplitude(3)), 1e-10)
	for i := 0; i < 3; i++ {
		assert.Equal(t, complex(0, 0), st.Amplitude(i))
	}
}

func TestApplyCZ_LeavesOtherBasisStates(t *testing.T) {
	st, err := NewState(3)
	require.NoError(t, err)
	for q := range 3 {
		st.ApplyGate(GateH, q)
	}
	before := st.Amplitudes()

	st.ApplyCZ(0, 2)

	for i, a := range st.Amplitudes() {
		if i&0b101 == 0b101 {
			assert.Equal(t, -before[i], a, "index %d", i)
		} else {
			assert.Equal(t, before[i], a, "index %d", i)
		}
	}
}

func TestApplySingle_TouchesOnlyTargetPairs(t *testing.T) {
	st, err := NewState(3)
	require.NoError(t, err)
	st.SetBasisState(0b010)

	st.ApplySingle(0, Matrix{{0, 1}, {1, 0}})

	assert.Equal(t, complex(1, 0), st.Amplitude(0b011))
	assert.Equal(t, complex(0, 0), st.Amplitude(0b010))
}

func TestGateSequences_PreserveNorm(t *testing.T) {
	kinds := []GateKind{GateH, GateRootX, GateRootY, GateRootW}
	for n := 1; n <= 8; n++ {
		src := NewSource(uint64(n))
		st, err := NewState(n)
		require.NoError(t, err)

		for range 60 {
			if n >= 2 && src.IntN(4) == 0 {
				a := src.IntN(n)
				b := (a + 1 + src.IntN(n-1)) % n
				st.ApplyCZ(a, b)
				continue
			}
			st.ApplyGate(kinds[src.IntN(len(kinds))], src.IntN(n))
			assert.InDelta(t, 1.0, st.Norm(), 1e-9, "qubits=%d", n)
		}
	}
}

func TestReset_RestoresZeroState(t *testing.T) {
	st, err := NewState(2)
	require.NoError(t, err)
	st.ApplyGate(GateH, 0)
	st.ApplyGate(GateRootY, 1)

	st.Reset()

	assert.Equal(t, []complex128{1, 0, 0, 0}, st.Amplitudes())
}

func TestClone_IsIndependent(t *testing.T) {
	st, err := NewState(2)
	require.NoError(t, err)
	cp := st.Clone()

	st.ApplyGate(GateH, 0)

	assert.Equal(t, complex(1, 0), cp.Amplitude(0))
	assert.Equal(t, complex(0, 0), cp.Amplitude(1))
}

func TestSample_InverseCDF(t *testing.T) {
	st, err := NewState(2)
	require.NoError(t, err)
	st.ApplyGate(GateH, 0)
	st.ApplyGate(GateH, 1)

	tests := []struct {
		name string
		u    float64
		want int
	}{
		{"first quarter", 0.1, 0},
		{"second quarter", 0.3, 1},
		{"third quarter", 0.6, 2},
		{"last quarter", 0.9, 3},
		{"past total falls back to last", 1.5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, st.Sample(tt.u))
		})
	}
}

func TestQubitProbabilities_Marginals(t *testing.T) {
	st, err := NewState(2)
	require.NoError(t, err)
	st.ApplyGate(GateH, 1)

	probs := st.QubitProbabilities()

	require.Len(t, probs, 2)
	assert.InDelta(t, 1.0, probs[0].Prob0, 1e-12)
	assert.InDelta(t, 0.0, probs[0].Prob1, 1e-12)
	assert.InDelta(t, 0.5, probs[1].Prob0, 1e-12)
	assert.InDelta(t, 0.5, probs[1].Prob1, 1e-12)
}

func TestStateBytes(t *testing.T) {
	assert.Equal(t, uint64(64), StateBytes(2))
	assert.Equal(t, uint64(16<<20), StateBytes(20))
}
