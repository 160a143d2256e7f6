package rcs

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// State is a full state vector over NumQubits qubits. Bit q of an index is the
// basis value of qubit q. The vector is allocated once and updated in place.
type State struct {
	amps      []complex128
	numQubits int
}

// NewState returns the |0…0⟩ state over numQubits qubits.
func NewState(numQubits int) (*State, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: qubit count %d outside [1, %d]", ErrInvalidParams, numQubits, MaxQubits)
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &State{amps: amps, numQubits: numQubits}, nil
}

func (s *State) NumQubits() int { return s.numQubits }

// Dim is the number of basis states, 2^NumQubits.
func (s *State) Dim() int { return len(s.amps) }

func (s *State) Amplitude(i int) complex128 { return s.amps[i] }

// Amplitudes returns a copy of the amplitude vector.
func (s *State) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

func (s *State) Clone() *State {
	return &State{amps: s.Amplitudes(), numQubits: s.numQubits}
}

// Reset restores |0…0⟩ without reallocating.
func (s *State) Reset() {
	s.SetBasisState(0)
}

// SetBasisState prepares the computational basis state |index⟩.
func (s *State) SetBasisState(index int) {
	clear(s.amps)
	s.amps[index] = 1
}

// ApplySingle applies m to qubit q. Each pair (i, i|bit) with bit q clear in i
// is updated together, so the loop walks blocks of 2·bit entries.
func (s *State) ApplySingle(q int, m Matrix) {
	bit := 1 << q
	n := len(s.amps)
	m00, m01, m10, m11 := m[0][0], m[0][1], m[1][0], m[1][1]
	for base := 0; base < n; base += bit << 1 {
		for i := base; i < base+bit; i++ {
			j := i | bit
			a, b := s.amps[i], s.amps[j]
			s.amps[i] = m00*a + m01*b
			s.amps[j] = m10*a + m11*b
		}
	}
}

// ApplyGate applies a single-qubit gate kind to qubit q.
func (s *State) ApplyGate(kind GateKind, q int) {
	s.ApplySingle(q, kind.Matrix())
}

// ApplyCZ negates every amplitude whose bits at qubits a and b are both set.
func (s *State) ApplyCZ(a, b int) {
	mask := 1<<a | 1<<b
	for i := range s.amps {
		if i&mask == mask {
			s.amps[i] = -s.amps[i]
		}
	}
}

// Probabilities returns |amplitude|² for every basis state.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// Norm is the total probability mass, 1 for any state reached by gates.
func (s *State) Norm() float64 {
	return floats.Sum(s.Probabilities())
}

// Sample maps a uniform draw u in [0,1) to the first index whose cumulative
// probability reaches u. Rounding can leave the total just below u, in which
// case the last index is returned.
func (s *State) Sample(u float64) int {
	cum := 0.0
	for i, a := range s.amps {
		cum += real(a * cmplx.Conj(a))
		if cum >= u {
			return i
		}
	}
	return len(s.amps) - 1
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal distribution of every qubit.
func (s *State) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, a := range s.amps {
		p := real(a * cmplx.Conj(a))
		for q := range s.numQubits {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// StateBytes is the memory taken by the amplitude vector of numQubits qubits.
func StateBytes(numQubits int) uint64 {
	return uint64(16) << numQubits
}
