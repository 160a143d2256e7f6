package rcs

import (
	"fmt"
	"strings"
)

// longRangeProbability is the chance a layer gains one extra CZ between the
// lower and upper halves of the register.
const longRangeProbability = 0.3

// Pair is a CZ between qubits A and B.
type Pair struct {
	A, B int
}

// Layer holds one random single-qubit gate per qubit followed by its CZ pairs.
type Layer struct {
	Gates []GateKind // indexed by qubit
	Pairs []Pair
}

// Schedule is the gate plan of one random circuit. The Hadamard layer that
// opens every circuit is implicit and not counted in Depth.
type Schedule struct {
	NumQubits int
	Layers    []Layer
}

func (s Schedule) Depth() int { return len(s.Layers) }

// Generate draws a brickwork schedule from src. For every layer it consumes one
// gate choice per qubit, then the entangling pairs of that layer.
func Generate(src Source, depth, numQubits int) Schedule {
	sched := Schedule{NumQubits: numQubits, Layers: make([]Layer, depth)}
	for d := range depth {
		gates := make([]GateKind, numQubits)
		for q := range gates {
			gates[q] = randomGates[src.IntN(len(randomGates))]
		}
		sched.Layers[d] = Layer{Gates: gates, Pairs: entanglingPairs(src, numQubits, d)}
	}
	return sched
}

// ScheduleFor regenerates the schedule a run seeded with p.Seed applies. The
// schedule is drawn before any sample, so it depends on the seed alone.
func ScheduleFor(p Params) Schedule {
	return Generate(NewSource(p.Seed), p.Depth, p.Qubits)
}

// entanglingPairs returns the nearest-neighbour pairs of a layer, starting at 0
// on even layers and 1 on odd ones, plus at most one long-range pair.
func entanglingPairs(src Source, numQubits, layer int) []Pair {
	var pairs []Pair
	for i := layer % 2; i < numQubits-1; i += 2 {
		pairs = append(pairs, Pair{A: i, B: i + 1})
	}
	if numQubits > 4 && src.Float64() < longRangeProbability {
		half := numQubits / 2
		a := src.IntN(half)
		b := half + src.IntN(numQubits-half)
		if a != b {
			pairs = append(pairs, Pair{A: a, B: b})
		}
	}
	return pairs
}

// Apply evolves st through the Hadamard layer and every layer of the schedule.
func (s Schedule) Apply(st *State) {
	for q := range s.NumQubits {
		st.ApplyGate(GateH, q)
	}
	for _, layer := range s.Layers {
		for q, g := range layer.Gates {
			st.ApplyGate(g, q)
		}
		for _, p := range layer.Pairs {
			st.ApplyCZ(p.A, p.B)
		}
	}
}

// GateCount is the number of gates Apply executes, including the Hadamards.
func (s Schedule) GateCount() int {
	n := s.NumQubits
	for _, layer := range s.Layers {
		n += len(layer.Gates) + len(layer.Pairs)
	}
	return n
}

// ToQASM renders the schedule as OpenQASM 2.0 with a measurement of every qubit.
// √Y and √W have no qelib1 definition and are declared opaque.
func (s Schedule) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "opaque %s a;\n", GateRootY.QASMName())
	fmt.Fprintf(&sb, "opaque %s a;\n\n", GateRootW.QASMName())
	fmt.Fprintf(&sb, "qreg q[%d];\n", s.NumQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", s.NumQubits)

	for q := range s.NumQubits {
		fmt.Fprintf(&sb, "h q[%d];\n", q)
	}
	for d, layer := range s.Layers {
		fmt.Fprintf(&sb, "// layer %d\n", d)
		for q, g := range layer.Gates {
			fmt.Fprintf(&sb, "%s q[%d];\n", g.QASMName(), q)
		}
		for _, p := range layer.Pairs {
			fmt.Fprintf(&sb, "cz q[%d], q[%d];\n", p.A, p.B)
		}
	}
	sb.WriteString("\n")
	for q := range s.NumQubits {
		fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", q, q)
	}
	return sb.String()
}
