package rcs

import (
	"math"
	"math/cmplx"
)

// Matrix is a single-qubit unitary in row-major order.
type Matrix [2][2]complex128

// GateKind identifies one of the fixed gates used by random circuits.
type GateKind int

const (
	GateH GateKind = iota
	GateRootX
	GateRootY
	GateRootW
	GateCZ
)

// randomGates is the uniform choice set for the per-qubit gate of every layer.
var randomGates = [...]GateKind{GateRootX, GateRootY, GateRootW}

var (
	Hadamard = Matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}

	RootX = Matrix{
		{0.5 + 0.5i, 0.5 - 0.5i},
		{0.5 - 0.5i, 0.5 + 0.5i},
	}

	RootY = Matrix{
		{0.5 + 0.5i, -0.5 - 0.5i},
		{0.5 + 0.5i, 0.5 + 0.5i},
	}

	// RootW is a quarter turn about the W = (X+Y)/√2 axis.
	RootW = axisRotation(math.Pi/4, math.Pi/2)
)

// axisRotation returns exp(-iθ/2 (cos φ X + sin φ Y)).
func axisRotation(phi, theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Matrix{
		{c, s * cmplx.Exp(complex(0, -phi))},
		{s * cmplx.Exp(complex(0, phi)), c},
	}
}

func (k GateKind) String() string {
	switch k {
	case GateH:
		return "H"
	case GateRootX:
		return "√X"
	case GateRootY:
		return "√Y"
	case GateRootW:
		return "√W"
	case GateCZ:
		return "CZ"
	default:
		return "?"
	}
}

// QASMName returns the OpenQASM 2.0 mnemonic for the gate.
func (k GateKind) QASMName() string {
	switch k {
	case GateH:
		return "h"
	case GateRootX:
		return "sx"
	case GateRootY:
		return "sy"
	case GateRootW:
		return "sw"
	case GateCZ:
		return "cz"
	default:
		return ""
	}
}

// Matrix returns the 2×2 unitary of a single-qubit gate kind. CZ has no
// single-qubit form and yields the identity.
func (k GateKind) Matrix() Matrix {
	switch k {
	case GateH:
		return Hadamard
	case GateRootX:
		return RootX
	case GateRootY:
		return RootY
	case GateRootW:
		return RootW
	default:
		return Matrix{{1, 0}, {0, 1}}
	}
}

// IsUnitary reports whether m·m† is the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	for r := range 2 {
		for c := range 2 {
			var sum complex128
			for k := range 2 {
				sum += m[r][k] * cmplx.Conj(m[c][k])
			}
			want := complex(0, 0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(sum-want) > tol {
				return false
			}
		}
	}
	return true
}
