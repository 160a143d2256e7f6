package rcs

import (
	"encoding/binary"
	"math/rand/v2"
)

// Source is the pseudo-random stream a run draws gate choices, entangling
// pairs and measurement outcomes from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a ChaCha8 stream whose key is expanded from seed.
// Equal seeds yield equal streams.
func NewSource(seed uint64) *rand.Rand {
	var key [32]byte
	x := seed ^ 0x9e3779b97f4a7c15
	for i := 0; i < len(key); i += 8 {
		x = splitmix64(x)
		binary.LittleEndian.PutUint64(key[i:], x)
	}
	return rand.New(rand.NewChaCha8(key))
}

// NewSeed draws a seed from the runtime's randomly seeded generator.
func NewSeed() uint64 {
	return rand.Uint64()
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
