package rcs

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBenchmark_ResultStructure(t *testing.T) {
	res := RunBenchmark(3, 4, 256)

	assert.Equal(t, 3, res.Depth)
	assert.Equal(t, 4, res.Qubits)
	assert.Equal(t, 256, res.Samples)
	assert.False(t, math.IsNaN(res.XEBScore))
	assert.False(t, math.IsInf(res.XEBScore, 0))
	assert.GreaterOrEqual(t, res.XEBScore, MinXEB)
	assert.LessOrEqual(t, res.XEBScore, MaxXEB)
	assert.GreaterOrEqual(t, res.RuntimeMS, int64(0))
	_, err := time.Parse(DateFormat, res.Date)
	assert.NoError(t, err)
}

func TestRunBenchmark_PanicsOnInvalidParams(t *testing.T) {
	assert.Panics(t, func() { RunBenchmark(3, MaxQubits+5, 10) })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		qubits  int
		samples int
		wantErr bool
	}{
		{"smallest circuit", 0, 2, 1, false},
		{"largest circuit", MaxDepth, MaxQubits, 1024, false},
		{"negative depth", -1, 4, 10, true},
		{"depth too high", MaxDepth + 1, 4, 10, true},
		{"single qubit", 3, 1, 10, true},
		{"too many qubits", 3, MaxQubits + 1, 10, true},
		{"no samples", 3, 4, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.depth, tt.qubits, tt.samples)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidParams))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRun_SameSeedSameScore(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	p := Params{Depth: 5, Qubits: 6, Samples: 512, Seed: 77}

	a, err := r.Run(p)
	require.NoError(t, err)
	b, err := r.Run(p)
	require.NoError(t, err)

	assert.Equal(t, a.XEBScore, b.XEBScore)
	assert.Equal(t, uint64(77), a.Seed)
}

func TestRun_RejectsInvalidParams(t *testing.T) {
	_, err := NewRunner(zerolog.Nop()).Run(Params{Depth: 3, Qubits: 40, Samples: 10})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRunWithSource_TimingAndLogging(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(zerolog.New(&buf))
	clock := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(7 * time.Millisecond)
		return clock
	}

	res, err := r.RunWithSource(Params{Depth: 2, Qubits: 3, Samples: 16}, NewSource(1))
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.RuntimeMS)
	assert.Equal(t, "2026-03-09", res.Date)
	assert.Contains(t, buf.String(), "Benchmark finished")
	assert.Contains(t, buf.String(), `"component":"rcs"`)
}

func TestExecute_OutcomeIsConsistent(t *testing.T) {
	p := Params{Depth: 4, Qubits: 5, Samples: 300, Seed: 12}
	out, err := NewRunner(zerolog.Nop()).Execute(p, NewSource(p.Seed))
	require.NoError(t, err)

	assert.Len(t, out.Samples, 300)
	assert.Len(t, out.Probabilities, 32)
	assert.Equal(t, out.State.Probabilities(), out.Probabilities)
	assert.Equal(t, XEB(out.Samples, out.Probabilities), out.Result.XEBScore)
	assert.Equal(t, ScheduleFor(p), out.Schedule)
}
