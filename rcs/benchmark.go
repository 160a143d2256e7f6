// Package rcs simulates random circuit sampling on a full state vector and
// scores the samples with the cross-entropy benchmark.
package rcs

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Supported parameter ranges.
const (
	MinQubits = 2
	MaxQubits = 20
	MaxDepth  = 50
)

// DateFormat is the layout of Result.Date.
const DateFormat = "2006-01-02"

var ErrInvalidParams = errors.New("invalid benchmark parameters")

// Params describes one benchmark run.
type Params struct {
	Depth   int
	Qubits  int
	Samples int
	Seed    uint64
}

// Result is the record of a finished run.
type Result struct {
	Date      string  `json:"date"`
	Depth     int     `json:"depth"`
	Qubits    int     `json:"qubits"`
	XEBScore  float64 `json:"xeb_score"`
	Samples   int     `json:"samples"`
	RuntimeMS int64   `json:"runtime_ms"`
	Seed      uint64  `json:"seed,omitempty"`
}

// Validate rejects parameters the simulator cannot run. Depth 0 is a circuit of
// the Hadamard layer alone.
func Validate(depth, qubits, samples int) error {
	switch {
	case depth < 0 || depth > MaxDepth:
		return fmt.Errorf("%w: depth %d outside [0, %d]", ErrInvalidParams, depth, MaxDepth)
	case qubits < MinQubits || qubits > MaxQubits:
		return fmt.Errorf("%w: qubit count %d outside [%d, %d]", ErrInvalidParams, qubits, MinQubits, MaxQubits)
	case samples < 1:
		return fmt.Errorf("%w: sample count %d must be positive", ErrInvalidParams, samples)
	}
	return nil
}

// Runner executes benchmark runs. It holds no per-run state, so one Runner may
// serve concurrent runs as long as each has its own Source.
type Runner struct {
	log zerolog.Logger
	now func() time.Time
}

func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{
		log: log.With().Str("component", "rcs").Logger(),
		now: time.Now,
	}
}

// Simulate builds a random circuit from src and evolves a fresh state through it.
func (r *Runner) Simulate(depth, qubits int, src Source) (*State, Schedule, error) {
	st, err := NewState(qubits)
	if err != nil {
		return nil, Schedule{}, err
	}
	sched := Generate(src, depth, qubits)
	sched.Apply(st)
	r.log.Debug().
		Int("depth", depth).
		Int("qubits", qubits).
		Int("gates", sched.GateCount()).
		Msg("Circuit applied")
	return st, sched, nil
}

// Run seeds a stream from p.Seed and executes the run on it.
func (r *Runner) Run(p Params) (Result, error) {
	return r.RunWithSource(p, NewSource(p.Seed))
}

// Outcome is everything a run produced, for callers that display more than the score.
type Outcome struct {
	Result        Result
	Schedule      Schedule
	State         *State
	Probabilities []float64
	Samples       []int
}

// RunWithSource executes the full pipeline on src and returns its Result.
// Result.Seed is copied from p and is only meaningful when src was built from it.
func (r *Runner) RunWithSource(p Params, src Source) (Result, error) {
	out, err := r.Execute(p, src)
	if err != nil {
		return Result{}, err
	}
	return out.Result, nil
}

// Execute runs circuit, distribution, sampling and scoring in order on src.
func (r *Runner) Execute(p Params, src Source) (*Outcome, error) {
	if err := Validate(p.Depth, p.Qubits, p.Samples); err != nil {
		return nil, err
	}

	start := r.now()
	st, sched, err := r.Simulate(p.Depth, p.Qubits, src)
	if err != nil {
		return nil, err
	}
	probs := st.Probabilities()
	samples := NewSampler(probs).Draw(src, p.Samples)
	score := XEB(samples, probs)
	elapsed := r.now().Sub(start)

	res := Result{
		Date:      start.UTC().Format(DateFormat),
		Depth:     p.Depth,
		Qubits:    p.Qubits,
		XEBScore:  score,
		Samples:   p.Samples,
		RuntimeMS: max(elapsed.Milliseconds(), 0),
		Seed:      p.Seed,
	}
	r.log.Info().
		Int("depth", res.Depth).
		Int("qubits", res.Qubits).
		Int("samples", res.Samples).
		Float64("xeb", res.XEBScore).
		Int64("runtime_ms", res.RuntimeMS).
		Msg("Benchmark finished")

	return &Outcome{
		Result:        res,
		Schedule:      sched,
		State:         st,
		Probabilities: probs,
		Samples:       samples,
	}, nil
}

// RunBenchmark runs one benchmark on a freshly seeded stream. It panics on
// parameters Validate rejects rather than allocating an oversized state.
func RunBenchmark(depth, qubits, samples int) Result {
	res, err := NewRunner(zerolog.Nop()).Run(Params{
		Depth:   depth,
		Qubits:  qubits,
		Samples: samples,
		Seed:    NewSeed(),
	})
	if err != nil {
		panic(err)
	}
	return res
}
