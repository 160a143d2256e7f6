package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrcsbench/internal/results"
	"qrcsbench/rcs"
)

type countingJob struct {
	runs int
}

func (j *countingJob) Run() error   { j.runs++; return nil }
func (j *countingJob) Name() string { return "counting" }

func TestScheduler_AddJob(t *testing.T) {
	s := newScheduler(zerolog.Nop())

	assert.NoError(t, s.addJob("@daily", &countingJob{}))
	assert.NoError(t, s.addJob("0 6 * * *", &countingJob{}))

	err := s.addJob("every tuesday", &countingJob{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid schedule "every tuesday"`)
}

func TestRunDaemon_RunNowThenStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	j := &countingJob{}
	require.NoError(t, runDaemon(ctx, "@daily", j, true, zerolog.Nop()))
	assert.Equal(t, 1, j.runs)
}

func TestRunDaemon_InvalidSchedule(t *testing.T) {
	j := &countingJob{}
	assert.Error(t, runDaemon(context.Background(), "bogus", j, true, zerolog.Nop()))
	assert.Zero(t, j.runs)
}

func newTestJob(dir, readme string, available uint64) *benchmarkJob {
	return &benchmarkJob{
		runner:     rcs.NewRunner(zerolog.Nop()),
		store:      results.NewStore(dir, zerolog.Nop()),
		readmePath: readme,
		params:     rcs.Params{Depth: 3, Qubits: 4, Samples: 64},
		probe:      availableMemory(available),
		log:        zerolog.Nop(),
	}
}

func TestBenchmarkJob_SavesAndWritesReadme(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(t.TempDir(), "README.md")

	require.NoError(t, newTestJob(dir, readme, 1<<30).Run())

	records, err := results.NewStore(dir, zerolog.Nop()).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Depth)
	assert.Equal(t, 4, records[0].Qubits)
	assert.NotEmpty(t, records[0].ID)

	data, err := os.ReadFile(readme)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Daily Quantum RCS Benchmark")
}

func TestBenchmarkJob_MissingResultsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	readme := filepath.Join(t.TempDir(), "README.md")

	require.NoError(t, newTestJob(dir, readme, 1<<30).Run())

	assert.NoDirExists(t, dir)
	assert.NoFileExists(t, readme)
}

func TestBenchmarkJob_InsufficientMemory(t *testing.T) {
	dir := t.TempDir()
	err := newTestJob(dir, filepath.Join(dir, "README.md"), 16).Run()
	assert.ErrorIs(t, err, ErrInsufficientMemory)
}
