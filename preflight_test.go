package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
)

func availableMemory(bytes uint64) memoryProbe {
	return func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Available: bytes}, nil
	}
}

func TestRunBytes(t *testing.T) {
	assert.Equal(t, uint64(2*16*1024), runBytes(10))
	assert.Equal(t, uint64(32<<20), runBytes(20))
}

func TestCheckMemory(t *testing.T) {
	assert.NoError(t, checkMemory(10, availableMemory(runBytes(10)), zerolog.Nop()))

	err := checkMemory(20, availableMemory(runBytes(20)-1), zerolog.Nop())
	assert.ErrorIs(t, err, ErrInsufficientMemory)
	assert.Contains(t, err.Error(), "20 qubits need 32 MiB")
}

func TestCheckMemory_ProbeFailureAllowsRun(t *testing.T) {
	var buf bytes.Buffer
	probe := func() (*mem.VirtualMemoryStat, error) {
		return nil, errors.New("no /proc")
	}

	assert.NoError(t, checkMemory(12, probe, zerolog.New(&buf)))
	assert.Contains(t, buf.String(), "skipping preflight")
}
