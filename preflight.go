package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"

	"qrcsbench/rcs"
)

var ErrInsufficientMemory = errors.New("insufficient memory")

// memoryProbe reports system memory; mem.VirtualMemory in production.
type memoryProbe func() (*mem.VirtualMemoryStat, error)

// runBytes estimates the peak allocation of one run: the amplitude vector
// plus the probability and cumulative-probability vectors of half its size each.
func runBytes(qubits int) uint64 {
	return 2 * rcs.StateBytes(qubits)
}

// checkMemory refuses runs whose state would not fit in available memory. When
// memory cannot be probed the run is allowed and a warning logged.
func checkMemory(qubits int, probe memoryProbe, log zerolog.Logger) error {
	need := runBytes(qubits)
	vm, err := probe()
	if err != nil {
		log.Warn().Err(err).Msg("Cannot read available memory, skipping preflight")
		return nil
	}
	if vm.Available < need {
		return fmt.Errorf("%w: %d qubits need %s, %s available",
			ErrInsufficientMemory, qubits, humanize.IBytes(need), humanize.IBytes(vm.Available))
	}
	log.Debug().
		Int("qubits", qubits).
		Str("need", humanize.IBytes(need)).
		Str("available", humanize.IBytes(vm.Available)).
		Msg("Memory preflight passed")
	return nil
}
