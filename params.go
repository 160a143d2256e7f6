package main

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"regexp"
	"strconv"
	"strings"

	"qrcsbench/rcs"
)

var errUsage = errors.New("usage: rcsbench run <depth> <qubits> [samples]")

// countExprRegex matches counts written as a power of two or with a k suffix:
// "2^10", "2**10", "4k", "1.5K".
var countExprRegex = regexp.MustCompile(`^(?:2\s*(?:\^|\*\*)\s*(\d+)|(\d+(?:\.\d+)?)\s*[kK])$`)

// parseCount parses a positive integer count, accepting plain integers and the
// shorthands matched by countExprRegex. Returns false on failure.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v, v > 0
	}

	m := countExprRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	if m[1] != "" {
		exp, err := strconv.Atoi(m[1])
		if err != nil || exp > 30 {
			return 0, false
		}
		return 1 << exp, true
	}
	f, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	v := f * 1024
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// formatCount renders a count the short way when it is a power of two.
func formatCount(n int) string {
	if n >= 1024 && n&(n-1) == 0 {
		return fmt.Sprintf("2^%d", bits.Len(uint(n))-1)
	}
	return strconv.Itoa(n)
}

// parseRunArgs parses "<depth> <qubits> [samples]" and enforces the ranges
// the command line accepts: depth 1..50 and qubits 2..20.
func parseRunArgs(args []string, defaultSamples int) (rcs.Params, error) {
	if len(args) < 2 || len(args) > 3 {
		return rcs.Params{}, errUsage
	}

	depth, ok := parseCount(args[0])
	if !ok {
		return rcs.Params{}, fmt.Errorf("depth must be a positive integer, got %q", args[0])
	}
	qubits, ok := parseCount(args[1])
	if !ok {
		return rcs.Params{}, fmt.Errorf("qubits must be a positive integer, got %q", args[1])
	}
	samples := defaultSamples
	if len(args) == 3 {
		if samples, ok = parseCount(args[2]); !ok {
			return rcs.Params{}, fmt.Errorf("samples must be a positive integer, got %q", args[2])
		}
	}

	p := rcs.Params{Depth: depth, Qubits: qubits, Samples: samples}
	return p, validateCLIParams(p)
}

func validateCLIParams(p rcs.Params) error {
	if p.Depth < 1 || p.Depth > rcs.MaxDepth {
		return fmt.Errorf("%w: depth must be between 1 and %d", rcs.ErrInvalidParams, rcs.MaxDepth)
	}
	if p.Qubits < rcs.MinQubits || p.Qubits > rcs.MaxQubits {
		return fmt.Errorf("%w: qubits must be between %d and %d", rcs.ErrInvalidParams, rcs.MinQubits, rcs.MaxQubits)
	}
	return rcs.Validate(p.Depth, p.Qubits, p.Samples)
}

// parseSeed parses an optional seed; an empty string means a fresh random seed.
func parseSeed(s string) (uint64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, fmt.Errorf("seed must be an unsigned integer, got %q", s)
	}
	return v, true, nil
}
