// Package report renders stored benchmark results as a markdown README and as
// plain-text trend charts.
package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"qrcsbench/internal/results"
)

const historyRows = 30

// Summary aggregates the clamped scores of a set of runs.
type Summary struct {
	Runs   int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes score statistics. StdDev is zero for fewer than two runs.
func Summarize(records []results.Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.XEBScore
	}
	s := Summary{
		Runs: len(scores),
		Mean: stat.Mean(scores, nil),
		Min:  floats.Min(scores),
		Max:  floats.Max(scores),
	}
	if len(scores) > 1 {
		s.StdDev = stat.StdDev(scores, nil)
	}
	return s
}

// Markdown renders the README for records, which must be sorted by date.
func Markdown(records []results.Record) string {
	var sb strings.Builder

	sb.WriteString("# Daily Quantum RCS Benchmark\n\n")
	sb.WriteString("A state-vector simulator of random circuit sampling. Every run builds a ")
	sb.WriteString("pseudo-random circuit, computes its exact output distribution, samples it ")
	sb.WriteString("and scores the samples with the cross-entropy benchmark (XEB).\n\n")

	if len(records) > 0 {
		latest := records[len(records)-1]
		sb.WriteString("## Latest Benchmark Result\n\n")
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		fmt.Fprintf(&sb, "| Date | %s |\n", latest.Date)
		fmt.Fprintf(&sb, "| Qubits | %d |\n", latest.Qubits)
		fmt.Fprintf(&sb, "| Circuit Depth | %d |\n", latest.Depth)
		fmt.Fprintf(&sb, "| **XEB Score** | **%.4f** |\n", latest.XEBScore)
		fmt.Fprintf(&sb, "| Samples | %d |\n", latest.Samples)
		fmt.Fprintf(&sb, "| Runtime | %dms |\n\n", latest.RuntimeMS)
	}

	writeGateSet(&sb)
	writeHistory(&sb, records)
	writeUsage(&sb)
	return sb.String()
}

func writeGateSet(sb *strings.Builder) {
	sb.WriteString("## Circuit Architecture\n\n")
	sb.WriteString("| Gate | Matrix | Role |\n")
	sb.WriteString("|------|--------|------|\n")
	sb.WriteString("| **H** | `1/√2 [[1,1],[1,-1]]` | opening superposition layer |\n")
	sb.WriteString("| **√X** | `½[[1+i,1-i],[1-i,1+i]]` | random single-qubit gate |\n")
	sb.WriteString("| **√Y** | `½[[1+i,-1-i],[1+i,1+i]]` | random single-qubit gate |\n")
	sb.WriteString("| **√W** | `[[1/√2,-(1+i)/2],[(1-i)/2,1/√2]]` | random single-qubit gate, W = (X+Y)/√2 |\n")
	sb.WriteString("| **CZ** | `diag(1,1,1,-1)` | entangling gate |\n\n")
	sb.WriteString("Each layer applies one random root gate per qubit, then CZ on neighbouring ")
	sb.WriteString("pairs starting at qubit 0 on even layers and qubit 1 on odd layers. Registers ")
	sb.WriteString("above four qubits get an extra long-range CZ in 30% of layers.\n\n")
	sb.WriteString("XEB = 2ⁿ · ⟨p_ideal(x)⟩ − 1, reported in [-0.5, 1.0]: 1 is a perfect sampler, ")
	sb.WriteString("0 is indistinguishable from uniform guessing.\n\n")
}

func writeHistory(sb *strings.Builder, records []results.Record) {
	sb.WriteString("## Benchmark History\n\n")
	if len(records) == 0 {
		sb.WriteString("*No benchmark results yet.*\n\n")
		return
	}

	s := Summarize(records)
	fmt.Fprintf(sb, "%d runs · mean XEB %.4f · σ %.4f · min %.4f · max %.4f\n\n",
		s.Runs, s.Mean, s.StdDev, s.Min, s.Max)

	sb.WriteString("| Date | Depth | Qubits | XEB Score | Samples | Runtime |\n")
	sb.WriteString("|------|-------|--------|-----------|---------|---------|\n")
	for _, r := range records[max(len(records)-historyRows, 0):] {
		fmt.Fprintf(sb, "| %s | %d | %d | %.4f | %d | %dms |\n",
			r.Date, r.Depth, r.Qubits, r.XEBScore, r.Samples, r.RuntimeMS)
	}
	sb.WriteString("\n")

	if len(records) >= 2 {
		sb.WriteString("### XEB Trend (Recent)\n\n")
		sb.WriteString("```\n")
		sb.WriteString(TrendChart(records))
		sb.WriteString("```\n\n")
	}
}

func writeUsage(sb *strings.Builder) {
	sb.WriteString("## Usage\n\n")
	sb.WriteString("```bash\n")
	sb.WriteString("# rcsbench run <depth> <qubits> [samples]\n")
	sb.WriteString("rcsbench run 7 10\n")
	sb.WriteString("rcsbench run 12 8 2048 --seed 42 --qasm circuit.qasm\n\n")
	sb.WriteString("# regenerate this file from results/\n")
	sb.WriteString("rcsbench readme\n\n")
	sb.WriteString("# run on a cron schedule\n")
	sb.WriteString("rcsbench daemon --schedule @daily\n\n")
	sb.WriteString("# interactive dashboard\n")
	sb.WriteString("rcsbench tui\n")
	sb.WriteString("```\n")
}
