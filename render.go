package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"

	"qrcsbench/internal/report"
	"qrcsbench/internal/results"
	"qrcsbench/rcs"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// wireCell draws one layer column of a qubit wire: the gate, then a CZ dot when
// the qubit is paired in that layer.
func wireCell(g rcs.GateKind, inCZ bool) string {
	sym := g.String()
	fill := layerW - 2 - lipgloss.Width(sym)
	cell := "─" + gateStyle.Render(sym) + strings.Repeat("─", max(fill, 0))
	if inCZ {
		return cell + czStyle.Render("●")
	}
	return cell + "─"
}

// pairedQubits returns the qubits touched by a CZ in layer.
func pairedQubits(layer rcs.Layer) map[int]bool {
	in := make(map[int]bool, 2*len(layer.Pairs))
	for _, p := range layer.Pairs {
		in[p.A] = true
		in[p.B] = true
	}
	return in
}

// longRangePairs lists the pairs that are not nearest neighbours.
func longRangePairs(layer rcs.Layer) []rcs.Pair {
	var out []rcs.Pair
	for _, p := range layer.Pairs {
		if p.B-p.A != 1 {
			out = append(out, p)
		}
	}
	return out
}

// bitstring renders a basis index with qubit 0 as the rightmost bit.
func bitstring(index, numQubits int) string {
	return fmt.Sprintf("%0*b", numQubits, index)
}

// sparkBlocks maps a probability in [0, 1] to a bar height.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

func spark(p float64) string {
	i := int(p * float64(len(sparkBlocks)-1))
	return string(sparkBlocks[min(max(i, 0), len(sparkBlocks)-1)])
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel draws the schedule of the last run as one wire per qubit.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := fmt.Sprintf("Random Circuit  depth %d · %d qubits", m.params.Depth, m.params.Qubits)
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	if m.last == nil {
		if m.running {
			sb.WriteString(m.spinner.View() + " Simulating...")
		} else {
			sb.WriteString(dimStyle.Render("Press r to run a benchmark"))
		}
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	sched := m.last.Schedule
	availWidth := width - labelVisualW - layerW - 4
	visible := max(availWidth/layerW, 1)
	start := min(m.viewStartLayer, max(sched.Depth()-1, 0))
	end := min(start+visible, sched.Depth())

	if start > 0 {
		fmt.Fprintf(&sb, "  ◀ showing layers %d–%d\n", start, end-1)
	}

	header := strings.Repeat(" ", labelVisualW) + padCenter("", layerW)
	for d := start; d < end; d++ {
		header += dimStyle.Render(padCenter(strconv.Itoa(d), layerW))
	}
	sb.WriteString(header + "\n")

	paired := make([]map[int]bool, end-start)
	for d := start; d < end; d++ {
		paired[d-start] = pairedQubits(sched.Layers[d])
	}

	for q := sched.NumQubits - 1; q >= 0; q-- {
		line := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))) + "──"
		line += wireCell(rcs.GateH, false)
		for d := start; d < end; d++ {
			line += wireCell(sched.Layers[d].Gates[q], paired[d-start][q])
		}
		if end < sched.Depth() {
			line += dimStyle.Render(" ▶")
		}
		sb.WriteString(line + "\n")
	}

	var long []string
	for d := start; d < end; d++ {
		for _, p := range longRangePairs(sched.Layers[d]) {
			long = append(long, fmt.Sprintf("L%d q%d–q%d", d, p.A, p.B))
		}
	}
	sb.WriteString("\n")
	if len(long) > 0 {
		sb.WriteString(dimStyle.Render("long-range CZ: ") + czStyle.Render(strings.Join(long, "  ")) + "\n")
	}
	fmt.Fprintf(&sb, "%s", dimStyle.Render(fmt.Sprintf("%d gates · QASM export: %s", sched.GateCount(), qasmFile)))

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderDistributionPanel shows the score of the last run and the most likely
// basis states with their sampled counts.
func (m Model) renderDistributionPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Output Distribution"))
	sb.WriteString("\n\n")

	if m.last == nil {
		sb.WriteString(dimStyle.Render("No run yet"))
		return distStyle.Width(width).Height(height).Render(sb.String())
	}

	res := m.last.Result
	probs := m.last.Probabilities
	ideal := float64(len(probs))*floats.Dot(probs, probs) - 1

	fmt.Fprintf(&sb, "XEB      %s  %s\n",
		scoreStyle.Render(fmt.Sprintf("%.4f", res.XEBScore)),
		dimStyle.Render(fmt.Sprintf("ideal %.4f", ideal)))
	fmt.Fprintf(&sb, "Samples  %s\n", humanize.Comma(int64(res.Samples)))
	fmt.Fprintf(&sb, "Runtime  %s ms\n", humanize.Comma(res.RuntimeMS))
	fmt.Fprintf(&sb, "Seed     %s\n", dimStyle.Render(strconv.FormatUint(res.Seed, 10)))
	if m.saved {
		sb.WriteString(dimStyle.Render("saved") + "\n")
	}
	sb.WriteString("\n")

	counts := make(map[int]int)
	for _, s := range m.last.Samples {
		counts[s]++
	}
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return probs[order[a]] > probs[order[b]] })
	order = order[:min(topStates, len(order))]

	top := probs[order[0]]
	bw := min(barW, max(width-res.Qubits-22, 4))
	for _, i := range order {
		n := 0
		if top > 0 {
			n = int(probs[i] / top * float64(bw))
		}
		fmt.Fprintf(&sb, "|%s⟩ %s%s %5.2f%% %s\n",
			bitstring(i, res.Qubits),
			barStyle.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", bw-n),
			100*probs[i],
			dimStyle.Render(strconv.Itoa(counts[i])))
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("P(1) q[n-1]…q[0] "))
	marg := m.last.State.QubitProbabilities()
	for q := len(marg) - 1; q >= 0; q-- {
		sb.WriteString(barStyle.Render(spark(marg[q].Prob1)))
	}

	return distStyle.Width(width).Height(height).Render(sb.String())
}

// historyTableRows converts records into table rows, newest first.
func historyTableRows(records []results.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows = append(rows, table.Row{
			r.Date,
			strconv.Itoa(r.Depth),
			strconv.Itoa(r.Qubits),
			fmt.Sprintf("%.4f", r.XEBScore),
			formatCount(r.Samples),
			strconv.FormatInt(r.RuntimeMS, 10),
		})
	}
	return rows
}

// renderHistoryPanel shows stored runs next to their trend chart.
func (m Model) renderHistoryPanel(width int) string {
	var sb strings.Builder

	title := "History"
	if m.focus == focusHistory {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))

	if len(m.records) == 0 {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("No stored results in " + m.store.Dir()))
		return historyStyle.Width(width).Render(sb.String())
	}

	s := report.Summarize(m.records)
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d runs · mean %.4f · σ %.4f · best %.4f", s.Runs, s.Mean, s.StdDev, s.Max)))
	sb.WriteString("\n\n")

	body := m.history.View()
	if len(m.records) > 1 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "   ", strings.TrimRight(report.TrendChart(m.records), "\n"))
	}
	sb.WriteString(body)

	return historyStyle.Width(width).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Run:      "))
	sb.WriteString(helpLine(keys.Run, keys.Edit, keys.MoreQubits, keys.Deeper))
	if m.running {
		sb.WriteString("    " + m.spinner.View() + " running")
	} else if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(m.statusMsg))
	}
	sb.WriteString("\n")

	sb.WriteString(activeStyle.Render("Actions:  "))
	sb.WriteString(helpLine(keys.Save, keys.Export, keys.ScrollL, keys.Focus, keys.Quit))

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with overlay,
// keeping the escape sequences of both intact.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
