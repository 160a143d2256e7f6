package report

import (
	"fmt"
	"math"
	"strings"

	"qrcsbench/internal/results"
	"qrcsbench/rcs"
)

const (
	chartRuns   = 14
	chartHeight = 10
)

// TrendChart plots the XEB score of the most recent runs, oldest on the left.
// A marker is ◆ when the score rose from the previous run, ◇ when it fell and
// ● for the first run or no change.
func TrendChart(records []results.Record) string {
	if len(records) == 0 {
		return "No data available\n"
	}
	recent := records[max(len(records)-chartRuns, 0):]

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range recent {
		lo = min(lo, r.XEBScore)
		hi = max(hi, r.XEBScore)
	}
	span := max(hi-lo, 0.1)
	chartMin := max(lo-span*0.1, rcs.MinXEB)
	chartMax := hi + span*0.1
	chartRange := chartMax - chartMin

	var sb strings.Builder
	for row := chartHeight - 1; row >= 0; row-- {
		y := chartMin + float64(row)/float64(chartHeight-1)*chartRange
		fmt.Fprintf(&sb, "%6.3f │", y)
		for i, r := range recent {
			pos := int(math.Round((r.XEBScore - chartMin) / chartRange * float64(chartHeight-1)))
			switch {
			case pos == row:
				sb.WriteString(marker(recent, i))
			case row == 0:
				sb.WriteString("───")
			default:
				sb.WriteString("   ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("       └" + strings.Repeat("───", len(recent)) + "\n")
	sb.WriteString("        ")
	for i, r := range recent {
		if i%3 == 0 || i == len(recent)-1 {
			fmt.Fprintf(&sb, "%-3s", dayOf(r.Date))
		} else {
			sb.WriteString("   ")
		}
	}
	sb.WriteString("\n\n       ◆ = increase   ◇ = decrease   ● = start/same\n")
	return sb.String()
}

func marker(recent []results.Record, i int) string {
	if i == 0 {
		return " ● "
	}
	prev, cur := recent[i-1].XEBScore, recent[i].XEBScore
	switch {
	case cur > prev:
		return " ◆ "
	case cur < prev:
		return " ◇ "
	default:
		return " ● "
	}
}

// dayOf returns the day of month of a YYYY-MM-DD date.
func dayOf(date string) string {
	if len(date) < 10 {
		return "??"
	}
	return date[8:10]
}
