package main

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"qrcsbench/rcs"
)

func TestWireCell_FixedWidth(t *testing.T) {
	for _, g := range []rcs.GateKind{rcs.GateH, rcs.GateRootX, rcs.GateRootY, rcs.GateRootW} {
		assert.Equal(t, layerW, lipgloss.Width(wireCell(g, false)), g.String())
		assert.Equal(t, layerW, lipgloss.Width(wireCell(g, true)), g.String())
	}
}

func TestLongRangePairs(t *testing.T) {
	layer := rcs.Layer{Pairs: []rcs.Pair{{A: 0, B: 1}, {A: 2, B: 3}, {A: 1, B: 4}}}
	assert.Equal(t, []rcs.Pair{{A: 1, B: 4}}, longRangePairs(layer))
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}, pairedQubits(layer))
}

func TestBitstring(t *testing.T) {
	assert.Equal(t, "0101", bitstring(5, 4))
	assert.Equal(t, "00", bitstring(0, 2))
}

func TestSpark(t *testing.T) {
	assert.Equal(t, "▁", spark(0))
	assert.Equal(t, "█", spark(1))
	assert.Equal(t, "█", spark(1.5))
}

func TestPadCenter(t *testing.T) {
	assert.Equal(t, " 7  ", padCenter("7", 4))
	assert.Equal(t, "abcd", padCenter("abcdef", 4))
}

func TestOverlayAt(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	got := overlayAt(bg, "XY\nZW", 3, 1)
	assert.Equal(t, "aaaaaaaa\nbbbXYbbb\ncccZWccc", got)
}

func TestSpliceLineAt_PadsShortLines(t *testing.T) {
	assert.Equal(t, "ab  XY", spliceLineAt("ab", "XY", 4))
}

func TestSpliceLineAt_KeepsStyledBackground(t *testing.T) {
	bg := dimStyle.Render("0123456789")
	got := spliceLineAt(bg, "##", 2)
	assert.Equal(t, 10, lipgloss.Width(got))
	assert.Equal(t, "01##456789", ansi.Strip(got))
}
