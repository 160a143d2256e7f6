package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qrcsbench/rcs"
)

// formField is one editable benchmark parameter.
type formField struct {
	label string
	hint  string
	input textinput.Model
}

// paramForm is the floating popup that edits the parameters of the next run.
type paramForm struct {
	fields []formField
	active int
	err    string
}

const (
	fieldDepth = iota
	fieldQubits
	fieldSamples
	fieldSeed
)

func newParamForm(p rcs.Params, randomSeed bool) paramForm {
	mk := func(label, hint, value string) formField {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 20
		ti.Width = 20
		ti.Placeholder = hint
		ti.SetValue(value)
		return formField{label: label, hint: hint, input: ti}
	}

	seed := strconv.FormatUint(p.Seed, 10)
	if randomSeed {
		seed = ""
	}
	f := paramForm{fields: []formField{
		mk("Depth", fmt.Sprintf("1..%d", rcs.MaxDepth), strconv.Itoa(p.Depth)),
		mk("Qubits", fmt.Sprintf("%d..%d", rcs.MinQubits, rcs.MaxQubits), strconv.Itoa(p.Qubits)),
		mk("Samples", "e.g. 2^12, 4k", formatCount(p.Samples)),
		mk("Seed", "random", seed),
	}}
	f.fields[0].input.Focus()
	return f
}

func (f *paramForm) move(delta int) {
	f.fields[f.active].input.Blur()
	f.active = (f.active + delta + len(f.fields)) % len(f.fields)
	f.fields[f.active].input.Focus()
}

func (f paramForm) update(msg tea.Msg) (paramForm, tea.Cmd) {
	var cmd tea.Cmd
	f.fields[f.active].input, cmd = f.fields[f.active].input.Update(msg)
	return f, cmd
}

// params parses the form. The bool result reports whether the seed was left
// empty, meaning every run draws a fresh one.
func (f paramForm) params() (rcs.Params, bool, error) {
	args := []string{
		f.fields[fieldDepth].input.Value(),
		f.fields[fieldQubits].input.Value(),
		f.fields[fieldSamples].input.Value(),
	}
	p, err := parseRunArgs(args, 0)
	if err != nil {
		return rcs.Params{}, false, err
	}
	seed, ok, err := parseSeed(f.fields[fieldSeed].input.Value())
	if err != nil {
		return rcs.Params{}, false, err
	}
	p.Seed = seed
	return p, !ok, nil
}

// render draws the popup in the style of the panels behind it.
func (f paramForm) render() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Benchmark Parameters"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 34)))
	sb.WriteString("\n")

	for i, field := range f.fields {
		if i == f.active {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-9s", field.label)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-9s", field.label)))
		}
		sb.WriteString(field.input.View())
		sb.WriteString("\n")
	}

	if f.err != "" {
		sb.WriteString(errorStyle.Render(" " + f.err))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓/Tab Field  ⏎ Apply  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
