package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qrcsbench/internal/results"
	"qrcsbench/rcs"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusHistory
	focusForm
)

// qasmFile is where the x key exports the circuit of the last run.
const qasmFile = "circuit.qasm"

// Model is the dashboard state.
type Model struct {
	runner *rcs.Runner
	store  *results.Store

	params     rcs.Params
	randomSeed bool // draw a fresh seed for every run

	running bool
	spinner spinner.Model
	last    *rcs.Outcome
	saved   bool // last has been written to the store

	records []results.Record
	history table.Model

	form  paramForm
	focus focus

	viewStartLayer int // first layer currently visible in the circuit panel
	width          int
	height         int
	statusMsg      string // transient status message (e.g. save confirmation)
}

// runDoneMsg carries the outcome of a benchmark started by runCmd.
type runDoneMsg struct {
	out *rcs.Outcome
	err error
}

// recordsMsg carries the stored history.
type recordsMsg struct {
	records []results.Record
	err     error
}

func initialModel(runner *rcs.Runner, store *results.Store, samples int) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(activeStyle))

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Depth", Width: 5},
			{Title: "Qubits", Width: 6},
			{Title: "XEB", Width: 8},
			{Title: "Samples", Width: 7},
			{Title: "ms", Width: 7},
		}),
		table.WithHeight(historyRows),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#565f89")).
		BorderBottom(true).
		Foreground(lipgloss.Color("#ff9e64"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1a1b26")).
		Background(lipgloss.Color("#7dcfff"))
	tbl.SetStyles(styles)

	return Model{
		runner:     runner,
		store:      store,
		params:     rcs.Params{Depth: 10, Qubits: 8, Samples: samples},
		randomSeed: true,
		spinner:    sp,
		history:    tbl,
		focus:      focusCircuit,
	}
}

func loadRecordsCmd(store *results.Store) tea.Cmd {
	return func() tea.Msg {
		records, err := store.Load()
		return recordsMsg{records: records, err: err}
	}
}

// runCmd executes p off the update loop.
func runCmd(runner *rcs.Runner, p rcs.Params) tea.Cmd {
	return func() tea.Msg {
		out, err := runner.Execute(p, rcs.NewSource(p.Seed))
		return runDoneMsg{out: out, err: err}
	}
}

// startRun marks the model busy and returns the commands of a new run.
func (m *Model) startRun() tea.Cmd {
	if m.running {
		return nil
	}
	if m.randomSeed {
		m.params.Seed = rcs.NewSeed()
	}
	m.running = true
	m.statusMsg = ""
	return tea.Batch(m.spinner.Tick, runCmd(m.runner, m.params))
}

// saveLast writes the last result, creating the results directory if needed.
func (m *Model) saveLast() {
	if m.last == nil {
		m.statusMsg = "Nothing to save yet"
		return
	}
	if err := os.MkdirAll(m.store.Dir(), 0o755); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	rec := results.NewRecord(m.last.Result)
	path, err := m.store.Save(rec)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.saved = true
	m.records = upsertRecord(m.records, rec)
	m.history.SetRows(historyTableRows(m.records))
	m.statusMsg = "Saved " + path
}

// upsertRecord mirrors Store.Save: one record per day, sorted by date.
func upsertRecord(records []results.Record, rec results.Record) []results.Record {
	for i := range records {
		if records[i].Date == rec.Date {
			out := append([]results.Record(nil), records...)
			out[i] = rec
			return out
		}
	}
	out := append([]results.Record(nil), records...)
	i := len(out)
	for i > 0 && out[i-1].Date > rec.Date {
		i--
	}
	out = append(out, results.Record{})
	copy(out[i+1:], out[i:])
	out[i] = rec
	return out
}

func (m *Model) exportQASM() {
	if m.last == nil {
		m.statusMsg = "Nothing to export yet"
		return
	}
	if err := os.WriteFile(qasmFile, []byte(m.last.Schedule.ToQASM()), 0o644); err != nil {
		m.statusMsg = fmt.Sprintf("Export error: %v", err)
		return
	}
	m.statusMsg = "Saved " + qasmFile
}

// adjust changes the depth or qubit count of the next run within bounds.
func (m *Model) adjust(depth, qubits int) {
	m.params.Depth = min(max(m.params.Depth+depth, 1), rcs.MaxDepth)
	m.params.Qubits = min(max(m.params.Qubits+qubits, rcs.MinQubits), rcs.MaxQubits)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return loadRecordsCmd(m.store)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case recordsMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("History error: %v", msg.err)
			break
		}
		m.records = msg.records
		m.history.SetRows(historyTableRows(m.records))

	case runDoneMsg:
		m.running = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Run error: %v", msg.err)
			break
		}
		m.last = msg.out
		m.saved = false
		m.viewStartLayer = 0
		m.statusMsg = fmt.Sprintf("XEB %.4f in %d ms", msg.out.Result.XEBScore, msg.out.Result.RuntimeMS)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusForm:
			switch msg.String() {
			case "esc":
				m.focus = focusCircuit
			case "tab", "down":
				m.form.move(1)
			case "shift+tab", "up":
				m.form.move(-1)
			case "enter":
				p, random, err := m.form.params()
				if err != nil {
					m.form.err = err.Error()
					break
				}
				m.params, m.randomSeed = p, random
				m.focus = focusCircuit
				m.statusMsg = "Parameters updated"
			default:
				var cmd tea.Cmd
				m.form, cmd = m.form.update(msg)
				cmds = append(cmds, cmd)
			}

		case focusCircuit, focusHistory:
			m.statusMsg = ""
			switch {
			case key.Matches(msg, keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, keys.Focus):
				if m.focus == focusCircuit {
					m.focus = focusHistory
					m.history.Focus()
				} else {
					m.focus = focusCircuit
					m.history.Blur()
				}
			case key.Matches(msg, keys.Run):
				cmds = append(cmds, m.startRun())
			case key.Matches(msg, keys.Edit):
				m.form = newParamForm(m.params, m.randomSeed)
				m.focus = focusForm
			case key.Matches(msg, keys.Save):
				m.saveLast()
			case key.Matches(msg, keys.Export):
				m.exportQASM()
			case key.Matches(msg, keys.MoreQubits):
				m.adjust(0, 1)
			case key.Matches(msg, keys.FewQubits):
				m.adjust(0, -1)
			case key.Matches(msg, keys.Deeper):
				m.adjust(1, 0)
			case key.Matches(msg, keys.Shallower):
				m.adjust(-1, 0)
			case key.Matches(msg, keys.ScrollL):
				if m.viewStartLayer > 0 {
					m.viewStartLayer--
				}
			case key.Matches(msg, keys.ScrollR):
				if m.last != nil && m.viewStartLayer < m.last.Schedule.Depth()-1 {
					m.viewStartLayer++
				}
			case m.focus == focusHistory:
				var cmd tea.Cmd
				m.history, cmd = m.history.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	distWidth := m.width / 3
	circuitWidth := m.width - distWidth - 4
	controlsHeight := 4

	historyPanel := m.renderHistoryPanel(m.width - 4)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)
	topHeight := max(m.height-lipgloss.Height(historyPanel)-lipgloss.Height(controlsPanel)-4, 8)

	circuitPanel := m.renderCircuitPanel(circuitWidth, topHeight)
	distPanel := m.renderDistributionPanel(distWidth, topHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, distPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, historyPanel, controlsPanel)

	if m.focus == focusForm {
		frame = overlayAt(frame, m.form.render(), 2, 2)
	}

	return frame
}
