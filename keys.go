package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Run        key.Binding
	Edit       key.Binding
	Save       key.Binding
	Export     key.Binding
	Focus      key.Binding
	MoreQubits key.Binding
	FewQubits  key.Binding
	Deeper     key.Binding
	Shallower  key.Binding
	ScrollL    key.Binding
	ScrollR    key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Run:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit parameters")),
	Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save result")),
	Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export QASM")),
	Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "history")),
	MoreQubits: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "qubits")),
	FewQubits:  key.NewBinding(key.WithKeys("-")),
	Deeper:     key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "depth")),
	Shallower:  key.NewBinding(key.WithKeys("[")),
	ScrollL:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→", "scroll layers")),
	ScrollR:    key.NewBinding(key.WithKeys("right", "l")),
}

// helpLine renders the short help of bindings in the controls bar style.
func helpLine(bindings ...key.Binding) string {
	s := ""
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			s += "  "
		}
		s += h.Key + " " + h.Desc
	}
	return s
}
