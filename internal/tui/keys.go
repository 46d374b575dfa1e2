package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Decrease    key.Binding
	Increase    key.Binding
	BigDecrease key.Binding
	BigIncrease key.Binding
	Toggle      key.Binding
	NextProfile key.Binding
	PrevProfile key.Binding
	Reset       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Decrease:    key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Increase:    key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
		BigDecrease: key.NewBinding(key.WithKeys("pgdown", "H"), key.WithHelp("pgdn/H", "decrease ×10")),
		BigIncrease: key.NewBinding(key.WithKeys("pgup", "L"), key.WithHelp("pgup/L", "increase ×10")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "toggle")),
		NextProfile: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next profile")),
		PrevProfile: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous profile")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Decrease, k.Increase, k.BigDecrease, k.BigIncrease},
		{k.NextProfile, k.PrevProfile, k.Reset},
		{k.Help, k.Quit},
	}
}
