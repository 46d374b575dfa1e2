package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		m.config = msg.Config
		m.profileIndex = 0
		if msg.Config != nil && len(msg.Config.Profiles) > 0 {
			m.setProfile(&msg.Config.Profiles[0], msg.Config.DefaultTaxYear)
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
		m.syncFocus()

	case key.Matches(msg, m.keys.Down):
		m.focused = (m.focused + 1) % fieldCount
		m.syncFocus()

	case key.Matches(msg, m.keys.Increase):
		m.adjust(1)

	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-1)

	case key.Matches(msg, m.keys.BigIncrease):
		m.adjust(10)

	case key.Matches(msg, m.keys.BigDecrease):
		m.adjust(-10)

	case key.Matches(msg, m.keys.Toggle):
		m.toggle()

	case key.Matches(msg, m.keys.NextProfile):
		m.switchProfile(1)

	case key.Matches(msg, m.keys.PrevProfile):
		m.switchProfile(-1)

	case key.Matches(msg, m.keys.Reset):
		m.reset()
	}

	return m, nil
}
